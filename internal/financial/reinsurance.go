package financial

import (
	"sort"

	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/simerr"
)

// LayerType identifies how a ReinsuranceLayer computes its recovery.
type LayerType string

const (
	QuotaShare  LayerType = "quota_share"
	Surplus     LayerType = "surplus"
	ExcessOfLoss LayerType = "excess_of_loss"
	StopLoss    LayerType = "stop_loss"
)

// ReinsuranceLayer describes one treaty layer ceding part of a loss back to
// a reinsurer. Limit is optional (nil means unbounded); quota share ignores
// it, while surplus, excess-of-loss and stop-loss layers cap on it when set.
type ReinsuranceLayer struct {
	LayerType       LayerType `json:"layer_type"`
	AttachmentPoint float64   `json:"attachment_point"`
	Limit           *float64  `json:"limit,omitempty"`
	CessionRate     float64   `json:"cession_rate"`
	Priority        int       `json:"priority"`
}

// NewReinsuranceLayer validates a layer's terms.
func NewReinsuranceLayer(layerType LayerType, attachmentPoint float64, limit *float64, cessionRate float64, priority int) (*ReinsuranceLayer, error) {
	switch layerType {
	case QuotaShare, Surplus, ExcessOfLoss, StopLoss:
	default:
		return nil, simerr.Financialf("layer_type", "unknown reinsurance layer type %q", layerType)
	}
	if attachmentPoint < 0 {
		return nil, simerr.Financialf("attachment_point", "must be non-negative, got %g", attachmentPoint)
	}
	if cessionRate < 0 || cessionRate > 1 {
		return nil, simerr.Financialf("cession_rate", "must be in [0, 1], got %g", cessionRate)
	}
	if limit != nil && *limit <= 0 {
		return nil, simerr.Financialf("limit", "must be positive when set, got %g", *limit)
	}
	return &ReinsuranceLayer{
		LayerType:       layerType,
		AttachmentPoint: attachmentPoint,
		Limit:           limit,
		CessionRate:     cessionRate,
		Priority:        priority,
	}, nil
}

// layerRecovery computes a single layer's cession of a given loss amount,
// without regard to what other layers have already ceded.
func layerRecovery(layer ReinsuranceLayer, loss float64) float64 {
	switch layer.LayerType {
	case QuotaShare:
		return loss * layer.CessionRate
	case Surplus:
		capped := loss
		if layer.Limit != nil && *layer.Limit < capped {
			capped = *layer.Limit
		}
		return capped * layer.CessionRate
	case ExcessOfLoss:
		excess := loss - layer.AttachmentPoint
		if excess < 0 {
			excess = 0
		}
		if layer.Limit != nil && excess > *layer.Limit {
			excess = *layer.Limit
		}
		return excess
	case StopLoss:
		excess := loss - layer.AttachmentPoint
		if excess < 0 {
			excess = 0
		}
		recovery := excess * layer.CessionRate
		if layer.Limit != nil && recovery > *layer.Limit {
			recovery = *layer.Limit
		}
		return recovery
	default:
		return 0
	}
}

// CalculateRecovery sums the recovery ceded across all layers, applied in
// priority order (lowest first). Only excess_of_loss and stop_loss layers
// erode the remaining loss seen by subsequent layers — quota_share and
// surplus cede a proportion of the remaining loss at their point in the
// priority order without reducing it, so they stack independently of each
// other and of any proportional layer before them.
func CalculateRecovery(loss float64, layers []ReinsuranceLayer) float64 {
	if loss <= 0 || len(layers) == 0 {
		return 0
	}
	sorted := make([]ReinsuranceLayer, len(layers))
	copy(sorted, layers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

	var totalRecovery float64
	remaining := loss
	for _, layer := range sorted {
		recovery := layerRecovery(layer, remaining)
		totalRecovery += recovery
		if layer.LayerType == ExcessOfLoss || layer.LayerType == StopLoss {
			remaining -= recovery
			if remaining < 0 {
				remaining = 0
			}
		}
	}
	return totalRecovery
}

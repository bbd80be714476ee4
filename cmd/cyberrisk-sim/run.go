package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/config"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/events"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/obslog"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/registry"
	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/simulation"
)

const cliUser = "local"

var runCmd = &cobra.Command{
	Use:   "run",
	Args:  cobra.NoArgs,
	Short: "Submit and run a simulation job from a spec file",
	Long: `Loads a JSON job spec file, submits it to an in-process scheduler, logs
job lifecycle events to stderr (per-batch progress only with --verbose), and
prints the finished result as JSON to stdout.`,
	RunE: runSimulation,
}

func init() {
	runCmd.Flags().String("spec", "", "path to job spec JSON file (required)")
	runCmd.Flags().String("output", "", "write the result JSON here instead of stdout")
	runCmd.MarkFlagRequired("spec")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	specPath, _ := cmd.Flags().GetString("spec")
	outputPath, _ := cmd.Flags().GetString("output")

	spec, err := loadJobSpec(specPath)
	if err != nil {
		return fmt.Errorf("failed to load job spec: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	spec.Normalize(cfg.Engine)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bus := events.NewBus()
	scheduler := registry.NewScheduler(cfg.Scheduler, simulation.NewEngine(), bus)

	sub, unsubscribe := bus.Subscribe(cliUser)
	defer unsubscribe()

	snapshot, err := scheduler.Submit(cliUser, spec)
	if err != nil {
		return fmt.Errorf("failed to submit job: %w", err)
	}
	obslog.Eventf("submitted job %s", snapshot.ID)

	done := make(chan struct{})
	go watchEvents(sub, snapshot.ID, done)

	// Cancel the running job cooperatively if the process receives an
	// interrupt; the scheduler still returns a partial result if any batch
	// had finished.
	go func() {
		<-ctx.Done()
		scheduler.Cancel(snapshot.ID)
	}()

	scheduler.Wait()
	close(done)

	final, err := scheduler.Get(snapshot.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch finished job: %w", err)
	}

	if final.Result == nil {
		return fmt.Errorf("job %s ended in state %s without a result: %s", final.ID, final.State, final.Err)
	}
	if err := writeResult(final.Result, outputPath); err != nil {
		return err
	}
	if final.State != registry.StateCompleted {
		return fmt.Errorf("job %s did not complete: state=%s err=%s", final.ID, final.State, final.Err)
	}
	return nil
}

// watchEvents prints job lifecycle events to stderr via obslog until done
// closes or the subscription channel closes.
func watchEvents(sub <-chan events.Event, jobID string, done <-chan struct{}) {
	for {
		select {
		case evt, ok := <-sub:
			if !ok {
				return
			}
			switch evt.Kind {
			case events.KindJobProgress:
				obslog.Verbosef("job %s: %d/%d iterations", jobID, evt.Completed, evt.Total)
			case events.KindJobFailed, events.KindJobCancelled:
				obslog.Eventf("job %s: %s (%s)", jobID, evt.Kind, evt.Message)
			default:
				obslog.Eventf("job %s: %s", jobID, evt.Kind)
			}
		case <-done:
			return
		}
	}
}

func loadJobSpec(path string) (simulation.JobSpec, error) {
	var spec simulation.JobSpec
	data, err := os.ReadFile(path)
	if err != nil {
		return spec, err
	}
	if err := json.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("invalid job spec JSON: %w", err)
	}
	return spec, nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default()
	}
	return config.Load(cfgFile)
}

func writeResult(result *simulation.Result, outputPath string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if outputPath == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outputPath, data, 0o644)
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Args:  cobra.NoArgs,
	Short: "Validate a job spec file without running it",
	RunE:  validateSpec,
}

func init() {
	validateCmd.Flags().String("spec", "", "path to job spec JSON file (required)")
	validateCmd.MarkFlagRequired("spec")
}

func validateSpec(cmd *cobra.Command, args []string) error {
	specPath, _ := cmd.Flags().GetString("spec")

	spec, err := loadJobSpec(specPath)
	if err != nil {
		return fmt.Errorf("failed to load job spec: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	spec.Normalize(cfg.Engine)

	if err := spec.Validate(); err != nil {
		out, _ := json.Marshal(map[string]any{"valid": false, "error": err.Error()})
		fmt.Println(string(out))
		return err
	}

	out, _ := json.Marshal(map[string]any{"valid": true})
	fmt.Println(string(out))
	return nil
}

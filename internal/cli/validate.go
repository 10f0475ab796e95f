package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/eventx/states"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a switch configuration file",
	Long:  "Load a YAML or JSON switch configuration and check its structural invariants.",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validateFile == "" {
		return fmt.Errorf("--file is required")
	}
	cfg, err := states.Load(validateFile)
	if err != nil {
		return err
	}
	fmt.Printf("%s: valid (%d states, initial %q, version %s)\n",
		validateFile, len(cfg.States), cfg.Initial, states.ConfigVersion(cfg))
	return nil
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Configuration file to validate")
	rootCmd.AddCommand(validateCmd)
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/comalice/eventx/states"
)

var (
	graphFile    string
	graphCurrent string
	graphOut     string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Render a switch configuration as Graphviz DOT",
	Long:  "Load a switch configuration and print DOT source suitable for piping into dot -Tsvg.",
	Args:  cobra.NoArgs,
	RunE:  runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	if graphFile == "" {
		return fmt.Errorf("--file is required")
	}
	cfg, err := states.Load(graphFile)
	if err != nil {
		return err
	}
	dot := states.ExportDOT(cfg, graphCurrent)
	if graphOut == "" {
		fmt.Print(dot)
		return nil
	}
	if err := os.WriteFile(graphOut, []byte(dot), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", graphOut, err)
	}
	fmt.Printf("wrote %s\n", graphOut)
	return nil
}

func init() {
	graphCmd.Flags().StringVarP(&graphFile, "file", "f", "", "Configuration file to render")
	graphCmd.Flags().StringVar(&graphCurrent, "current", "", "State to highlight as active")
	graphCmd.Flags().StringVarP(&graphOut, "out", "o", "", "Write DOT to this file instead of stdout")
	rootCmd.AddCommand(graphCmd)
}

package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// verbose is the global --verbose flag value.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "eventxctl",
	Short: "Inspect and demo switch configurations",
	Long:  "eventxctl validates switch configuration files, renders them as Graphviz DOT, and runs a live demo loop.",
}

// newLogger returns a debug logger when --verbose is set, otherwise a
// silent one.
func newLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func Execute() error {
	return rootCmd.Execute()
}

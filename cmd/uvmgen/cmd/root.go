package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "uvmgen",
	Short: "UVM testbench generator",
	Long: `Generate a UVM verification environment from VIP descriptions, an
instance topology and the port list of a design under test.

Examples:
  uvmgen generate vips/*.toml                     # Generate into ./out
  uvmgen generate -o build/tb --no-self-test a.toml
  uvmgen check -i instances.toml vips/*.toml      # Report problems only
  uvmgen ids vips/*.toml                          # Show allocated instance IDs
  uvmgen dut rtl/fifo.sv                          # Show a module's port map`,
	Version:      "0.1.0",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only report warnings and errors")
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

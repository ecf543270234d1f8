package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emalab/ematools/pkg/diag"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ematool",
	Short: "Post-processing utilities for EMA3D/MHARNESS simulation files",
	Long: `Utilities for editing and post-processing the text-based input and
output files of coupled EMA3D/MHARNESS simulations.

Examples:
  ematool probe ./sim_dir                       # midpoint current probes on all conductors
  ematool probes sim.inp                        # list probe definitions in an input deck
  ematool material sim.emin --name copper --sig 5.8e7
  ematool regress suite.yaml --plots out/`,
	Version: "1.0.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// sink returns the diagnostic sink configured by the global flags.
func sink() diag.Sink {
	return diag.Stderr(verbose)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

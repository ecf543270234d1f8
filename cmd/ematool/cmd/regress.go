package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emalab/ematools/pkg/regression"
)

var regressPlotDir string

var regressCmd = &cobra.Command{
	Use:   "regress <suite.yaml>",
	Short: "Run a regression suite against reference results",
	Long: `Evaluate every test in a YAML suite description, comparing solver
output files against stored reference results with the configured
metric and pass criteria.

Example suite file:
  tests:
    - name: shielded box
      sim: runs/box
      ref: golden/box
      metric: quality
      passfunc: {type: flat, baseline: 0.98}
      plots: true`,
	Args: cobra.ExactArgs(1),
	RunE: runRegress,
}

func init() {
	rootCmd.AddCommand(regressCmd)
	regressCmd.Flags().StringVar(&regressPlotDir, "plots", "plots",
		"output directory for test plots")
}

func runRegress(cmd *cobra.Command, args []string) error {
	cfg, err := regression.LoadSuiteConfig(args[0])
	if err != nil {
		return err
	}
	suite, err := cfg.Build(regression.SimplePlotReader{})
	if err != nil {
		return err
	}

	logger := regression.NewConsoleLogger()
	plotter := regression.SVGPlotter{
		OutDir: regressPlotDir,
		XLabel: "Time (s)",
		YLabel: "Value",
	}

	passed, err := suite.Run(logger, plotter)
	if err != nil {
		return err
	}
	if !passed {
		return fmt.Errorf("regression suite failed")
	}
	fmt.Printf("\nall %d tests passed\n", len(suite.Tests))
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emalab/ematools/pkg/inp"
)

var timestepCmd = &cobra.Command{
	Use:   "timestep <inp-file>",
	Short: "Show the timestep settings of an input deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deck, err := inp.Load(args[0], sink())
		if err != nil {
			return err
		}
		fmt.Printf("timestep:  %.6e s\n", deck.Timestep)
		fmt.Printf("steps:     %.0f\n", deck.NSteps)
		fmt.Printf("end time:  %.6e s\n", deck.EndTime)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timestepCmd)
}

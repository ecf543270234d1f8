package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emalab/ematools/pkg/inp"
)

var probesCmd = &cobra.Command{
	Use:   "probes <inp-file>",
	Short: "List the probe definitions in an input deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deck, err := inp.Load(args[0], sink())
		if err != nil {
			return err
		}
		probes := deck.Probes()
		if len(probes) == 0 {
			fmt.Println("no probe definitions found")
			return nil
		}
		for _, p := range probes {
			fmt.Printf("line %-6d %-14s segment=%-16s conductor=%-16s index=%-5d %s.dat\n",
				p.Line+1, p.Type, p.Segment, p.Conductor, p.Index, p.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probesCmd)
}

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emalab/ematools/pkg/coupled"
	"github.com/emalab/ematools/pkg/emin"
	"github.com/emalab/ematools/pkg/inp"
)

var (
	probeConductors []string
	probeInpPath    string
	probeDryRun     bool
)

var probeCmd = &cobra.Command{
	Use:   "probe <sim-dir-or-emin>",
	Short: "Place current probes at the midpoint of each unbranching conductor chain",
	Long: `Analyze the harness topology of a coupled simulation and insert a cable
current probe at the mesh node nearest the electrical midpoint of every
unbranching chain of segments ("limb") on each conductor.

Examples:
  ematool probe ./sim_dir
  ematool probe ./sim_dir --conductors bundle1,bundle2
  ematool probe sim.emin --inp sim.inp --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)

	probeCmd.Flags().StringSliceVarP(&probeConductors, "conductors", "c", nil,
		"conductors to probe (default: all)")
	probeCmd.Flags().StringVar(&probeInpPath, "inp", "",
		"input deck path (default: <emin name>.inp alongside the emin file)")
	probeCmd.Flags().BoolVar(&probeDryRun, "dry-run", false,
		"report probe placements without modifying the input deck")
}

func runProbe(cmd *cobra.Command, args []string) error {
	s := sink()

	eminPath, err := emin.FindEminFile(args[0], s)
	if err != nil {
		return err
	}
	inpPath := probeInpPath
	if inpPath == "" {
		inpPath = strings.TrimSuffix(eminPath, filepath.Ext(eminPath)) + ".inp"
	}

	mesh, err := emin.Load(eminPath, s)
	if err != nil {
		return err
	}
	deck, err := inp.Load(inpPath, s)
	if err != nil {
		return err
	}

	sim := coupled.New(mesh, deck, s)
	summary, err := sim.ProbeMidpointCurrents(probeConductors)
	if err != nil {
		return err
	}

	for _, conductor := range summary.Conductors() {
		if err, failed := summary.Failed[conductor]; failed {
			fmt.Printf("conductor %-24s FAILED: %v\n", conductor, err)
			continue
		}
		for _, mp := range summary.Probed[conductor] {
			fmt.Printf("conductor %-24s probe at segment %s index %d\n",
				conductor, mp.Segment, mp.Index)
		}
	}
	fmt.Printf("\nprobed %d of %d conductors\n",
		len(summary.Probed), len(summary.Conductors()))

	if probeDryRun {
		return nil
	}
	if err := deck.Save(""); err != nil {
		return err
	}
	if !summary.AllSucceeded() {
		return fmt.Errorf("probing failed for %d conductor(s)", len(summary.Failed))
	}
	return nil
}

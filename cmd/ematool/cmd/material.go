package cmd

import (
	"github.com/spf13/cobra"

	"github.com/emalab/ematools/pkg/emin"
)

var (
	materialName string
	materialOut  string
)

var materialCmd = &cobra.Command{
	Use:   "material <emin-file>",
	Short: "Modify the properties of an isotropic material",
	Long: `Rewrite the property record of an isotropic material everywhere it is
defined in an emin file. Only the provided flags change; other values
are preserved. Relative permittivity/permeability override absolute.

Examples:
  ematool material sim.emin --name copper --sig 5.8e7
  ematool material sim.emin --name dielectric --eps-rel 4.3 --out modified.emin`,
	Args: cobra.ExactArgs(1),
	RunE: runMaterial,
}

func init() {
	rootCmd.AddCommand(materialCmd)

	materialCmd.Flags().StringVar(&materialName, "name", "", "material name (required)")
	materialCmd.Flags().Float64("sig", 0, "electric conductivity")
	materialCmd.Flags().Float64("eps", 0, "permittivity")
	materialCmd.Flags().Float64("mu", 0, "permeability")
	materialCmd.Flags().Float64("sigm", 0, "magnetic conductivity")
	materialCmd.Flags().Float64("eps-rel", 0, "relative permittivity (overrides --eps)")
	materialCmd.Flags().Float64("mu-rel", 0, "relative permeability (overrides --mu)")
	materialCmd.Flags().StringVar(&materialOut, "out", "", "save path (default: overwrite input)")
	materialCmd.MarkFlagRequired("name")
}

func runMaterial(cmd *cobra.Command, args []string) error {
	model, err := emin.Load(args[0], sink())
	if err != nil {
		return err
	}

	var props emin.MaterialProps
	for flag, dst := range map[string]**float64{
		"sig":     &props.Sig,
		"eps":     &props.Eps,
		"mu":      &props.Mu,
		"sigm":    &props.Sigm,
		"eps-rel": &props.EpsRel,
		"mu-rel":  &props.MuRel,
	} {
		if cmd.Flags().Changed(flag) {
			v, err := cmd.Flags().GetFloat64(flag)
			if err != nil {
				return err
			}
			*dst = emin.Float(v)
		}
	}

	if err := model.ModifyIsotropicMaterial(materialName, props); err != nil {
		return err
	}
	return model.Save(materialOut)
}

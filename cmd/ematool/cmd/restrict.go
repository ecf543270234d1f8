package cmd

import (
	"github.com/spf13/cobra"

	"github.com/emalab/ematools/pkg/emin"
)

var restrictOut string

var restrictCmd = &cobra.Command{
	Use:   "restrict <emin-file> <direction>",
	Short: "Restrict a surface current source to a single direction",
	Long: `Drop the elements of a surface current-source definition whose
component in the given direction (x, y, or z) is zero. The solver GUI
cannot express directed surface currents, so this edits the emin file
after export.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := emin.Load(args[0], sink())
		if err != nil {
			return err
		}
		if err := model.RestrictSurfaceCurrent(args[1]); err != nil {
			return err
		}
		return model.Save(restrictOut)
	},
}

func init() {
	rootCmd.AddCommand(restrictCmd)
	restrictCmd.Flags().StringVar(&restrictOut, "out", "", "save path (default: overwrite input)")
}

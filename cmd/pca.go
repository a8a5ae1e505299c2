package cmd

import (
	"fmt"
	"image/color"

	"github.com/KaramelBytes/genoplot/internal/npy"
	"github.com/KaramelBytes/genoplot/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	pcaOutput     string
	pcaComponents int

	ppOutput     string
	ppComponents int
	ppDPI        int
	ppTitle      string
	ppLabels     labelFlags
)

var pcaCmd = &cobra.Command{
	Use:   "pca <array-file>",
	Short: "Reduce a feature matrix with PCA and save it as <array-file>.pca.npy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := args[0]
		m, err := loadArray(in)
		if err != nil {
			return err
		}
		out, err := reduce(m, componentsFlag(cmd, pcaComponents))
		if err != nil {
			return err
		}
		path, err := utils.DerivedPath(in, pcaSuffix, pcaOutput)
		if err != nil {
			return err
		}
		if err := npy.Save(path, out); err != nil {
			return fmt.Errorf("save reduced array: %w", err)
		}
		r, c := out.Dims()
		log.WithFields(logrus.Fields{"file": path, "rows": r, "cols": c}).Info("wrote reduced array")
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d×%d array to %s\n", r, c, path)
		}
		return nil
	},
}

var pcaPlotCmd = &cobra.Command{
	Use:   "pca-plot <array-file> [<labels.csv> <samples-dir>]",
	Short: "Reduce a feature matrix with PCA and plot the first two components to <array-file>.png",
	Args:  oneOrThreeArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := args[0]
		m, err := loadArray(in)
		if err != nil {
			return err
		}
		out, err := reduce(m, componentsFlag(cmd, ppComponents))
		if err != nil {
			return err
		}
		var colors []color.RGBA
		if len(args) == 3 {
			r, _ := out.Dims()
			colors, err = resolveColors(r, args[1], args[2], &ppLabels)
			if err != nil {
				return err
			}
		}
		path, err := utils.DerivedPath(in, plotSuffix, ppOutput)
		if err != nil {
			return err
		}
		return writePlot(cmd, path, out, colors, figureOptions(cmd, ppDPI, ppTitle))
	},
}

// componentsFlag returns --components when set, else the configured rank.
func componentsFlag(cmd *cobra.Command, v int) int {
	if cmd.Flags().Changed("components") {
		return v
	}
	return cfg.Components
}

func init() {
	rootCmd.AddCommand(pcaCmd)
	pcaCmd.Flags().StringVarP(&pcaOutput, "output", "o", "", "output path (default <array-file>.pca.npy)")
	pcaCmd.Flags().IntVarP(&pcaComponents, "components", "k", 4, "number of principal components")

	rootCmd.AddCommand(pcaPlotCmd)
	pcaPlotCmd.Flags().StringVarP(&ppOutput, "output", "o", "", "output path (default <array-file>.png)")
	pcaPlotCmd.Flags().IntVarP(&ppComponents, "components", "k", 4, "number of principal components")
	pcaPlotCmd.Flags().IntVar(&ppDPI, "dpi", 80, "image resolution (overrides config)")
	pcaPlotCmd.Flags().StringVar(&ppTitle, "title", "", "plot title")
	ppLabels.register(pcaPlotCmd)
}

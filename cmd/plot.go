package cmd

import (
	"image/color"

	"github.com/KaramelBytes/genoplot/internal/utils"
	"github.com/spf13/cobra"
)

var (
	plotOutput string
	plotDPI    int
	plotTitle  string
	plotLabels labelFlags
)

var plotCmd = &cobra.Command{
	Use:   "plot <array-file> [<labels.csv> <samples-dir>]",
	Short: "Scatter-plot the first two columns of an array to <array-file>.png",
	Long: `Scatter-plot the first two columns of an array (typically the output of
"genoplot pca") to <array-file>.png.

With a labels CSV and a samples directory, each row is colored by the
population code of its sample. Files containing the exclude marker
(".2.fasta" by default) are skipped, the remaining files must match the
array rows one to one, and rows follow sorted file name order unless
--row-order is given.`,
	Args: oneOrThreeArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := args[0]
		m, err := loadArray(in)
		if err != nil {
			return err
		}
		var colors []color.RGBA
		if len(args) == 3 {
			r, _ := m.Dims()
			colors, err = resolveColors(r, args[1], args[2], &plotLabels)
			if err != nil {
				return err
			}
		}
		path, err := utils.DerivedPath(in, plotSuffix, plotOutput)
		if err != nil {
			return err
		}
		return writePlot(cmd, path, m, colors, figureOptions(cmd, plotDPI, plotTitle))
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringVarP(&plotOutput, "output", "o", "", "output path (default <array-file>.png)")
	plotCmd.Flags().IntVar(&plotDPI, "dpi", 80, "image resolution (overrides config)")
	plotCmd.Flags().StringVar(&plotTitle, "title", "", "plot title")
	plotLabels.register(plotCmd)
}

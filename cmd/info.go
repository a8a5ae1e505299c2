package cmd

import (
	"fmt"

	"github.com/KaramelBytes/genoplot/internal/analysis"
	"github.com/KaramelBytes/genoplot/internal/npy"
	"github.com/spf13/cobra"
)

var (
	infoColumns int
	infoPCA     bool
)

var infoCmd = &cobra.Command{
	Use:   "info <array-file>",
	Short: "Summarize an array: dtype, shape, column statistics and optional PCA variance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, h, err := npy.LoadWithHeader(args[0])
		if err != nil {
			return err
		}
		opt := analysis.DefaultOptions()
		if cmd.Flags().Changed("columns") {
			opt.MaxColumns = infoColumns
		}
		if infoPCA {
			opt.Components = cfg.Components
		}
		rep, err := analysis.Summarize(args[0], h.Dtype, m, opt)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rep.Markdown())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().IntVar(&infoColumns, "columns", 8, "number of leading columns to summarize (0 = all)")
	infoCmd.Flags().BoolVar(&infoPCA, "pca", false, "fit a PCA and report explained variance")
}

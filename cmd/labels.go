package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/KaramelBytes/genoplot/internal/labels"
	"github.com/spf13/cobra"
)

var (
	lblArray  string
	lblLabels labelFlags
)

var labelsCmd = &cobra.Command{
	Use:   "labels <labels.csv> <samples-dir>",
	Short: "Show how sample files resolve to array rows, population codes and colors",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		csvPath, dir := args[0], args[1]
		samples, err := labels.ListSamples(dir, cfg.ExcludeMarker)
		if err != nil {
			return err
		}
		rows := len(samples)
		if lblArray != "" {
			m, err := loadArray(lblArray)
			if err != nil {
				return err
			}
			rows, _ = m.Dims()
		}
		pal, err := buildPalette()
		if err != nil {
			return err
		}
		as, err := resolveAssignments(rows, csvPath, dir, &lblLabels)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ROW\tFILE\tID\tLABEL\tCOLOR")
		var firstErr error
		for _, a := range as {
			name, err := pal.Name(a.Label)
			if err != nil {
				name = "✗ " + err.Error()
				if firstErr == nil {
					firstErr = fmt.Errorf("sample %s: %w", a.File, err)
				}
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", a.Row, a.File, a.ID, a.Label, name)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		return firstErr
	},
}

func init() {
	rootCmd.AddCommand(labelsCmd)
	labelsCmd.Flags().StringVar(&lblArray, "array", "", "array file whose row count the samples must match")
	lblLabels.register(labelsCmd)
}

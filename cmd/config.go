package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/genoplot/internal/config"
	"github.com/KaramelBytes/genoplot/internal/labels"
	"github.com/KaramelBytes/genoplot/internal/palette"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set genoplot configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "components: %d\n", cfg.Components)
		fmt.Fprintf(out, "dpi: %d\n", cfg.DPI)
		fmt.Fprintf(out, "width_in: %.2f\n", cfg.WidthIn)
		fmt.Fprintf(out, "height_in: %.2f\n", cfg.HeightIn)
		fmt.Fprintf(out, "exclude_marker: %s\n", cfg.ExcludeMarker)
		fmt.Fprintf(out, "match_mode: %s\n", cfg.MatchMode)
		fmt.Fprintf(out, "collision: %s\n", cfg.Collision)
		fmt.Fprintf(out, "unknown_label: %s\n", cfg.UnknownLabel)
		if len(cfg.LabelColors) > 0 {
			codes := make([]string, 0, len(cfg.LabelColors))
			for c := range cfg.LabelColors {
				codes = append(codes, c)
			}
			sort.Strings(codes)
			fmt.Fprintln(out, "label_colors:")
			for _, c := range codes {
				fmt.Fprintf(out, "  %s: %s\n", strings.ToUpper(c), cfg.LabelColors[c])
			}
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long: `Set a config value and save to disk.

Keys: components, dpi, width_in, height_in, exclude_marker, match_mode,
collision, unknown_label, and label_colors.<CODE> to color one population code.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "components":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for components: %v", val)
			}
			cfg.Components = i
		case "dpi":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for dpi: %v", val)
			}
			cfg.DPI = i
		case "width_in", "height_in":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for %s: %v", key, val)
			}
			if key == "width_in" {
				cfg.WidthIn = f
			} else {
				cfg.HeightIn = f
			}
		case "exclude_marker":
			cfg.ExcludeMarker = val
		case "match_mode":
			m, err := labels.ParseMatchMode(val)
			if err != nil {
				return err
			}
			cfg.MatchMode = string(m)
		case "collision":
			c, err := labels.ParseCollision(val)
			if err != nil {
				return err
			}
			cfg.Collision = string(c)
		case "unknown_label":
			if _, err := palette.New(nil, val); err != nil {
				return err
			}
			cfg.UnknownLabel = strings.ToLower(val)
		default:
			code, ok := strings.CutPrefix(key, "label_colors.")
			if !ok || code == "" {
				return fmt.Errorf("unknown key: %s", key)
			}
			code = strings.ToUpper(code)
			if _, err := palette.New(map[string]string{code: val}, ""); err != nil {
				return err
			}
			if cfg.LabelColors == nil {
				cfg.LabelColors = map[string]string{}
			}
			cfg.LabelColors[code] = strings.ToLower(val)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

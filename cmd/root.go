package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/genoplot/internal/config"
	"github.com/KaramelBytes/genoplot/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	quiet   bool

	// Loaded configuration
	cfg *cfgpkg.Global
	// Per-invocation logger
	log = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "genoplot",
	Short: "genoplot: PCA and scatter plots of genotype feature matrices",
	Long: `genoplot loads a NumPy feature matrix (one row per sample), optionally reduces it
with principal component analysis, optionally colors each sample by population
using a labels CSV and a directory of per-sample files, and renders a scatter
plot of the first two columns to PNG.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.genoplot/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
}

// setup loads configuration and the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	log = logging.New(cmd.ErrOrStderr(), debug, quiet)
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c
	log.WithFields(logrus.Fields{
		"command": cmd.CommandPath(),
		"args":    args,
	}).Debug("starting")
	return nil
}

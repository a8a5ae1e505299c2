package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// PCA
	Components int `mapstructure:"components" yaml:"components"`

	// Figure geometry
	DPI      int     `mapstructure:"dpi" yaml:"dpi"`
	WidthIn  float64 `mapstructure:"width_in" yaml:"width_in"`
	HeightIn float64 `mapstructure:"height_in" yaml:"height_in"`

	// Sample labeling
	ExcludeMarker string            `mapstructure:"exclude_marker" yaml:"exclude_marker"`
	MatchMode     string            `mapstructure:"match_mode" yaml:"match_mode"`
	Collision     string            `mapstructure:"collision" yaml:"collision"`
	UnknownLabel  string            `mapstructure:"unknown_label" yaml:"unknown_label"`
	LabelColors   map[string]string `mapstructure:"label_colors" yaml:"label_colors,omitempty"`
}

// DefaultPath returns ~/.genoplot/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".genoplot", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.genoplot/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("GENOPLOT")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("components", 4)
	v.SetDefault("dpi", 80)
	v.SetDefault("width_in", 6.4)
	v.SetDefault("height_in", 4.8)
	v.SetDefault("exclude_marker", ".2.fasta")
	v.SetDefault("match_mode", "exact")
	v.SetDefault("collision", "error")
	v.SetDefault("unknown_label", "error")
	v.SetDefault("label_colors", map[string]string{})

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		// A missing explicit file is allowed so `config set` can create it.
		if _, err := os.Stat(cfgFile); err == nil {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".genoplot"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// viper lowercases map keys; population codes are upper case.
	if len(c.LabelColors) > 0 {
		norm := make(map[string]string, len(c.LabelColors))
		for code, name := range c.LabelColors {
			norm[strings.ToUpper(code)] = name
		}
		c.LabelColors = norm
	}
	if c.Components < 1 {
		return nil, fmt.Errorf("invalid components: %d (must be >= 1)", c.Components)
	}
	if c.DPI < 1 {
		return nil, fmt.Errorf("invalid dpi: %d (must be >= 1)", c.DPI)
	}
	if c.WidthIn <= 0 || c.HeightIn <= 0 {
		return nil, fmt.Errorf("invalid figure size: %gx%g inches", c.WidthIn, c.HeightIn)
	}
	return &c, nil
}

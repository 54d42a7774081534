// Package config loads genframeworks configuration via viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for genframeworks
type Config struct {
	// Swiftc is the compiler binary used for dependency scanning.
	Swiftc string `mapstructure:"swiftc" yaml:"swiftc"`

	// FrameworksDir is the frameworks directory relative to the SDK root.
	FrameworksDir string `mapstructure:"frameworks_dir" yaml:"frameworks_dir"`

	// AllowedLibs are non-framework libraries permitted to appear as
	// dependencies even though they are not framework bundles.
	AllowedLibs []string `mapstructure:"allowed_libs" yaml:"allowed_libs"`

	// Exclude holds glob patterns for framework names to skip during
	// discovery.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
}

var defaultConfig = Config{
	Swiftc:        "swiftc",
	FrameworksDir: "System/Library/Frameworks",
	// simd ships as a plain library, not a framework bundle, but is a
	// legitimate dependency target.
	AllowedLibs: []string{"simd"},
	Exclude:     []string{},
}

// Default returns a copy of the built-in defaults.
func Default() Config {
	cfg := defaultConfig
	cfg.AllowedLibs = append([]string(nil), defaultConfig.AllowedLibs...)
	cfg.Exclude = append([]string(nil), defaultConfig.Exclude...)
	return cfg
}

// LoadConfig loads configuration from defaults, an optional
// .genframeworks.yaml in the working directory or home, and
// GENFRAMEWORKS_* environment variables, in increasing precedence.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("swiftc", defaultConfig.Swiftc)
	v.SetDefault("frameworks_dir", defaultConfig.FrameworksDir)
	v.SetDefault("allowed_libs", defaultConfig.AllowedLibs)
	v.SetDefault("exclude", defaultConfig.Exclude)

	v.SetConfigName(".genframeworks")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")     // Current directory
	v.AddConfigPath("$HOME") // Home directory

	v.SetEnvPrefix("GENFRAMEWORKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; fall back to defaults
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	return &config, nil
}

// DefaultYAML renders the default configuration as a commented YAML
// document, used by `genframeworks init` to seed a config file.
func DefaultYAML() ([]byte, error) {
	body, err := yaml.Marshal(defaultConfig)
	if err != nil {
		return nil, fmt.Errorf("error marshaling default config: %v", err)
	}

	header := "# genframeworks configuration\n" +
		"# Flags override these values; GENFRAMEWORKS_* env vars override the file.\n"
	return append([]byte(header), body...), nil
}

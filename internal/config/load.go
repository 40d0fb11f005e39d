package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/lgbarn/pgn-report-go/internal/errors"
)

// EnvPrefix prefixes environment variables that override file settings,
// e.g. PGNREPORT_OUTPUT_WIDTH.
const EnvPrefix = "PGNREPORT"

// fileConfig mirrors Config with the string forms used in config files.
type fileConfig struct {
	Output struct {
		Format      string `mapstructure:"format"`
		Width       uint   `mapstructure:"width"`
		Comments    bool   `mapstructure:"comments"`
		StripClocks bool   `mapstructure:"strip_clocks"`
		Tags        string `mapstructure:"tags"`
	} `mapstructure:"output"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Workers int `mapstructure:"workers"`
}

// setDefaults registers every key so environment overrides apply even
// without a config file.
func setDefaults(v *viper.Viper) {
	def := NewConfig()
	v.SetDefault("output.format", def.Output.Format.String())
	v.SetDefault("output.width", def.Output.MaxLineLength)
	v.SetDefault("output.comments", def.Output.KeepComments)
	v.SetDefault("output.strip_clocks", def.Output.StripClockAnnotations)
	v.SetDefault("output.tags", def.Output.TagFormat.String())
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("workers", def.Workers)
}

// Load reads configuration from path (YAML, TOML or JSON, chosen by
// extension) layered over the defaults and PGNREPORT_* environment
// variables. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", errors.ErrInvalidConfig, path, err)
		}
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", errors.ErrInvalidConfig, path, err)
	}

	cfg, err := fc.toConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (fc *fileConfig) toConfig() (*Config, error) {
	format, err := ParseFormat(fc.Output.Format)
	if err != nil {
		return nil, err
	}
	tags, err := ParseTagForm(fc.Output.Tags)
	if err != nil {
		return nil, err
	}
	return &Config{
		Output: OutputConfig{
			Format:                format,
			MaxLineLength:         fc.Output.Width,
			KeepComments:          fc.Output.Comments,
			StripClockAnnotations: fc.Output.StripClocks,
			TagFormat:             tags,
		},
		Log:     LogConfig{Level: fc.Log.Level},
		Workers: fc.Workers,
	}, nil
}

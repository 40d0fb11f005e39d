package config

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// From starts a builder from a copy of base, typically the result of Load.
func From(base *Config) *ConfigBuilder {
	cp := *base
	return &ConfigBuilder{cfg: &cp}
}

// Build validates and returns the built Config.
func (b *ConfigBuilder) Build() (*Config, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	return b.cfg, nil
}

// WithOutputFormat sets the output format.
func (b *ConfigBuilder) WithOutputFormat(format OutputFormat) *ConfigBuilder {
	b.cfg.Output.Format = format
	return b
}

// WithMaxLineLength sets the maximum line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// WithTagFormat sets which tags are written.
func (b *ConfigBuilder) WithTagFormat(form TagOutputForm) *ConfigBuilder {
	b.cfg.Output.TagFormat = form
	return b
}

// KeepComments controls whether comments are kept.
func (b *ConfigBuilder) KeepComments(keep bool) *ConfigBuilder {
	b.cfg.Output.KeepComments = keep
	return b
}

// StripClocks controls whether [%clk ...] annotations are removed from comments.
func (b *ConfigBuilder) StripClocks(strip bool) *ConfigBuilder {
	b.cfg.Output.StripClockAnnotations = strip
	return b
}

// WithWorkers sets the number of concurrent parses.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithLogLevel sets the log level name.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Log.Level = level
	return b
}

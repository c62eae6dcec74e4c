package config

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Log level: debug, info, warn, error
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// Log format: text, json
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// Suppress the per-tick event stream (completions, auto-starts) and
	// only log command results and day summaries
	Quiet bool `mapstructure:"quiet"`
}

package config

// LoggingConfig controls the diagnostic logs written to stderr.
type LoggingConfig struct {
	Level string `json:"level" validate:"oneof=debug info warn error"`
	// Format is "json" or "console".
	Format string `json:"format" validate:"oneof=json console"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
}

package anki

import (
	"time"
)

const (
	// DefaultURL is the address AnkiConnect listens on
	DefaultURL = "http://127.0.0.1:8765"
	// DefaultDeckName is the deck cards are exported to
	DefaultDeckName = "ContextLingo"
	// DefaultModelName is used when no note type is configured
	DefaultModelName = "Basic"
	// DefaultMasteryThreshold is the review interval in days after which
	// a card counts as learned
	DefaultMasteryThreshold = 90
	// MarkerTag is attached to every exported note
	MarkerTag = "ContextLingo"
)

// Templates holds the HTML card templates
type Templates struct {
	Front string `mapstructure:"front" yaml:"front"`
	Back  string `mapstructure:"back" yaml:"back"`
}

// Config configures the AnkiConnect bridge and card export
type Config struct {
	URL              string        `mapstructure:"url" yaml:"url"`
	DeckName         string        `mapstructure:"deck_name" yaml:"deck_name"`
	ModelName        string        `mapstructure:"model_name" yaml:"model_name"`
	MasteryThreshold int           `mapstructure:"sync_interval" yaml:"sync_interval"`
	AutoSync         bool          `mapstructure:"auto_sync" yaml:"auto_sync"`
	Timeout          time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Templates        Templates     `mapstructure:"templates" yaml:"templates"`
}

// DefaultConfig returns the default bridge and template settings
func DefaultConfig() *Config {
	return &Config{
		URL:              DefaultURL,
		DeckName:         DefaultDeckName,
		ModelName:        DefaultModelName,
		MasteryThreshold: DefaultMasteryThreshold,
		AutoSync:         true,
		Timeout:          30 * time.Second,
		Templates: Templates{
			Front: DefaultFrontTemplate,
			Back:  DefaultBackTemplate,
		},
	}
}

// Model returns the configured note type, falling back to DefaultModelName
func (c *Config) Model() string {
	if c.ModelName == "" {
		return DefaultModelName
	}
	return c.ModelName
}

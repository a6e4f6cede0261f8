package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// Global flags
	CfgFile   string
	EnvFile   string
	StorePath string
	LogLevel  string
	LogFormat string

	// Anki flags, bound to the anki.* config keys
	URL       string
	DeckName  string
	ModelName string

	// Command flags
	Scope        string
	Category     string
	Every        time.Duration
	MetricsAddr  string
	Output       string
	Side         string
	TemplateFile string
	SettingsFile string
	PlainText    bool
	IncludeTags  bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		EnvFile:     ".env",
		LogLevel:    "info",
		LogFormat:   "console",
		Category:    "want",
		Every:       10 * time.Minute,
		Side:        "front",
		IncludeTags: true,
	}
}

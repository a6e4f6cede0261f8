package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"codeberg.org/snonux/lingoanki/internal/anki"
	"codeberg.org/snonux/lingoanki/internal/settings"
)

// InitConfig initializes viper configuration. Variables from envFile are
// exported first so LINGOANKI_* entries in it behave like real environment
// variables.
func InitConfig(cfgFile, envFile string) {
	loadEnvFile(envFile)

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".lingoanki" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lingoanki")
	}

	// Environment variables, e.g. LINGOANKI_ANKI_DECK_NAME
	viper.SetEnvPrefix("LINGOANKI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func loadEnvFile(envFile string) {
	if envFile == "" {
		return
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", envFile, err)
	}
}

// SetDefaults registers the default value of every known config key
func SetDefaults() {
	d := settings.DefaultAnki()

	viper.SetDefault("anki.enabled", d.Enabled)
	viper.SetDefault("anki.url", d.URL)
	viper.SetDefault("anki.deck_name", d.DeckName)
	viper.SetDefault("anki.model_name", d.ModelName)
	viper.SetDefault("anki.sync_interval", d.MasteryThreshold)
	viper.SetDefault("anki.auto_sync", d.AutoSync)
	viper.SetDefault("anki.timeout", d.Timeout)
	viper.SetDefault("anki.sync_scope.want_to_learn", d.SyncScope.WantToLearn)
	viper.SetDefault("anki.sync_scope.learning", d.SyncScope.Learning)
	viper.SetDefault("anki.templates.front", d.Templates.Front)
	viper.SetDefault("anki.templates.back", d.Templates.Back)

	viper.SetDefault("store.path", DefaultStorePath())
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
}

// LoadAnkiSettings reads the anki.* keys. Keys are read one by one because
// flags bound below "anki." hide the parent map from viper.Sub and
// viper.UnmarshalKey.
func LoadAnkiSettings() (*settings.AnkiSettings, error) {
	d := settings.DefaultAnki()

	s := &settings.AnkiSettings{
		Enabled: viper.GetBool("anki.enabled"),
		SyncScope: settings.SyncScope{
			WantToLearn: viper.GetBool("anki.sync_scope.want_to_learn"),
			Learning:    viper.GetBool("anki.sync_scope.learning"),
		},
		Config: anki.Config{
			URL:              strings.TrimSpace(viper.GetString("anki.url")),
			DeckName:         strings.TrimSpace(viper.GetString("anki.deck_name")),
			ModelName:        strings.TrimSpace(viper.GetString("anki.model_name")),
			MasteryThreshold: viper.GetInt("anki.sync_interval"),
			AutoSync:         viper.GetBool("anki.auto_sync"),
			Timeout:          viper.GetDuration("anki.timeout"),
			Templates: anki.Templates{
				Front: viper.GetString("anki.templates.front"),
				Back:  viper.GetString("anki.templates.back"),
			},
		},
	}

	if s.URL == "" {
		s.URL = d.URL
	}
	if s.Timeout <= 0 {
		s.Timeout = d.Timeout
	}
	if s.MasteryThreshold < 0 {
		return nil, fmt.Errorf("anki.sync_interval must not be negative, got %d", s.MasteryThreshold)
	}

	return s, nil
}

// StorePath returns the configured entry database location with a leading
// "~/" expanded
func StorePath() string {
	path := viper.GetString("store.path")
	if path == "" {
		path = DefaultStorePath()
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}

// DefaultStorePath is the entry database location used when none is configured
func DefaultStorePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "lingoanki", "entries.db")
}

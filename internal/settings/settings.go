package settings

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/lingoanki/internal/anki"
	"codeberg.org/snonux/lingoanki/internal/vocab"
)

// SyncScope selects which categories are exported when no explicit scope
// is given
type SyncScope struct {
	WantToLearn bool `mapstructure:"want_to_learn" yaml:"want_to_learn"`
	Learning    bool `mapstructure:"learning" yaml:"learning"`
}

// Categories returns the enabled categories, want-to-learn first
func (s SyncScope) Categories() []vocab.Category {
	var out []vocab.Category
	if s.WantToLearn {
		out = append(out, vocab.WantToLearnWord)
	}
	if s.Learning {
		out = append(out, vocab.LearningWord)
	}
	return out
}

// AnkiSettings is the Anki part of the settings
type AnkiSettings struct {
	Enabled     bool      `mapstructure:"enabled" yaml:"enabled"`
	SyncScope   SyncScope `mapstructure:"sync_scope" yaml:"sync_scope"`
	anki.Config `mapstructure:",squash" yaml:",inline"`
}

// Settings aggregates every settings record
type Settings struct {
	Styles        map[vocab.Category]StyleConfig `yaml:"styles"`
	OriginalText  OriginalTextConfig             `yaml:"original_text"`
	Scenarios     []Scenario                     `yaml:"scenarios"`
	Engines       []TranslationEngine            `yaml:"translation_engines"`
	Dictionaries  []DictionaryEngine             `yaml:"dictionaries"`
	Interaction   WordInteractionConfig          `yaml:"word_interaction"`
	PageWidget    PageWidgetConfig               `yaml:"page_widget"`
	AutoTranslate AutoTranslateConfig            `yaml:"auto_translate"`
	Anki          AnkiSettings                   `yaml:"anki"`
	MergeStrategy MergeStrategyConfig            `yaml:"merge_strategy"`
}

// DefaultAnki returns the Anki defaults
func DefaultAnki() AnkiSettings {
	return AnkiSettings{
		Enabled:   true,
		SyncScope: SyncScope{WantToLearn: true, Learning: true},
		Config:    *anki.DefaultConfig(),
	}
}

// Defaults returns a fresh copy of all default settings
func Defaults() *Settings {
	return &Settings{
		Styles:        DefaultStyles(),
		OriginalText:  DefaultOriginalText(),
		Scenarios:     DefaultScenarios(),
		Engines:       DefaultTranslationEngines(),
		Dictionaries:  DefaultDictionaries(),
		Interaction:   DefaultWordInteraction(),
		PageWidget:    DefaultPageWidget(),
		AutoTranslate: DefaultAutoTranslate(),
		Anki:          DefaultAnki(),
		MergeStrategy: DefaultMergeStrategy(),
	}
}

// Load reads a YAML settings file on top of the defaults. Keys missing from
// the file keep their default value.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML settings on top of the defaults
func Parse(data []byte) (*Settings, error) {
	s := Defaults()
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return s, nil
}

// Marshal encodes s as YAML
func (s *Settings) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

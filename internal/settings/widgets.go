package settings

// Trigger is a modifier key plus mouse action
type Trigger struct {
	Modifier string `yaml:"modifier"`
	Action   string `yaml:"action"`
	Delay    int    `yaml:"delay_ms"`
}

// WordInteractionConfig controls the word bubble
type WordInteractionConfig struct {
	MainTrigger          Trigger `yaml:"main_trigger"`
	QuickAddTrigger      Trigger `yaml:"quick_add_trigger"`
	BubblePosition       string  `yaml:"bubble_position"`
	ShowPhonetic         bool    `yaml:"show_phonetic"`
	ShowOriginalText     bool    `yaml:"show_original_text"`
	ShowDictExample      bool    `yaml:"show_dict_example"`
	ShowDictTranslation  bool    `yaml:"show_dict_translation"`
	AutoPronounce        bool    `yaml:"auto_pronounce"`
	AutoPronounceAccent  string  `yaml:"auto_pronounce_accent"`
	AutoPronounceCount   int     `yaml:"auto_pronounce_count"`
	DismissDelay         int     `yaml:"dismiss_delay_ms"`
	AllowMultipleBubbles bool    `yaml:"allow_multiple_bubbles"`
}

// Point is a screen position
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Size is a width and height in pixels
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Toggle is a labelled on/off item in an ordered list
type Toggle struct {
	ID      string `yaml:"id"`
	Label   string `yaml:"label"`
	Enabled bool   `yaml:"enabled"`
}

// SectionVisibility selects which categories the widget lists
type SectionVisibility struct {
	Known    bool `yaml:"known"`
	Want     bool `yaml:"want"`
	Learning bool `yaml:"learning"`
}

// PageWidgetConfig configures the floating word list. A zero position
// means the widget places itself.
type PageWidgetConfig struct {
	Enabled         bool    `yaml:"enabled"`
	X               int     `yaml:"x"`
	Y               int     `yaml:"y"`
	Width           int     `yaml:"width"`
	MaxHeight       int     `yaml:"max_height"`
	Opacity         float64 `yaml:"opacity"`
	BackgroundColor string  `yaml:"background_color"`
	FontSize        string  `yaml:"font_size"`

	ModalPosition Point `yaml:"modal_position"`
	ModalSize     Size  `yaml:"modal_size"`

	ShowPhonetic           bool `yaml:"show_phonetic"`
	ShowMeaning            bool `yaml:"show_meaning"`
	ShowMultiExamples      bool `yaml:"show_multi_examples"`
	ShowExampleTranslation bool `yaml:"show_example_translation"`
	ShowContextTranslation bool `yaml:"show_context_translation"`
	ShowInflections        bool `yaml:"show_inflections"`
	ShowPartOfSpeech       bool `yaml:"show_part_of_speech"`
	ShowTags               bool `yaml:"show_tags"`
	ShowImportance         bool `yaml:"show_importance"`
	ShowCocaRank           bool `yaml:"show_coca_rank"`

	ShowSections SectionVisibility `yaml:"show_sections"`
	CardDisplay  []Toggle          `yaml:"card_display"`
}

// AutoTranslateConfig controls page translation
type AutoTranslateConfig struct {
	Enabled            bool     `yaml:"enabled"`
	BilingualMode      bool     `yaml:"bilingual_mode"`
	TranslateWholePage bool     `yaml:"translate_whole_page"`
	MatchInflections   bool     `yaml:"match_inflections"`
	Blacklist          []string `yaml:"blacklist"`
	Whitelist          []string `yaml:"whitelist"`
	TTSSpeed           float64  `yaml:"tts_speed"`
}

// MergeStrategyConfig controls how entries for the same word are merged
// and which details are shown
type MergeStrategyConfig struct {
	Strategy               string   `yaml:"strategy"`
	ShowMultiExamples      bool     `yaml:"show_multi_examples"`
	ShowExampleTranslation bool     `yaml:"show_example_translation"`
	ShowContextTranslation bool     `yaml:"show_context_translation"`
	ShowPartOfSpeech       bool     `yaml:"show_part_of_speech"`
	ShowTags               bool     `yaml:"show_tags"`
	ShowImportance         bool     `yaml:"show_importance"`
	ShowCocaRank           bool     `yaml:"show_coca_rank"`
	ShowImage              bool     `yaml:"show_image"`
	ShowVideo              bool     `yaml:"show_video"`
	ExampleOrder           []Toggle `yaml:"example_order"`
}

// DefaultWordInteraction returns the bubble defaults
func DefaultWordInteraction() WordInteractionConfig {
	return WordInteractionConfig{
		MainTrigger:         Trigger{Modifier: "None", Action: "Hover", Delay: 600},
		QuickAddTrigger:     Trigger{Modifier: "Alt", Action: "DoubleClick"},
		BubblePosition:      "top",
		ShowPhonetic:        true,
		ShowOriginalText:    true,
		ShowDictExample:     true,
		ShowDictTranslation: true,
		AutoPronounce:       true,
		AutoPronounceAccent: "US",
		AutoPronounceCount:  1,
		DismissDelay:        300,
	}
}

// DefaultPageWidget returns the widget defaults
func DefaultPageWidget() PageWidgetConfig {
	return PageWidgetConfig{
		Enabled:         true,
		Width:           380,
		MaxHeight:       600,
		Opacity:         0.98,
		BackgroundColor: "#ffffff",
		FontSize:        "14px",
		ModalSize:       Size{Width: 500, Height: 600},

		ShowPhonetic:           true,
		ShowMeaning:            true,
		ShowMultiExamples:      true,
		ShowExampleTranslation: true,
		ShowContextTranslation: true,
		ShowInflections:        true,
		ShowPartOfSpeech:       true,
		ShowTags:               true,
		ShowImportance:         true,
		ShowCocaRank:           true,

		ShowSections: SectionVisibility{Want: true, Learning: true},
		CardDisplay: []Toggle{
			{ID: "context", Label: "Source sentence", Enabled: true},
			{ID: "mixed", Label: "Mixed sentence"},
			{ID: "dictExample", Label: "Dictionary example", Enabled: true},
		},
	}
}

// DefaultAutoTranslate returns the page translation defaults
func DefaultAutoTranslate() AutoTranslateConfig {
	return AutoTranslateConfig{
		Enabled:          true,
		MatchInflections: true,
		Blacklist:        []string{"google.com", "baidu.com"},
		Whitelist:        []string{"nytimes.com", "medium.com"},
		TTSSpeed:         1.0,
	}
}

// DefaultMergeStrategy returns the merge defaults
func DefaultMergeStrategy() MergeStrategyConfig {
	return MergeStrategyConfig{
		Strategy:               "by_word",
		ShowMultiExamples:      true,
		ShowExampleTranslation: true,
		ShowContextTranslation: true,
		ShowPartOfSpeech:       true,
		ShowTags:               true,
		ShowImportance:         true,
		ShowCocaRank:           true,
		ShowImage:              true,
		ShowVideo:              true,
		ExampleOrder: []Toggle{
			{ID: "context", Label: "Context", Enabled: true},
			{ID: "mixed", Label: "Mixed", Enabled: true},
			{ID: "dictionary", Label: "Dictionary", Enabled: true},
			{ID: "phrases", Label: "Phrases", Enabled: true},
			{ID: "roots", Label: "Roots", Enabled: true},
			{ID: "synonyms", Label: "Synonyms", Enabled: true},
			{ID: "inflections", Label: "Morphology", Enabled: true},
		},
	}
}

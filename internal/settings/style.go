package settings

import "codeberg.org/snonux/lingoanki/internal/vocab"

// StyleConfig describes how a highlighted word is rendered on a page
type StyleConfig struct {
	Color           string  `yaml:"color"`
	BackgroundColor string  `yaml:"background_color"`
	UnderlineStyle  string  `yaml:"underline_style"`
	UnderlineColor  string  `yaml:"underline_color"`
	UnderlineOffset string  `yaml:"underline_offset"`
	IsBold          bool    `yaml:"bold"`
	IsItalic        bool    `yaml:"italic"`
	FontSize        string  `yaml:"font_size"`
	Opacity         float64 `yaml:"opacity"`
	DensityMode     string  `yaml:"density_mode"`
	DensityValue    int     `yaml:"density_value"`
}

// Wrapper surrounds a text with a prefix and suffix
type Wrapper struct {
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
}

// Wrappers pairs the translation and original text wrappers
type Wrappers struct {
	Translation Wrapper `yaml:"translation"`
	Original    Wrapper `yaml:"original"`
}

// HorizontalLayout places original and translation on one line
type HorizontalLayout struct {
	TranslationFirst bool     `yaml:"translation_first"`
	Wrappers         Wrappers `yaml:"wrappers"`
}

// VerticalLayout stacks original and translation
type VerticalLayout struct {
	TranslationFirst bool     `yaml:"translation_first"`
	BaselineTarget   string   `yaml:"baseline_target"`
	Wrappers         Wrappers `yaml:"wrappers"`
}

// OriginalTextConfig controls how the original word is shown next to its
// translation
type OriginalTextConfig struct {
	Show           bool             `yaml:"show"`
	ActiveMode     string           `yaml:"active_mode"`
	BracketsTarget string           `yaml:"brackets_target"`
	Horizontal     HorizontalLayout `yaml:"horizontal"`
	Vertical       VerticalLayout   `yaml:"vertical"`
	Style          StyleConfig      `yaml:"style"`
}

// DefaultStyle is the base word style
func DefaultStyle() StyleConfig {
	return StyleConfig{
		Color:           "#000000",
		BackgroundColor: "transparent",
		UnderlineStyle:  "none",
		UnderlineColor:  "#000000",
		UnderlineOffset: "2px",
		FontSize:        "1em",
		Opacity:         1,
		DensityMode:     "percent",
		DensityValue:    100,
	}
}

// DefaultStyles returns the per category word styles
func DefaultStyles() map[vocab.Category]StyleConfig {
	known := DefaultStyle()
	known.Color = "#15803d"

	want := DefaultStyle()
	want.Color = "#b45309"
	want.IsBold = true

	learning := DefaultStyle()
	learning.Color = "#b91c1c"
	learning.BackgroundColor = "#fef2f2"
	learning.IsBold = true

	return map[vocab.Category]StyleConfig{
		vocab.KnownWord:       known,
		vocab.WantToLearnWord: want,
		vocab.LearningWord:    learning,
	}
}

// DefaultOriginalText returns the original text display defaults
func DefaultOriginalText() OriginalTextConfig {
	style := DefaultStyle()
	style.Color = "#94a3b8"
	style.FontSize = "0.85em"

	return OriginalTextConfig{
		Show:           true,
		ActiveMode:     "horizontal",
		BracketsTarget: "original",
		Horizontal: HorizontalLayout{
			TranslationFirst: false,
			Wrappers: Wrappers{
				Original: Wrapper{Prefix: "(", Suffix: ")"},
			},
		},
		Vertical: VerticalLayout{
			TranslationFirst: true,
			BaselineTarget:   "translation",
		},
		Style: style,
	}
}

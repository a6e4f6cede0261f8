package vocab

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category is the study state of a word entry
type Category string

const (
	KnownWord       Category = "KnownWord"
	WantToLearnWord Category = "WantToLearnWord"
	LearningWord    Category = "LearningWord"
)

// Categories lists every valid category in display order
var Categories = []Category{KnownWord, WantToLearnWord, LearningWord}

// ErrEmptyText is returned by Validate for entries without surface text
var ErrEmptyText = errors.New("entry text is empty")

// Valid reports whether c is one of the enumerated categories
func (c Category) Valid() bool {
	switch c {
	case KnownWord, WantToLearnWord, LearningWord:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory converts user input into a Category. Besides the canonical
// names it accepts the short forms used on the command line.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "knownword", "known":
		return KnownWord, nil
	case "wanttolearnword", "wanttolearn", "want-to-learn", "want":
		return WantToLearnWord, nil
	case "learningword", "learning":
		return LearningWord, nil
	}
	return "", fmt.Errorf("unknown category %q (use known, want or learning)", s)
}

// WordEntry is a captured vocabulary item with its translation and the
// context it was seen in. JSON names match the browser extension storage.
type WordEntry struct {
	ID                          string   `json:"id"`
	Text                        string   `json:"text"`
	PhoneticUS                  string   `json:"phoneticUs,omitempty"`
	PhoneticUK                  string   `json:"phoneticUk,omitempty"`
	Translation                 string   `json:"translation,omitempty"`
	PartOfSpeech                string   `json:"partOfSpeech,omitempty"`
	ContextSentence             string   `json:"contextSentence,omitempty"`
	ContextSentenceTranslation  string   `json:"contextSentenceTranslation,omitempty"`
	MixedSentence               string   `json:"mixedSentence,omitempty"`
	ContextParagraph            string   `json:"contextParagraph,omitempty"`
	ContextParagraphTranslation string   `json:"contextParagraphTranslation,omitempty"`
	SourceURL                   string   `json:"sourceUrl,omitempty"`
	Category                    Category `json:"category"`
	AddedAt                     int64    `json:"addedAt"` // unix millis
	Tags                        []string `json:"tags,omitempty"`
}

// Validate checks the entry invariants
func (e WordEntry) Validate() error {
	if strings.TrimSpace(e.Text) == "" {
		return ErrEmptyText
	}
	if !e.Category.Valid() {
		return fmt.Errorf("entry %q: invalid category %q", e.Text, e.Category)
	}
	return nil
}

// AddedTime returns the creation timestamp as time.Time
func (e WordEntry) AddedTime() time.Time {
	return time.UnixMilli(e.AddedAt)
}

// Phonetic returns the US transcription, falling back to the UK one
func (e WordEntry) Phonetic() string {
	if e.PhoneticUS != "" {
		return e.PhoneticUS
	}
	return e.PhoneticUK
}

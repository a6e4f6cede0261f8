package anki

import (
	"errors"
	"strings"

	"codeberg.org/snonux/lingoanki/internal/vocab"
)

// ErrDeckRequired is returned when an export is attempted without a deck
var ErrDeckRequired = errors.New("target deck name is not configured")

// NoteFields holds the rendered card sides
type NoteFields struct {
	Front string `json:"Front"`
	Back  string `json:"Back"`
}

// NoteOptions controls how the bridge treats duplicates
type NoteOptions struct {
	AllowDuplicate bool   `json:"allowDuplicate"`
	DuplicateScope string `json:"duplicateScope"`
}

// NoteRequest is a single note creation request in AnkiConnect format
type NoteRequest struct {
	DeckName  string      `json:"deckName"`
	ModelName string      `json:"modelName"`
	Fields    NoteFields  `json:"fields"`
	Tags      []string    `json:"tags"`
	Options   NoteOptions `json:"options"`
}

// BuildNotes renders one note request per entry, in entry order. It never
// talks to the bridge; a missing deck name is reported as ErrDeckRequired.
func BuildNotes(entries []vocab.WordEntry, cfg *Config) ([]NoteRequest, error) {
	if cfg == nil || strings.TrimSpace(cfg.DeckName) == "" {
		return nil, ErrDeckRequired
	}

	model := cfg.Model()
	notes := make([]NoteRequest, 0, len(entries))
	for _, entry := range entries {
		tags := make([]string, 0, len(entry.Tags)+1)
		tags = append(tags, MarkerTag)
		tags = append(tags, entry.Tags...)

		notes = append(notes, NoteRequest{
			DeckName:  cfg.DeckName,
			ModelName: model,
			Fields: NoteFields{
				Front: Render(entry, cfg.Templates.Front),
				Back:  Render(entry, cfg.Templates.Back),
			},
			Tags: tags,
			Options: NoteOptions{
				AllowDuplicate: false,
				DuplicateScope: "deck",
			},
		})
	}

	return notes, nil
}

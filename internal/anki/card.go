package anki

import "fmt"

// CardField is a single note field as reported by AnkiConnect
type CardField struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// Card is the subset of AnkiConnect's cardsInfo result used for progress sync
type Card struct {
	CardID    int64                `json:"cardId"`
	NoteID    int64                `json:"note"`
	DeckName  string               `json:"deckName"`
	ModelName string               `json:"modelName"`
	Interval  int                  `json:"interval"`
	Fields    map[string]CardField `json:"fields"`
}

// Field returns the raw HTML value of the named field, or "" if absent
func (c Card) Field(name string) string {
	if f, ok := c.Fields[name]; ok {
		return f.Value
	}
	return ""
}

// Front returns the raw HTML of the card's "Front" field
func (c Card) Front() string {
	return c.Field("Front")
}

// ProgressQuery builds the search used to find mastered cards: reviewed
// cards in deck whose interval is at least threshold days.
func ProgressQuery(deck string, threshold int) string {
	return fmt.Sprintf(`deck:"%s" is:review prop:ivl>=%d`, deck, threshold)
}

package anki

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"codeberg.org/snonux/lingoanki/internal/vocab"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.DeckName = "Vocab"
	cfg.Templates = Templates{
		Front: "{{sentence-a}}<b>{{word}}</b>{{sentence-e}}",
		Back:  "{{translation}}",
	}
	return cfg
}

func TestBuildNotes(t *testing.T) {
	entries := []vocab.WordEntry{
		{Text: "run", ContextSentence: "I will run fast.", Translation: "跑", Category: vocab.LearningWord, Tags: []string{"verbs", "ContextLingo"}},
		{Text: "walk", Translation: "走", Category: vocab.LearningWord},
	}

	notes, err := BuildNotes(entries, testConfig())
	if err != nil {
		t.Fatalf("BuildNotes failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}

	first := notes[0]
	if first.DeckName != "Vocab" {
		t.Errorf("expected deck 'Vocab', got %q", first.DeckName)
	}
	if first.ModelName != "Basic" {
		t.Errorf("expected model 'Basic', got %q", first.ModelName)
	}
	if first.Fields.Front != "I will <b>run</b> fast." {
		t.Errorf("unexpected front %q", first.Fields.Front)
	}
	if first.Fields.Back != "跑" {
		t.Errorf("unexpected back %q", first.Fields.Back)
	}
	// Tags are a verbatim union, duplicates included
	if want := []string{"ContextLingo", "verbs", "ContextLingo"}; !reflect.DeepEqual(first.Tags, want) {
		t.Errorf("tags = %v, want %v", first.Tags, want)
	}
	if first.Options.AllowDuplicate || first.Options.DuplicateScope != "deck" {
		t.Errorf("unexpected options %+v", first.Options)
	}

	if want := []string{"ContextLingo"}; !reflect.DeepEqual(notes[1].Tags, want) {
		t.Errorf("tags = %v, want %v", notes[1].Tags, want)
	}
	if notes[1].Fields.Front != "<b>walk</b>" {
		t.Errorf("unexpected front for entry without sentence: %q", notes[1].Fields.Front)
	}
}

func TestBuildNotes_DeckRequired(t *testing.T) {
	cfg := testConfig()
	for _, deck := range []string{"", "   "} {
		cfg.DeckName = deck
		notes, err := BuildNotes([]vocab.WordEntry{{Text: "run"}}, cfg)
		if !errors.Is(err, ErrDeckRequired) {
			t.Errorf("deck %q: expected ErrDeckRequired, got %v", deck, err)
		}
		if notes != nil {
			t.Errorf("deck %q: expected no notes", deck)
		}
	}

	if _, err := BuildNotes(nil, nil); !errors.Is(err, ErrDeckRequired) {
		t.Errorf("nil config: expected ErrDeckRequired, got %v", err)
	}
}

func TestBuildNotes_ModelOverride(t *testing.T) {
	cfg := testConfig()
	cfg.ModelName = "Cloze Plus"

	notes, err := BuildNotes([]vocab.WordEntry{{Text: "run"}}, cfg)
	if err != nil {
		t.Fatalf("BuildNotes failed: %v", err)
	}
	if notes[0].ModelName != "Cloze Plus" {
		t.Errorf("expected configured model, got %q", notes[0].ModelName)
	}
}

func TestBuildNotes_PreservesOrder(t *testing.T) {
	words := []string{"one", "two", "three", "four"}
	var entries []vocab.WordEntry
	for _, w := range words {
		entries = append(entries, vocab.WordEntry{Text: w})
	}

	cfg := testConfig()
	cfg.Templates.Front = "{{word}}"
	notes, err := BuildNotes(entries, cfg)
	if err != nil {
		t.Fatalf("BuildNotes failed: %v", err)
	}
	for i, w := range words {
		if notes[i].Fields.Front != w {
			t.Errorf("note %d front = %q, want %q", i, notes[i].Fields.Front, w)
		}
	}
}

func TestNoteRequestJSON(t *testing.T) {
	notes, err := BuildNotes([]vocab.WordEntry{{Text: "run"}}, testConfig())
	if err != nil {
		t.Fatalf("BuildNotes failed: %v", err)
	}

	data, err := json.Marshal(notes[0])
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	for _, key := range []string{"deckName", "modelName", "fields", "tags", "options"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing AnkiConnect key %q in %s", key, data)
		}
	}
	options := decoded["options"].(map[string]interface{})
	if options["allowDuplicate"] != false || options["duplicateScope"] != "deck" {
		t.Errorf("unexpected options %v", options)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.URL != "http://127.0.0.1:8765" {
		t.Errorf("unexpected default URL %q", cfg.URL)
	}
	if cfg.DeckName != "ContextLingo" || cfg.Model() != "Basic" {
		t.Errorf("unexpected deck/model %q/%q", cfg.DeckName, cfg.Model())
	}
	if cfg.MasteryThreshold != 90 {
		t.Errorf("expected threshold 90, got %d", cfg.MasteryThreshold)
	}
	if cfg.Templates.Front == "" || cfg.Templates.Back == "" {
		t.Error("expected default templates")
	}

	cfg.ModelName = ""
	if cfg.Model() != DefaultModelName {
		t.Errorf("expected model fallback, got %q", cfg.Model())
	}
}

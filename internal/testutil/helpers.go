package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/lingoanki/internal/anki"
	"codeberg.org/snonux/lingoanki/internal/vocab"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !strings.Contains(string(content), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}

// Entry builds a minimal valid entry
func Entry(id, text string, c vocab.Category) vocab.WordEntry {
	return vocab.WordEntry{
		ID:              id,
		Text:            text,
		Translation:     text + " (translated)",
		ContextSentence: "A sentence with " + text + " in it.",
		Category:        c,
		AddedAt:         1700000000000,
	}
}

// Card builds a card whose front field holds front
func Card(id int64, front string) anki.Card {
	return anki.Card{
		CardID:   id,
		NoteID:   id + 1,
		DeckName: anki.DefaultDeckName,
		Interval: 120,
		Fields: map[string]anki.CardField{
			"Front": {Value: front, Order: 0},
			"Back":  {Value: "", Order: 1},
		},
	}
}

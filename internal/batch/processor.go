package batch

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/lingoanki/internal/vocab"
)

// ReadBatchFile reads a plain word list and returns entries without an ID
// or category. Supported line formats:
// - word only: "serendipity"
// - with translation: "serendipity = happy accident"
// - with translation and context: "run = laufen | I will run fast."
// Blank lines and lines starting with '#' are skipped, as are lines without
// a word ("= translation").
func ReadBatchFile(filename string) ([]vocab.WordEntry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var entries []vocab.WordEntry
	for _, line := range splitLines(string(content)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if entry, ok := parseLine(line); ok {
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

func parseLine(line string) (vocab.WordEntry, bool) {
	var entry vocab.WordEntry

	rest, context, _ := strings.Cut(line, "|")
	entry.ContextSentence = strings.TrimSpace(context)

	word, translation, _ := strings.Cut(rest, "=")
	entry.Text = strings.TrimSpace(word)
	entry.Translation = strings.TrimSpace(translation)

	return entry, entry.Text != ""
}

// splitLines splits a string by newlines, dropping carriage returns
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

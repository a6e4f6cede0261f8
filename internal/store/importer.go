package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"codeberg.org/snonux/lingoanki/internal/vocab"
)

// LoadJSON reads entries from an extension storage dump. Both a bare JSON
// array and an object with an "entries" array are accepted.
func LoadJSON(path string) ([]vocab.WordEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries file: %w", err)
	}

	data = bytes.TrimSpace(data)
	var entries []vocab.WordEntry
	if len(data) > 0 && data[0] == '{' {
		var wrapped struct {
			Entries []vocab.WordEntry `json:"entries"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to parse entries file: %w", err)
		}
		entries = wrapped.Entries
	} else if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse entries file: %w", err)
	}

	return entries, nil
}

// Merge appends incoming entries whose text is not yet present in
// existing (compared case-insensitively). Missing IDs, categories and
// timestamps are filled in. It returns the merged collection and the
// number of added entries.
func Merge(existing, incoming []vocab.WordEntry, defaultCategory vocab.Category) ([]vocab.WordEntry, int, error) {
	seen := make(map[string]bool, len(existing)+len(incoming))
	for _, e := range existing {
		seen[strings.ToLower(e.Text)] = true
	}

	merged := make([]vocab.WordEntry, len(existing), len(existing)+len(incoming))
	copy(merged, existing)

	added := 0
	now := time.Now().UnixMilli()
	for _, e := range incoming {
		e.Text = strings.TrimSpace(e.Text)
		key := strings.ToLower(e.Text)
		if seen[key] {
			continue
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.Category == "" {
			e.Category = defaultCategory
		}
		if e.AddedAt == 0 {
			e.AddedAt = now
		}
		if err := e.Validate(); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
		}

		seen[key] = true
		merged = append(merged, e)
		added++
	}

	return merged, added, nil
}

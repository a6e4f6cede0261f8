package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CSVOptions configures the CSV export
type CSVOptions struct {
	OutputPath     string // Output CSV file path
	IncludeHeaders bool   // Include a header row
	IncludeTags    bool   // Add a Tags column
}

// DefaultCSVOptions returns sensible defaults
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		OutputPath:     "anki_import.csv",
		IncludeHeaders: true,
		IncludeTags:    true,
	}
}

// CSVGenerator writes rendered notes as an Anki-importable CSV file
type CSVGenerator struct {
	options *CSVOptions
	notes   []NoteRequest
}

// NewCSVGenerator creates a new CSV generator
func NewCSVGenerator(options *CSVOptions) *CSVGenerator {
	if options == nil {
		options = DefaultCSVOptions()
	}
	return &CSVGenerator{
		options: options,
		notes:   make([]NoteRequest, 0),
	}
}

// AddNotes adds rendered notes to the export
func (g *CSVGenerator) AddNotes(notes []NoteRequest) {
	g.notes = append(g.notes, notes...)
}

// Notes returns the notes queued for export
func (g *CSVGenerator) Notes() []NoteRequest {
	return g.notes
}

// GenerateCSV writes the CSV file
func (g *CSVGenerator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		headers := []string{"Front", "Back"}
		if g.options.IncludeTags {
			headers = append(headers, "Tags")
		}
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, note := range g.notes {
		record := []string{note.Fields.Front, note.Fields.Back}
		if g.options.IncludeTags {
			record = append(record, strings.TrimSpace(formatTags(note.Tags)))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write note: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

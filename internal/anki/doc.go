// Package anki renders flashcard content from word entries and builds the
// note requests sent to Anki. It also writes offline exports (.apkg and
// CSV) for when the AnkiConnect bridge is not available.
package anki

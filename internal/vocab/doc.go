// Package vocab defines the captured vocabulary entry, its study category
// and the selection helpers used when exporting entries to Anki.
package vocab

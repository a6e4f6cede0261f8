// Package cardsync drives the three user-triggered Anki workflows:
// testing the bridge connection, exporting entries as notes and pulling
// review progress back into local categories. Each workflow keeps its own
// status and refuses to start while a previous run is still in progress.
package cardsync

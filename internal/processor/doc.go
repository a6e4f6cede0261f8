// Package processor contains the application logic behind the lingoanki
// commands. It wires the entry store, the AnkiConnect client and the sync
// orchestrator together and turns their results into terminal output. This
// package serves as the main coordinator between all other components.
package processor

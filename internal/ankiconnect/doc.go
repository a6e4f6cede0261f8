// Package ankiconnect is a client for the AnkiConnect add-on, the local
// HTTP bridge into a running Anki instance. It speaks the version 6 JSON
// protocol and guards calls with a circuit breaker so an unreachable Anki
// fails fast instead of stalling every workflow.
package ankiconnect

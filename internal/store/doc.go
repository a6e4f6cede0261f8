// Package store persists word entries in a local BoltDB file. The whole
// collection is read and replaced at once, matching how the browser
// extension keeps its entry list.
package store

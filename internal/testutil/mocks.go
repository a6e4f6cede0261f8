package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/lingoanki/internal/anki"
	"codeberg.org/snonux/lingoanki/internal/cardsync"
	"codeberg.org/snonux/lingoanki/internal/vocab"
)

// MockEntryStore mocks the entry store
type MockEntryStore struct {
	mu sync.Mutex

	Entries  []vocab.WordEntry
	ReadErr  error
	WriteErr error

	Reads   int
	Written [][]vocab.WordEntry
}

// Read returns a copy of Entries
func (m *MockEntryStore) Read(ctx context.Context) ([]vocab.WordEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Reads++
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	out := make([]vocab.WordEntry, len(m.Entries))
	copy(out, m.Entries)
	return out, nil
}

// Write records the collection and replaces Entries with it
func (m *MockEntryStore) Write(ctx context.Context, entries []vocab.WordEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make([]vocab.WordEntry, len(entries))
	copy(snapshot, entries)
	m.Written = append(m.Written, snapshot)

	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Entries = snapshot
	return nil
}

// Writes returns how often Write was called
func (m *MockEntryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Written)
}

// MockBridge mocks the AnkiConnect bridge
type MockBridge struct {
	mu sync.Mutex

	Version    string
	PingErr    error
	AddResults []*int64
	AddErr     error
	Cards      []anki.Card
	QueryErr   error

	// Gate, when set, blocks every call until it is closed. Entered
	// receives one value per call before blocking.
	Gate    chan struct{}
	Entered chan string

	Calls   []string
	Added   [][]anki.NoteRequest
	Queries []string
}

func (m *MockBridge) enter(call string) {
	m.mu.Lock()
	m.Calls = append(m.Calls, call)
	gate, entered := m.Gate, m.Entered
	m.mu.Unlock()

	if entered != nil {
		entered <- call
	}
	if gate != nil {
		<-gate
	}
}

// Ping returns Version
func (m *MockBridge) Ping(ctx context.Context, url string) (string, error) {
	m.enter(fmt.Sprintf("ping %s", url))

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PingErr != nil {
		return "", m.PingErr
	}
	return m.Version, nil
}

// AddNotes returns AddResults, or one id per note when unset
func (m *MockBridge) AddNotes(ctx context.Context, notes []anki.NoteRequest, url string) ([]*int64, error) {
	m.enter(fmt.Sprintf("addNotes %s (%d)", url, len(notes)))

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Added = append(m.Added, notes)
	if m.AddErr != nil {
		return nil, m.AddErr
	}
	if m.AddResults != nil {
		return m.AddResults, nil
	}

	ids := make([]*int64, len(notes))
	for i := range notes {
		ids[i] = Int64Ptr(int64(1000 + i))
	}
	return ids, nil
}

// QueryCards returns Cards
func (m *MockBridge) QueryCards(ctx context.Context, query, url string) ([]anki.Card, error) {
	m.enter(fmt.Sprintf("queryCards %s", url))

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries = append(m.Queries, query)
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	return m.Cards, nil
}

// CallCount returns the number of bridge calls so far
func (m *MockBridge) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Notification is one recorded message
type Notification struct {
	Level   cardsync.Level
	Message string
}

// MockNotifier records notifications
type MockNotifier struct {
	mu       sync.Mutex
	Messages []Notification
}

// Notify records the message
func (m *MockNotifier) Notify(level cardsync.Level, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, Notification{Level: level, Message: message})
}

// Last returns the most recent notification
func (m *MockNotifier) Last() (Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Messages) == 0 {
		return Notification{}, false
	}
	return m.Messages[len(m.Messages)-1], true
}

// Int64Ptr returns a pointer to v
func Int64Ptr(v int64) *int64 {
	return &v
}

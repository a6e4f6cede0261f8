package cardsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/lingoanki/internal/anki"
	"codeberg.org/snonux/lingoanki/internal/htmltext"
	"codeberg.org/snonux/lingoanki/internal/vocab"
)

var (
	// ErrInProgress is returned when a workflow is triggered while its
	// previous run has not finished
	ErrInProgress = errors.New("workflow already in progress")
	// ErrAutoSyncDisabled is returned by RunAuto when auto sync is off
	ErrAutoSyncDisabled = errors.New("auto sync is disabled")
)

// EntryStore persists the full word entry collection
type EntryStore interface {
	Read(ctx context.Context) ([]vocab.WordEntry, error)
	// Write replaces the whole collection
	Write(ctx context.Context, entries []vocab.WordEntry) error
}

// Bridge talks to the flashcard application
type Bridge interface {
	Ping(ctx context.Context, url string) (string, error)
	// AddNotes returns one result per note, nil for duplicates or rejects
	AddNotes(ctx context.Context, notes []anki.NoteRequest, url string) ([]*int64, error)
	QueryCards(ctx context.Context, query, url string) ([]anki.Card, error)
}

// ConnectionResult is the outcome of a connection test
type ConnectionResult struct {
	Version string
}

// ExportResult is the outcome of a card export
type ExportResult struct {
	Scope      vocab.Category
	Selected   int
	Created    int
	Duplicates int
}

// ProgressResult is the outcome of a progress sync
type ProgressResult struct {
	Cards    int
	Promoted int
	// Words holds the text of every promoted entry in store order
	Words []string
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithNotifier sets where user facing messages go
func WithNotifier(n Notifier) Option {
	return func(o *Orchestrator) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.log = l
	}
}

// WithStripper replaces the markup to text conversion used on card fronts
func WithStripper(strip func(string) string) Option {
	return func(o *Orchestrator) {
		if strip != nil {
			o.strip = strip
		}
	}
}

// Orchestrator runs the sync workflows and tracks their status
type Orchestrator struct {
	store    EntryStore
	bridge   Bridge
	notifier Notifier
	strip    func(string) string
	log      zerolog.Logger

	mu          sync.Mutex
	cfg         anki.Config
	status      map[Workflow]Status
	subscribers []func(Workflow, Status)
}

// New creates an orchestrator. A nil cfg means anki.DefaultConfig.
func New(cfg *anki.Config, store EntryStore, bridge Bridge, opts ...Option) *Orchestrator {
	if cfg == nil {
		cfg = anki.DefaultConfig()
	}

	o := &Orchestrator{
		store:    store,
		bridge:   bridge,
		notifier: nopNotifier{},
		strip:    htmltext.Strip,
		log:      zerolog.Nop(),
		cfg:      *cfg,
		status:   make(map[Workflow]Status, len(Workflows)),
	}
	for _, w := range Workflows {
		o.status[w] = StatusIdle
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Config returns a copy of the current bridge configuration
func (o *Orchestrator) Config() anki.Config {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cfg
}

// SetConfig replaces the bridge configuration. Running workflows keep the
// configuration they started with.
func (o *Orchestrator) SetConfig(cfg anki.Config) {
	o.mu.Lock()
	o.cfg = cfg
	o.mu.Unlock()
}

// Status returns the current status of w
func (o *Orchestrator) Status(w Workflow) Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status[w]
}

// Subscribe registers fn to be called on every status change
func (o *Orchestrator) Subscribe(fn func(Workflow, Status)) {
	if fn == nil {
		return
	}
	o.mu.Lock()
	o.subscribers = append(o.subscribers, fn)
	o.mu.Unlock()
}

// begin moves w into its in-progress state and returns the configuration
// snapshot for the run. Check and transition happen under one lock, so only
// one caller per workflow gets past it.
func (o *Orchestrator) begin(w Workflow) (anki.Config, error) {
	o.mu.Lock()
	if o.status[w].InProgress() {
		o.mu.Unlock()
		o.log.Debug().Str("workflow", string(w)).Msg("Rejected re-trigger")
		return anki.Config{}, fmt.Errorf("%s: %w", w, ErrInProgress)
	}
	cfg := o.cfg
	s := inProgressStatus(w)
	subs := o.transitionLocked(w, s)
	o.mu.Unlock()

	o.publish(w, s, subs)
	return cfg, nil
}

// transitionLocked sets the status of w and returns the subscribers to
// notify. o.mu must be held.
func (o *Orchestrator) transitionLocked(w Workflow, s Status) []func(Workflow, Status) {
	o.status[w] = s
	subs := make([]func(Workflow, Status), len(o.subscribers))
	copy(subs, o.subscribers)
	return subs
}

func (o *Orchestrator) setStatus(w Workflow, s Status) {
	o.mu.Lock()
	subs := o.transitionLocked(w, s)
	o.mu.Unlock()

	o.publish(w, s, subs)
}

func (o *Orchestrator) publish(w Workflow, s Status, subs []func(Workflow, Status)) {
	if s == StatusSuccess || s == StatusFailed {
		workflowRunsTotal.WithLabelValues(string(w), s.String()).Inc()
	}
	for _, fn := range subs {
		fn(w, s)
	}
}

// fail logs and surfaces err, marks w as failed and returns err wrapped
func (o *Orchestrator) fail(w Workflow, what string, err error) error {
	o.log.Error().Err(err).Str("workflow", string(w)).Msg(what)
	o.notifier.Notify(LevelError, fmt.Sprintf("%s: %v", what, err))
	o.setStatus(w, StatusFailed)
	return fmt.Errorf("%s: %w", strings.ToLower(what), err)
}

// TestConnection probes the bridge and reports its version
func (o *Orchestrator) TestConnection(ctx context.Context) (*ConnectionResult, error) {
	cfg, err := o.begin(WorkflowConnection)
	if err != nil {
		return nil, err
	}

	version, err := o.bridge.Ping(ctx, cfg.URL)
	if err != nil {
		return nil, o.fail(WorkflowConnection, "Connection failed", err)
	}

	o.log.Info().Str("version", version).Str("url", cfg.URL).Msg("Connected to Anki")
	o.notifier.Notify(LevelSuccess, fmt.Sprintf("Connected to AnkiConnect (version %s)", version))
	o.setStatus(WorkflowConnection, StatusSuccess)
	return &ConnectionResult{Version: version}, nil
}

// ExportCards sends every entry of the given category to the bridge as one
// batch of notes. Duplicates reported by the bridge are counted, not failed.
func (o *Orchestrator) ExportCards(ctx context.Context, scope vocab.Category) (*ExportResult, error) {
	if strings.TrimSpace(o.Config().DeckName) == "" {
		o.notifier.Notify(LevelError, "Please configure a deck name first")
		return nil, anki.ErrDeckRequired
	}
	if !scope.Valid() {
		o.notifier.Notify(LevelError, fmt.Sprintf("Unknown category %q", scope))
		return nil, fmt.Errorf("unknown category %q", scope)
	}

	cfg, err := o.begin(WorkflowExport)
	if err != nil {
		return nil, err
	}

	all, err := o.store.Read(ctx)
	if err != nil {
		return nil, o.fail(WorkflowExport, "Export failed", err)
	}

	selected := vocab.SelectByCategory(all, scope)
	result := &ExportResult{Scope: scope, Selected: len(selected)}
	if len(selected) == 0 {
		o.notifier.Notify(LevelInfo, fmt.Sprintf("No %s entries to export", scope))
		o.setStatus(WorkflowExport, StatusIdle)
		return result, nil
	}

	notes, err := anki.BuildNotes(selected, &cfg)
	if err != nil {
		return nil, o.fail(WorkflowExport, "Export failed", err)
	}

	o.log.Debug().Int("notes", len(notes)).Str("deck", cfg.DeckName).Msg("Submitting notes")
	ids, err := o.bridge.AddNotes(ctx, notes, cfg.URL)
	if err != nil {
		return nil, o.fail(WorkflowExport, "Export failed", err)
	}

	for _, id := range ids {
		if id != nil {
			result.Created++
		} else {
			result.Duplicates++
		}
	}
	notesCreatedTotal.Add(float64(result.Created))
	notesDuplicateTotal.Add(float64(result.Duplicates))

	o.log.Info().
		Int("created", result.Created).
		Int("duplicates", result.Duplicates).
		Str("scope", string(scope)).
		Msg("Exported notes")
	o.notifier.Notify(LevelSuccess, fmt.Sprintf("Exported %d notes (%d created, %d duplicates)",
		len(notes), result.Created, result.Duplicates))
	o.setStatus(WorkflowExport, StatusSuccess)
	return result, nil
}

// SyncProgress promotes local entries to known when a mastered card in the
// deck mentions them. The store is written at most once.
func (o *Orchestrator) SyncProgress(ctx context.Context) (*ProgressResult, error) {
	cfg, err := o.begin(WorkflowProgress)
	if err != nil {
		return nil, err
	}

	query := anki.ProgressQuery(cfg.DeckName, cfg.MasteryThreshold)
	cards, err := o.bridge.QueryCards(ctx, query, cfg.URL)
	if err != nil {
		return nil, o.fail(WorkflowProgress, "Progress sync failed", err)
	}

	result := &ProgressResult{Cards: len(cards)}
	if len(cards) == 0 {
		o.notifier.Notify(LevelInfo, "No mastered cards found, nothing to update")
		o.setStatus(WorkflowProgress, StatusSuccess)
		return result, nil
	}

	entries, err := o.store.Read(ctx)
	if err != nil {
		return nil, o.fail(WorkflowProgress, "Progress sync failed", err)
	}

	fronts := make([]string, len(cards))
	for i, c := range cards {
		fronts[i] = o.strip(c.Front())
	}

	for i := range entries {
		if entries[i].Category == vocab.KnownWord || entries[i].Text == "" {
			continue
		}
		for _, front := range fronts {
			if strings.Contains(front, entries[i].Text) {
				entries[i].Category = vocab.KnownWord
				result.Words = append(result.Words, entries[i].Text)
				break
			}
		}
	}
	result.Promoted = len(result.Words)

	if result.Promoted == 0 {
		o.notifier.Notify(LevelInfo, "All entries are up to date, nothing to update")
		o.setStatus(WorkflowProgress, StatusSuccess)
		return result, nil
	}

	if err := o.store.Write(ctx, entries); err != nil {
		return nil, o.fail(WorkflowProgress, "Progress sync failed", err)
	}
	entriesPromotedTotal.Add(float64(result.Promoted))

	o.log.Info().Int("cards", result.Cards).Int("promoted", result.Promoted).Msg("Synced progress")
	o.notifier.Notify(LevelSuccess, fmt.Sprintf("Marked %d entries as known", result.Promoted))
	o.setStatus(WorkflowProgress, StatusSuccess)
	return result, nil
}

// RunAuto exports every scope and syncs progress right away and then on
// every tick until ctx is done. Failed rounds are logged and the loop
// carries on.
func (o *Orchestrator) RunAuto(ctx context.Context, every time.Duration, scopes ...vocab.Category) error {
	if !o.Config().AutoSync {
		return ErrAutoSyncDisabled
	}
	if every <= 0 {
		return fmt.Errorf("auto sync interval must be positive, got %s", every)
	}
	if len(scopes) == 0 {
		return errors.New("auto sync needs at least one category")
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		o.autoRound(ctx, scopes)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (o *Orchestrator) autoRound(ctx context.Context, scopes []vocab.Category) {
	for _, scope := range scopes {
		if _, err := o.ExportCards(ctx, scope); err != nil {
			o.log.Warn().Err(err).Str("scope", string(scope)).Msg("Auto export round failed")
		}
		if ctx.Err() != nil {
			return
		}
	}
	if _, err := o.SyncProgress(ctx); err != nil {
		o.log.Warn().Err(err).Msg("Auto progress round failed")
	}
}

package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"codeberg.org/snonux/lingoanki/internal/ankiconnect"
	"codeberg.org/snonux/lingoanki/internal/cardsync"
	"codeberg.org/snonux/lingoanki/internal/cli"
	"codeberg.org/snonux/lingoanki/internal/logger"
	"codeberg.org/snonux/lingoanki/internal/settings"
	"codeberg.org/snonux/lingoanki/internal/store"
	"codeberg.org/snonux/lingoanki/internal/vocab"
)

// ErrAnkiDisabled is returned by commands that talk to Anki when the
// integration is switched off
var ErrAnkiDisabled = errors.New("anki integration is disabled (anki.enabled: false)")

// Processor handles the lingoanki commands
type Processor struct {
	flags *cli.Flags
	cfg   *settings.AnkiSettings
	log   zerolog.Logger
	out   io.Writer
	store *lazyStore
	sync  *cardsync.Orchestrator
}

// NewProcessor creates a processor from the loaded viper configuration
func NewProcessor(flags *cli.Flags) (*Processor, error) {
	cfg, err := cli.LoadAnkiSettings()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(viper.GetString("log.level"), viper.GetString("log.format"))
	if err != nil {
		return nil, err
	}

	return New(flags, cfg, cli.StorePath(), log, os.Stdout), nil
}

// New creates a processor with explicit dependencies
func New(flags *cli.Flags, cfg *settings.AnkiSettings, storePath string, log zerolog.Logger, out io.Writer) *Processor {
	p := &Processor{
		flags: flags,
		cfg:   cfg,
		log:   log,
		out:   out,
		store: &lazyStore{path: storePath},
	}

	client := ankiconnect.NewClient(
		ankiconnect.WithTimeout(cfg.Timeout),
		ankiconnect.WithLogger(log),
	)
	p.sync = cardsync.New(&cfg.Config, p.store, client,
		cardsync.WithLogger(log),
		cardsync.WithNotifier(cardsync.NotifierFunc(p.notify)),
	)
	p.sync.Subscribe(func(w cardsync.Workflow, s cardsync.Status) {
		p.log.Debug().Str("workflow", string(w)).Str("status", s.String()).Msg("Workflow status changed")
	})

	return p
}

// Close releases the entry store
func (p *Processor) Close() error {
	return p.store.Close()
}

// notify prints workflow messages. Errors are returned to the command and
// printed once by main.
func (p *Processor) notify(level cardsync.Level, message string) {
	switch level {
	case cardsync.LevelError:
		return
	case cardsync.LevelSuccess:
		fmt.Fprintf(p.out, "✓ %s\n", message)
	case cardsync.LevelWarning:
		fmt.Fprintf(p.out, "! %s\n", message)
	default:
		fmt.Fprintln(p.out, message)
	}
}

func (p *Processor) requireAnki() error {
	if !p.cfg.Enabled {
		return ErrAnkiDisabled
	}
	return nil
}

// scopes returns the categories selected by --scope, or the configured
// sync scope when the flag is empty
func (p *Processor) scopes() ([]vocab.Category, error) {
	if p.flags.Scope != "" {
		c, err := vocab.ParseCategory(p.flags.Scope)
		if err != nil {
			return nil, err
		}
		return []vocab.Category{c}, nil
	}

	scopes := p.cfg.SyncScope.Categories()
	if len(scopes) == 0 {
		return nil, errors.New("no category selected: use --scope or enable anki.sync_scope")
	}
	return scopes, nil
}

// lazyStore opens the BoltDB file on first use so commands that never
// touch entries do not take the file lock
type lazyStore struct {
	path string

	mu sync.Mutex
	db *store.BoltStore
}

func (l *lazyStore) open(ctx context.Context) (*store.BoltStore, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db, nil
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	db, err := store.Open(ctx, l.path)
	if err != nil {
		return nil, err
	}
	l.db = db
	return db, nil
}

func (l *lazyStore) Read(ctx context.Context) ([]vocab.WordEntry, error) {
	db, err := l.open(ctx)
	if err != nil {
		return nil, err
	}
	return db.Read(ctx)
}

func (l *lazyStore) Write(ctx context.Context, entries []vocab.WordEntry) error {
	db, err := l.open(ctx)
	if err != nil {
		return err
	}
	return db.Write(ctx, entries)
}

func (l *lazyStore) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

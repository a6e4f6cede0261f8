package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"codeberg.org/snonux/lingoanki/internal"
	"codeberg.org/snonux/lingoanki/internal/anki"
	"codeberg.org/snonux/lingoanki/internal/archive"
	"codeberg.org/snonux/lingoanki/internal/batch"
	"codeberg.org/snonux/lingoanki/internal/cardsync"
	"codeberg.org/snonux/lingoanki/internal/htmltext"
	"codeberg.org/snonux/lingoanki/internal/settings"
	"codeberg.org/snonux/lingoanki/internal/store"
	"codeberg.org/snonux/lingoanki/internal/vocab"
)

// Ping tests the AnkiConnect connection
func (p *Processor) Ping(ctx context.Context) error {
	if err := p.requireAnki(); err != nil {
		return err
	}
	_, err := p.sync.TestConnection(ctx)
	return err
}

// Export sends the selected categories to Anki, one batch per category
func (p *Processor) Export(ctx context.Context) error {
	if err := p.requireAnki(); err != nil {
		return err
	}
	scopes, err := p.scopes()
	if err != nil {
		return err
	}

	for _, scope := range scopes {
		if _, err := p.sync.ExportCards(ctx, scope); err != nil {
			return err
		}
	}
	return nil
}

// SyncProgress marks entries with mastered cards as known
func (p *Processor) SyncProgress(ctx context.Context) error {
	if err := p.requireAnki(); err != nil {
		return err
	}

	res, err := p.sync.SyncProgress(ctx)
	if err != nil {
		return err
	}
	for _, word := range res.Words {
		fmt.Fprintf(p.out, "  - %s\n", word)
	}
	return nil
}

// Auto exports and syncs progress every --every until ctx is cancelled
func (p *Processor) Auto(ctx context.Context) error {
	if err := p.requireAnki(); err != nil {
		return err
	}
	scopes, err := p.scopes()
	if err != nil {
		return err
	}

	if p.flags.MetricsAddr != "" {
		addr, stop, err := p.serveMetrics(p.flags.MetricsAddr)
		if err != nil {
			return err
		}
		defer stop()
		fmt.Fprintf(p.out, "Serving metrics on http://%s/metrics\n", addr)
	}

	p.log.Info().Dur("every", p.flags.Every).Int("scopes", len(scopes)).Msg("Starting auto sync")
	err = p.sync.RunAuto(ctx, p.flags.Every, scopes...)
	if errors.Is(err, cardsync.ErrAutoSyncDisabled) {
		return fmt.Errorf("%w (set anki.auto_sync: true)", err)
	}
	return err
}

// serveMetrics starts the Prometheus endpoint and returns the bound address
// and a function stopping the server
func (p *Processor) serveMetrics(addr string) (string, func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.log.Error().Err(err).Msg("Metrics server stopped")
		}
	}()

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			p.log.Warn().Err(err).Msg("Metrics server shutdown")
		}
	}
	return ln.Addr().String(), stop, nil
}

// Preview renders a template against the sample entry
func (p *Processor) Preview() error {
	var template string
	switch {
	case p.flags.TemplateFile != "":
		data, err := os.ReadFile(p.flags.TemplateFile)
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}
		template = string(data)
	case strings.EqualFold(p.flags.Side, "front"):
		template = p.cfg.Templates.Front
	case strings.EqualFold(p.flags.Side, "back"):
		template = p.cfg.Templates.Back
	default:
		return fmt.Errorf("unknown template side %q (use front or back)", p.flags.Side)
	}

	rendered := anki.Preview(template)
	if p.flags.PlainText {
		rendered = strings.TrimSpace(htmltext.Strip(rendered))
	}
	fmt.Fprintln(p.out, rendered)
	return nil
}

// Import adds entries from a JSON dump or word list to the store
func (p *Processor) Import(ctx context.Context, path string) error {
	category, err := vocab.ParseCategory(p.flags.Category)
	if err != nil {
		return err
	}

	var incoming []vocab.WordEntry
	if strings.EqualFold(filepath.Ext(path), ".json") {
		incoming, err = store.LoadJSON(path)
	} else {
		incoming, err = batch.ReadBatchFile(path)
	}
	if err != nil {
		return err
	}

	existing, err := p.store.Read(ctx)
	if err != nil {
		return err
	}

	merged, added, err := store.Merge(existing, incoming, category)
	if err != nil {
		return err
	}
	if added > 0 {
		if err := p.store.Write(ctx, merged); err != nil {
			return err
		}
	}

	p.log.Info().Str("file", path).Int("added", added).Int("total", len(merged)).Msg("Imported entries")
	fmt.Fprintf(p.out, "✓ Imported %d new entries (%d already stored)\n", added, len(incoming)-added)
	return nil
}

// List prints the stored entries, optionally filtered by --scope
func (p *Processor) List(ctx context.Context) error {
	entries, err := p.store.Read(ctx)
	if err != nil {
		return err
	}

	shown := entries
	if p.flags.Scope != "" {
		c, err := vocab.ParseCategory(p.flags.Scope)
		if err != nil {
			return err
		}
		shown = vocab.SelectByCategory(entries, c)
	}

	w := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WORD\tTRANSLATION\tCATEGORY\tADDED")
	for _, e := range shown {
		added := "-"
		if e.AddedAt > 0 {
			added = e.AddedTime().Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Text, e.Translation, e.Category, added)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	counts := vocab.CountByCategory(entries)
	parts := make([]string, 0, len(vocab.Categories))
	for _, c := range vocab.Categories {
		parts = append(parts, fmt.Sprintf("%s: %d", c, counts[c]))
	}
	fmt.Fprintf(p.out, "\n%d entries (%s)\n", len(entries), strings.Join(parts, ", "))
	return nil
}

// exportNotes builds notes for the selected categories without talking to
// Anki
func (p *Processor) exportNotes(ctx context.Context) ([]anki.NoteRequest, error) {
	scopes, err := p.scopes()
	if err != nil {
		return nil, err
	}

	entries, err := p.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	var selected []vocab.WordEntry
	for _, scope := range scopes {
		selected = append(selected, vocab.SelectByCategory(entries, scope)...)
	}
	return anki.BuildNotes(selected, &p.cfg.Config)
}

func (p *Processor) outputPath(ext string) string {
	if p.flags.Output != "" {
		return p.flags.Output
	}
	return internal.ExportFilename(p.cfg.DeckName, ext)
}

// APKG writes the selected entries to an Anki package
func (p *Processor) APKG(ctx context.Context) error {
	notes, err := p.exportNotes(ctx)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Fprintln(p.out, "No entries to export")
		return nil
	}

	path := p.outputPath(".apkg")
	gen := anki.NewAPKGGenerator(p.cfg.DeckName, p.cfg.Model())
	gen.AddNotes(notes)
	if err := gen.GenerateAPKG(path); err != nil {
		return fmt.Errorf("failed to generate APKG: %w", err)
	}

	fmt.Fprintf(p.out, "✓ Anki package created: %s (%d notes)\n", path, len(notes))
	return nil
}

// CSV writes the selected entries to a CSV file
func (p *Processor) CSV(ctx context.Context) error {
	notes, err := p.exportNotes(ctx)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Fprintln(p.out, "No entries to export")
		return nil
	}

	opts := anki.DefaultCSVOptions()
	opts.OutputPath = p.outputPath(".csv")
	opts.IncludeTags = p.flags.IncludeTags

	gen := anki.NewCSVGenerator(opts)
	gen.AddNotes(notes)
	if err := gen.GenerateCSV(); err != nil {
		return err
	}

	fmt.Fprintf(p.out, "✓ CSV file created: %s (%d notes)\n", opts.OutputPath, len(notes))
	return nil
}

// Backup copies the entry database into the archive directory
func (p *Processor) Backup(ctx context.Context) error {
	db, err := p.store.open(ctx)
	if err != nil {
		return err
	}

	dir := p.flags.Output
	if dir == "" {
		dir = archive.DefaultDir(db.Path())
	}

	path, err := archive.Backup(dir, "entries", ".db", func(w io.Writer) error {
		_, err := db.Backup(ctx, w)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "✓ Entries backed up to: %s\n", path)
	return nil
}

// Defaults prints the settings as YAML: the defaults, or the settings file
// given with --from merged over them
func (p *Processor) Defaults() error {
	s := settings.Defaults()
	if p.flags.SettingsFile != "" {
		loaded, err := settings.Load(p.flags.SettingsFile)
		if err != nil {
			return err
		}
		s = loaded
	}

	data, err := s.Marshal()
	if err != nil {
		return err
	}
	_, err = p.out.Write(data)
	return err
}

// Tokens lists the template placeholders
func (p *Processor) Tokens() error {
	w := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	for _, t := range anki.Tokens() {
		fmt.Fprintf(w, "%s\t%s\n", t.Key, t.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(p.out, "\nUnknown placeholders are left unchanged.")
	return nil
}

package anki

import (
	"archive/zip"
	"crypto/sha1"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/lingoanki/internal/htmltext"
)

// collectionSchema is the legacy (schema 11) Anki collection layout that
// every Anki version still imports
const collectionSchema = `
CREATE TABLE col (
	id integer PRIMARY KEY, crt integer NOT NULL, mod integer NOT NULL,
	scm integer NOT NULL, ver integer NOT NULL, dty integer NOT NULL,
	usn integer NOT NULL, ls integer NOT NULL, conf text NOT NULL,
	models text NOT NULL, decks text NOT NULL, dconf text NOT NULL,
	tags text NOT NULL
);
CREATE TABLE notes (
	id integer PRIMARY KEY, guid text NOT NULL, mid integer NOT NULL,
	mod integer NOT NULL, usn integer NOT NULL, tags text NOT NULL,
	flds text NOT NULL, sfld text NOT NULL, csum integer NOT NULL,
	flags integer NOT NULL, data text NOT NULL
);
CREATE TABLE cards (
	id integer PRIMARY KEY, nid integer NOT NULL, did integer NOT NULL,
	ord integer NOT NULL, mod integer NOT NULL, usn integer NOT NULL,
	type integer NOT NULL, queue integer NOT NULL, due integer NOT NULL,
	ivl integer NOT NULL, factor integer NOT NULL, reps integer NOT NULL,
	lapses integer NOT NULL, left integer NOT NULL, odue integer NOT NULL,
	odid integer NOT NULL, flags integer NOT NULL, data text NOT NULL
);
CREATE TABLE revlog (
	id integer PRIMARY KEY, cid integer NOT NULL, usn integer NOT NULL,
	ease integer NOT NULL, ivl integer NOT NULL, lastIvl integer NOT NULL,
	factor integer NOT NULL, time integer NOT NULL, type integer NOT NULL
);
CREATE TABLE graves (usn integer NOT NULL, oid integer NOT NULL, type integer NOT NULL);
CREATE INDEX ix_notes_csum ON notes (csum);
CREATE INDEX ix_notes_usn ON notes (usn);
CREATE INDEX ix_cards_usn ON cards (usn);
CREATE INDEX ix_cards_nid ON cards (nid);
CREATE INDEX ix_cards_sched ON cards (did, queue, due);
CREATE INDEX ix_revlog_usn ON revlog (usn);
CREATE INDEX ix_revlog_cid ON revlog (cid);
`

// fieldSeparator joins note fields inside the flds column
const fieldSeparator = "\x1f"

type deckRecord struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Desc      string `json:"desc"`
	Mod       int64  `json:"mod"`
	Usn       int    `json:"usn"`
	Dyn       int    `json:"dyn"`
	Conf      int    `json:"conf"`
	Collapsed bool   `json:"collapsed"`
	NewToday  [2]int `json:"newToday"`
	RevToday  [2]int `json:"revToday"`
	LrnToday  [2]int `json:"lrnToday"`
	TimeToday [2]int `json:"timeToday"`
	ExtendNew int    `json:"extendNew"`
	ExtendRev int    `json:"extendRev"`
}

type modelField struct {
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	Sticky bool     `json:"sticky"`
	RTL    bool     `json:"rtl"`
	Font   string   `json:"font"`
	Size   int      `json:"size"`
	Media  []string `json:"media"`
}

type modelTemplate struct {
	Name  string `json:"name"`
	Ord   int    `json:"ord"`
	Qfmt  string `json:"qfmt"`
	Afmt  string `json:"afmt"`
	Did   *int64 `json:"did"`
	Bqfmt string `json:"bqfmt"`
	Bafmt string `json:"bafmt"`
}

type modelRecord struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Type      int             `json:"type"`
	Mod       int64           `json:"mod"`
	Usn       int             `json:"usn"`
	Sortf     int             `json:"sortf"`
	Did       int64           `json:"did"`
	Req       [][]interface{} `json:"req"`
	Vers      []int           `json:"vers"`
	Tags      []string        `json:"tags"`
	LatexPre  string          `json:"latexPre"`
	LatexPost string          `json:"latexPost"`
	Flds      []modelField    `json:"flds"`
	Tmpls     []modelTemplate `json:"tmpls"`
	CSS       string          `json:"css"`
}

type deckOptions struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Mod      int64           `json:"mod"`
	Usn      int             `json:"usn"`
	Dyn      int             `json:"dyn"`
	MaxTaken int             `json:"maxTaken"`
	Timer    int             `json:"timer"`
	Autoplay bool            `json:"autoplay"`
	Replayq  bool            `json:"replayq"`
	New      json.RawMessage `json:"new"`
	Lapse    json.RawMessage `json:"lapse"`
	Rev      json.RawMessage `json:"rev"`
}

const latexPreamble = `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}`

const cardCSS = `.card {
  font-family: arial;
  font-size: 20px;
  text-align: center;
  color: black;
  background-color: white;
}`

// APKGGenerator writes rendered notes into an Anki package file (.apkg)
// for importing when AnkiConnect is not running
type APKGGenerator struct {
	deckName  string
	modelName string
	deckID    int64
	modelID   int64
	notes     []NoteRequest
}

// NewAPKGGenerator creates a generator for one deck and note type
func NewAPKGGenerator(deckName, modelName string) *APKGGenerator {
	if modelName == "" {
		modelName = DefaultModelName
	}
	now := time.Now().UnixMilli()
	return &APKGGenerator{
		deckName:  deckName,
		modelName: modelName,
		deckID:    now,
		modelID:   now + 1,
		notes:     make([]NoteRequest, 0),
	}
}

// AddNote queues a rendered note
func (g *APKGGenerator) AddNote(note NoteRequest) {
	g.notes = append(g.notes, note)
}

// AddNotes queues several rendered notes
func (g *APKGGenerator) AddNotes(notes []NoteRequest) {
	g.notes = append(g.notes, notes...)
}

// GenerateAPKG builds the collection database and packs it to outputPath
func (g *APKGGenerator) GenerateAPKG(outputPath string) error {
	if strings.TrimSpace(g.deckName) == "" {
		return ErrDeckRequired
	}

	tempDir, err := os.MkdirTemp("", "lingoanki_apkg_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := g.writeCollection(dbPath); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	if err := writePackage(outputPath, dbPath); err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

func (g *APKGGenerator) writeCollection(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(collectionSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := g.fill(tx, time.Now()); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (g *APKGGenerator) fill(tx *sql.Tx, now time.Time) error {
	if err := g.insertCollection(tx, now.Unix()); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}

	noteStmt, err := tx.Prepare(`INSERT INTO notes VALUES (?, ?, ?, ?, -1, ?, ?, ?, ?, 0, '')`)
	if err != nil {
		return err
	}
	defer noteStmt.Close()

	// new cards: type 0, queue 0, due is the position in the new queue
	cardStmt, err := tx.Prepare(`INSERT INTO cards VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`)
	if err != nil {
		return err
	}
	defer cardStmt.Close()

	base := now.UnixMilli()
	for i, note := range g.notes {
		noteID := base + int64(i*2)
		cardID := noteID + 1

		guid, err := gonanoid.New(10)
		if err != nil {
			return fmt.Errorf("failed to generate note guid: %w", err)
		}

		sortField := strings.TrimSpace(htmltext.Strip(note.Fields.Front))
		fields := note.Fields.Front + fieldSeparator + note.Fields.Back

		if _, err := noteStmt.Exec(noteID, guid, g.modelID, now.Unix(),
			formatTags(note.Tags), fields, sortField, fieldChecksum(sortField)); err != nil {
			return fmt.Errorf("failed to insert note %d: %w", i, err)
		}
		if _, err := cardStmt.Exec(cardID, noteID, g.deckID, now.Unix(), i+1); err != nil {
			return fmt.Errorf("failed to insert card %d: %w", i, err)
		}
	}
	return nil
}

func (g *APKGGenerator) insertCollection(tx *sql.Tx, now int64) error {
	decks := map[string]deckRecord{
		"1":                             newDeck(1, "Default", "", now),
		strconv.FormatInt(g.deckID, 10): newDeck(g.deckID, g.deckName, "Vocabulary captured in context", now),
	}
	models := map[string]modelRecord{
		strconv.FormatInt(g.modelID, 10): g.model(now),
	}
	conf := map[string]interface{}{
		"nextPos":      1,
		"estTimes":     true,
		"activeDecks":  []int64{1},
		"sortType":     "noteFld",
		"addToCur":     true,
		"curDeck":      1,
		"dueCounts":    true,
		"collapseTime": 1200,
		"schedVer":     1,
		"curModel":     strconv.FormatInt(g.modelID, 10),
	}
	dconf := map[string]deckOptions{
		"1": {
			ID: 1, Name: "Default", Mod: now, MaxTaken: 60, Autoplay: true, Replayq: true,
			New:   json.RawMessage(`{"delays":[1,10],"ints":[1,4,7],"initialFactor":2500,"perDay":20,"order":1,"bury":true,"separate":true}`),
			Lapse: json.RawMessage(`{"delays":[10],"mult":0,"minInt":1,"leechFails":8,"leechAction":0}`),
			Rev:   json.RawMessage(`{"perDay":100,"ease4":1.3,"fuzz":0.05,"maxIvl":36500,"ivlFct":1,"bury":true,"minSpace":1}`),
		},
	}

	cols := make([]string, 0, 4)
	for _, v := range []interface{}{conf, models, decks, dconf} {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		cols = append(cols, string(data))
	}

	// id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags
	_, err := tx.Exec(`INSERT INTO col VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		now, now*1000, now*1000, cols[0], cols[1], cols[2], cols[3])
	return err
}

func newDeck(id int64, name, desc string, now int64) deckRecord {
	return deckRecord{
		ID:        id,
		Name:      name,
		Desc:      desc,
		Mod:       now,
		Conf:      1,
		ExtendNew: 10,
		ExtendRev: 50,
	}
}

// model describes the two-field Front/Back note type filled by BuildNotes
func (g *APKGGenerator) model(now int64) modelRecord {
	field := func(name string, ord int) modelField {
		return modelField{Name: name, Ord: ord, Font: "Arial", Size: 20, Media: []string{}}
	}
	return modelRecord{
		ID:        g.modelID,
		Name:      g.modelName,
		Mod:       now,
		Usn:       -1,
		Did:       g.deckID,
		Req:       [][]interface{}{{0, "all", []int{0}}},
		Vers:      []int{},
		Tags:      []string{},
		LatexPre:  latexPreamble,
		LatexPost: `\end{document}`,
		Flds:      []modelField{field("Front", 0), field("Back", 1)},
		Tmpls: []modelTemplate{{
			Name: "Card 1",
			Qfmt: "{{Front}}",
			Afmt: "{{FrontSide}}\n\n<hr id=answer>\n\n{{Back}}",
		}},
		CSS: cardCSS,
	}
}

// formatTags renders tags the way Anki stores them: space separated with
// surrounding spaces. Anki does not allow spaces inside a tag.
func formatTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ReplaceAll(strings.TrimSpace(t), " ", "_")
		if t != "" {
			clean = append(clean, t)
		}
	}
	if len(clean) == 0 {
		return ""
	}
	return " " + strings.Join(clean, " ") + " "
}

// fieldChecksum is Anki's csum: the first 32 bits of the SHA1 of the
// stripped sort field
func fieldChecksum(s string) int64 {
	sum := sha1.Sum([]byte(s))
	return int64(binary.BigEndian.Uint32(sum[:4]))
}

// writePackage zips the collection together with an empty media map
func writePackage(outputPath, dbPath string) (err error) {
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(out)

	db, err := os.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	w, err := zw.Create("collection.anki2")
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, db); err != nil {
		return err
	}

	// no media is shipped but Anki expects the mapping file
	w, err = zw.Create("media")
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "{}"); err != nil {
		return err
	}

	return zw.Close()
}

package export

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/lexikort/internal/lexicon"
)

// Note is one flashcard note: the merged entry plus its local recording
type Note struct {
	Entry     lexicon.Entry
	AudioFile string // Path to a downloaded recording, may be empty
}

// noteFields is the field order of the lexikort note type
var noteFields = []string{"Swedish", "English", "Definition", "Category", "Pronunciation", "Audio"}

// APKGGenerator creates Anki package files (.apkg)
type APKGGenerator struct {
	deckName     string
	deckID       int64
	modelID      int64
	notes        []Note
	mediaFiles   map[string]int // maps media file name to its number in the package
	mediaCounter int
}

// NewAPKGGenerator creates a new APKG generator
func NewAPKGGenerator(deckName string) *APKGGenerator {
	// IDs are millisecond timestamps, as Anki itself assigns them
	now := time.Now().UnixMilli()
	return &APKGGenerator{
		deckName:   deckName,
		deckID:     now,
		modelID:    now + 1,
		mediaFiles: make(map[string]int),
	}
}

// AddNote adds a note to the deck
func (g *APKGGenerator) AddNote(note Note) {
	g.notes = append(g.notes, note)
}

// GenerateAPKG creates an .apkg file
func (g *APKGGenerator) GenerateAPKG(outputPath string) error {
	tempDir, err := os.MkdirTemp("", "lexikort_apkg_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// Media first: the notes reference the names registered here
	if err := g.copyMediaFiles(tempDir); err != nil {
		return fmt.Errorf("failed to copy media files: %w", err)
	}
	if err := g.createMediaMapping(tempDir); err != nil {
		return fmt.Errorf("failed to create media mapping: %w", err)
	}

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := g.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if err := g.createZipPackage(tempDir, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}

	return nil
}

func (g *APKGGenerator) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := createTables(db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	if err := g.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	if err := g.insertNotesAndCards(db); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}

	return nil
}

// createTables creates the Anki schema version 11 tables
func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE col (
			id integer PRIMARY KEY, crt integer NOT NULL, mod integer NOT NULL,
			scm integer NOT NULL, ver integer NOT NULL, dty integer NOT NULL,
			usn integer NOT NULL, ls integer NOT NULL, conf text NOT NULL,
			models text NOT NULL, decks text NOT NULL, dconf text NOT NULL,
			tags text NOT NULL
		)`,
		`CREATE TABLE notes (
			id integer PRIMARY KEY, guid text NOT NULL, mid integer NOT NULL,
			mod integer NOT NULL, usn integer NOT NULL, tags text NOT NULL,
			flds text NOT NULL, sfld text NOT NULL, csum integer NOT NULL,
			flags integer NOT NULL, data text NOT NULL
		)`,
		`CREATE TABLE cards (
			id integer PRIMARY KEY, nid integer NOT NULL, did integer NOT NULL,
			ord integer NOT NULL, mod integer NOT NULL, usn integer NOT NULL,
			type integer NOT NULL, queue integer NOT NULL, due integer NOT NULL,
			ivl integer NOT NULL, factor integer NOT NULL, reps integer NOT NULL,
			lapses integer NOT NULL, left integer NOT NULL, odue integer NOT NULL,
			odid integer NOT NULL, flags integer NOT NULL, data text NOT NULL
		)`,
		`CREATE TABLE revlog (
			id integer PRIMARY KEY, cid integer NOT NULL, usn integer NOT NULL,
			ease integer NOT NULL, ivl integer NOT NULL, lastIvl integer NOT NULL,
			factor integer NOT NULL, time integer NOT NULL, type integer NOT NULL
		)`,
		`CREATE TABLE graves (usn integer NOT NULL, oid integer NOT NULL, type integer NOT NULL)`,
		`CREATE INDEX ix_notes_csum ON notes (csum)`,
		`CREATE INDEX ix_notes_usn ON notes (usn)`,
		`CREATE INDEX ix_cards_usn ON cards (usn)`,
		`CREATE INDEX ix_cards_nid ON cards (nid)`,
		`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
		`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
		`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

func (g *APKGGenerator) insertCollection(db *sql.DB) error {
	now := time.Now().Unix()

	deck := func(id int64, name, desc string) map[string]interface{} {
		return map[string]interface{}{
			"id":               id,
			"name":             name,
			"mod":              now,
			"desc":             desc,
			"collapsed":        false,
			"dyn":              0,
			"conf":             1,
			"usn":              0,
			"newToday":         []int{0, 0},
			"revToday":         []int{0, 0},
			"lrnToday":         []int{0, 0},
			"timeToday":        []int{0, 0},
			"browserCollapsed": false,
			"extendNew":        10,
			"extendRev":        50,
		}
	}
	decks := map[string]interface{}{
		"1": deck(1, "Default", ""),
		strconv.FormatInt(g.deckID, 10): deck(g.deckID, g.deckName, "Swedish vocabulary from Folkets lexikon and Svensk ordbok"),
	}
	decksJSON, err := json.Marshal(decks)
	if err != nil {
		return err
	}

	modelsJSON, err := json.Marshal(map[string]interface{}{
		strconv.FormatInt(g.modelID, 10): g.noteTypeConfig(),
	})
	if err != nil {
		return err
	}

	confJSON, err := json.Marshal(map[string]interface{}{
		"nextPos":       1,
		"estTimes":      true,
		"activeDecks":   []int64{1},
		"sortType":      "noteFld",
		"sortBackwards": false,
		"addToCur":      true,
		"curDeck":       1,
		"newSpread":     0,
		"dueCounts":     true,
		"collapseTime":  1200,
		"timeLim":       0,
		"schedVer":      1,
		"curModel":      strconv.FormatInt(g.modelID, 10),
		"dayLearnFirst": false,
	})
	if err != nil {
		return err
	}

	dconfJSON, err := json.Marshal(map[string]interface{}{
		"1": map[string]interface{}{
			"id":   1,
			"name": "Default",
			"dyn":  0,
			"new": map[string]interface{}{
				"delays":        []int{1, 10},
				"ints":          []int{1, 4, 7},
				"initialFactor": 2500,
				"perDay":        20,
				"order":         1,
				"bury":          true,
				"separate":      true,
			},
			"lapse": map[string]interface{}{
				"delays":      []int{10},
				"mult":        0,
				"minInt":      1,
				"leechFails":  8,
				"leechAction": 0,
			},
			"rev": map[string]interface{}{
				"perDay":   100,
				"ease4":    1.3,
				"fuzz":     0.05,
				"maxIvl":   36500,
				"ivlFct":   1,
				"bury":     true,
				"minSpace": 1,
			},
			"timer":    0,
			"maxTaken": 60,
			"usn":      0,
			"mod":      now,
			"autoplay": true,
			"replayq":  true,
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Exec(`INSERT INTO col VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		1,        // id
		now,      // crt
		now*1000, // mod
		now*1000, // scm
		11,       // ver (schema version)
		0,        // dty
		0,        // usn
		0,        // ls
		string(confJSON),
		string(modelsJSON),
		string(decksJSON),
		string(dconfJSON),
		"{}", // tags
	)
	return err
}

// noteTypeConfig describes the note type: Swedish on the front of the
// forward card, English on the front of the reverse card
func (g *APKGGenerator) noteTypeConfig() map[string]interface{} {
	flds := make([]map[string]interface{}, 0, len(noteFields))
	for i, name := range noteFields {
		flds = append(flds, map[string]interface{}{
			"name":   name,
			"ord":    i,
			"sticky": false,
			"rtl":    false,
			"font":   "Arial",
			"size":   20,
			"media":  []string{},
		})
	}

	return map[string]interface{}{
		"id":        g.modelID,
		"name":      "Vocabulary from lexikort (Basic + Reverse)",
		"type":      0,
		"mod":       time.Now().Unix(),
		"usn":       -1,
		"sortf":     0,
		"did":       g.deckID,
		"req":       [][]interface{}{{0, "all", []int{0}}, {1, "all", []int{1}}},
		"vers":      []int{},
		"tags":      []string{},
		"latexPre":  `\documentclass[12pt]{article}\begin{document}`,
		"latexPost": `\end{document}`,
		"flds":      flds,
		"tmpls": []map[string]interface{}{
			{"name": "Forward", "ord": 0, "qfmt": forwardFront, "afmt": forwardBack, "did": nil, "bqfmt": "", "bafmt": ""},
			{"name": "Reverse", "ord": 1, "qfmt": reverseFront, "afmt": reverseBack, "did": nil, "bqfmt": "", "bafmt": ""},
		},
		"css": cardCSS,
	}
}

const (
	forwardFront = `<div class="front">
<div class="swedish">{{Swedish}}</div>
{{#Audio}}<div class="audio">{{Audio}}</div>{{/Audio}}
</div>`

	forwardBack = `{{FrontSide}}

<hr id="answer">

<div class="back">
<div class="english">{{English}}</div>
{{#Definition}}<div class="definition">{{Definition}}</div>{{/Definition}}
<div class="meta">{{Category}} {{Pronunciation}}</div>
</div>`

	reverseFront = `<div class="front">
<div class="english">{{English}}</div>
</div>`

	reverseBack = `{{FrontSide}}

<hr id="answer">

<div class="back">
<div class="swedish">{{Swedish}}</div>
{{#Audio}}<div class="audio">{{Audio}}</div>{{/Audio}}
{{#Definition}}<div class="definition">{{Definition}}</div>{{/Definition}}
</div>`

	cardCSS = `.card {
  font-family: Arial, sans-serif;
  font-size: 20px;
  text-align: center;
  color: #333;
  background-color: white;
}

.swedish {
  font-size: 32px;
  font-weight: bold;
  color: #005293;
  margin: 20px 0;
}

.english {
  font-size: 28px;
  font-weight: bold;
  color: #2c3e50;
  margin: 20px 0;
}

.definition {
  font-size: 18px;
  font-style: italic;
  margin: 15px 0;
}

.meta {
  font-size: 14px;
  color: #7f8c8d;
}`
)

func (g *APKGGenerator) insertNotesAndCards(db *sql.DB) error {
	now := time.Now()

	for i, note := range g.notes {
		// Leave room for the two cards of each note
		noteID := now.UnixMilli() + int64(i*3)

		audioField := ""
		if name := filepath.Base(note.AudioFile); note.AudioFile != "" {
			if _, ok := g.mediaFiles[name]; ok {
				audioField = fmt.Sprintf("[sound:%s]", name)
			}
		}

		e := note.Entry
		fields := strings.Join([]string{
			e.Swedish, e.English, e.Definition, e.Category, e.Pronunciation, audioField,
		}, "\x1f") // Anki field separator

		_, err := db.Exec(`INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			noteID,           // id
			uuid.NewString(), // guid
			g.modelID,        // mid
			now.Unix(),       // mod
			-1,               // usn
			"",               // tags
			fields,           // flds
			e.Swedish,        // sfld (sort field)
			0,                // csum
			0,                // flags
			"",               // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		for ord := 0; ord < 2; ord++ {
			_, err = db.Exec(`INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				noteID+int64(ord)+1, // id
				noteID,              // nid
				g.deckID,            // did
				ord,                 // ord (template)
				now.Unix(),          // mod
				-1,                  // usn
				0,                   // type (0=new)
				0,                   // queue (0=new)
				noteID+int64(ord),   // due (position for new cards)
				0, 0, 0, 0, 0, 0, 0, 0, // ivl factor reps lapses left odue odid flags
				"",                     // data
			)
			if err != nil {
				return fmt.Errorf("failed to insert card %d: %w", ord, err)
			}
		}
	}

	return nil
}

// copyMediaFiles copies the recordings into the package under numeric names
func (g *APKGGenerator) copyMediaFiles(tempDir string) error {
	for _, note := range g.notes {
		if note.AudioFile == "" || !fileExists(note.AudioFile) {
			continue
		}

		name := filepath.Base(note.AudioFile)
		if _, exists := g.mediaFiles[name]; exists {
			continue
		}

		target := filepath.Join(tempDir, strconv.Itoa(g.mediaCounter))
		if err := copyFile(note.AudioFile, target); err != nil {
			return fmt.Errorf("failed to copy audio file %s: %w", note.AudioFile, err)
		}
		g.mediaFiles[name] = g.mediaCounter
		g.mediaCounter++
	}
	return nil
}

// createMediaMapping writes the number to file name map Anki expects
func (g *APKGGenerator) createMediaMapping(tempDir string) error {
	mapping := make(map[string]string, len(g.mediaFiles))
	for filename, num := range g.mediaFiles {
		mapping[strconv.Itoa(num)] = filename
	}

	data, err := json.Marshal(mapping)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(tempDir, "media"), data, 0644)
}

func (g *APKGGenerator) createZipPackage(tempDir, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)

	err = filepath.Walk(tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		relPath, err := filepath.Rel(tempDir, path)
		if err != nil {
			return err
		}

		writer, err := archive.Create(relPath)
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(writer, file)
		return err
	})
	if err != nil {
		return err
	}

	return archive.Close()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}

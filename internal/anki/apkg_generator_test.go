package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestNewAPKGGenerator(t *testing.T) {
	gen := NewAPKGGenerator("Test Deck")

	if gen.deckName != "Test Deck" {
		t.Errorf("Expected deck name 'Test Deck', got '%s'", gen.deckName)
	}
	if gen.deckID != DeckID {
		t.Errorf("Expected deck id %d, got %d", DeckID, gen.deckID)
	}
	if len(gen.notes) != 0 {
		t.Errorf("Expected empty notes slice, got %d notes", len(gen.notes))
	}

	if NewAPKGGenerator("").deckName != DefaultDeckName {
		t.Error("Expected default deck name for empty name")
	}
}

func TestGenerateAPKG(t *testing.T) {
	tempDir := t.TempDir()
	outputPath := filepath.Join(tempDir, "Vocabulary_Builder.apkg")

	gen := NewGenerator(nil)
	for _, note := range sampleNotes() {
		gen.AddNote(note)
	}

	if err := gen.Generate(outputPath); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	reader, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("Failed to open APKG as zip: %v", err)
	}
	defer reader.Close()

	found := map[string]*zip.File{}
	for _, file := range reader.File {
		found[file.Name] = file
	}

	for _, name := range []string{"collection.anki2", "media"} {
		if found[name] == nil {
			t.Fatalf("Required file '%s' not found in APKG", name)
		}
	}
	if len(found) != 2 {
		t.Errorf("Expected exactly 2 files in APKG, got %d", len(found))
	}

	media, err := found["media"].Open()
	if err != nil {
		t.Fatalf("Failed to open media: %v", err)
	}
	defer media.Close()
	data, _ := io.ReadAll(media)
	if string(data) != "{}" {
		t.Errorf("Expected empty media mapping, got %s", data)
	}
}

func openTestCollection(t *testing.T, gen *APKGGenerator) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "collection.anki2")
	if err := gen.createDatabase(dbPath); err != nil {
		t.Fatalf("createDatabase() error = %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("Database file was not created")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestCreateDatabase(t *testing.T) {
	gen := NewAPKGGenerator("Vocabulary Builder")
	for _, note := range sampleNotes() {
		gen.AddNote(note)
	}
	// Two cloze deletions give two cards
	gen.AddNote(Note{Usage: "{{c1::Il}} {{c2::allait}} au marché.", Stem: "aller"})

	db := openTestCollection(t, gen)

	var noteCount, cardCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&noteCount); err != nil {
		t.Fatalf("Failed to count notes: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&cardCount); err != nil {
		t.Fatalf("Failed to count cards: %v", err)
	}
	if noteCount != 3 {
		t.Errorf("Expected 3 notes, got %d", noteCount)
	}
	if cardCount != 4 {
		t.Errorf("Expected 4 cards, got %d", cardCount)
	}

	var guid, flds, sfld string
	var mid, csum int64
	err := db.QueryRow("SELECT guid, mid, flds, sfld, csum FROM notes ORDER BY id LIMIT 1").
		Scan(&guid, &mid, &flds, &sfld, &csum)
	if err != nil {
		t.Fatalf("Failed to read note: %v", err)
	}

	first := sampleNotes()[0]
	if guid != first.GUID() {
		t.Errorf("Expected guid %q, got %q", first.GUID(), guid)
	}
	if mid != ModelID {
		t.Errorf("Expected model id %d, got %d", ModelID, mid)
	}
	if got := strings.Split(flds, fieldSeparator); len(got) != 4 || got[0] != first.Usage {
		t.Errorf("Unexpected fields: %q", got)
	}
	if sfld != "La renommée de l'auteur." {
		t.Errorf("Unexpected sort field: %q", sfld)
	}
	if csum != first.Checksum() {
		t.Errorf("Expected checksum %d, got %d", first.Checksum(), csum)
	}

	rows, err := db.Query("SELECT DISTINCT did FROM cards")
	if err != nil {
		t.Fatalf("Failed to query cards: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var did int64
		if err := rows.Scan(&did); err != nil {
			t.Fatal(err)
		}
		if did != DeckID {
			t.Errorf("Card in deck %d, want %d", did, DeckID)
		}
	}
}

func TestCollectionMetadata(t *testing.T) {
	gen := NewAPKGGenerator("French Words")
	gen.AddNote(sampleNotes()[0])

	db := openTestCollection(t, gen)

	var ver int
	var models, decks string
	if err := db.QueryRow("SELECT ver, models, decks FROM col").Scan(&ver, &models, &decks); err != nil {
		t.Fatalf("Failed to read collection: %v", err)
	}
	if ver != 11 {
		t.Errorf("Expected schema version 11, got %d", ver)
	}

	var modelMap map[string]struct {
		Name string `json:"name"`
		Type int    `json:"type"`
		Flds []struct {
			Name string `json:"name"`
		} `json:"flds"`
	}
	if err := json.Unmarshal([]byte(models), &modelMap); err != nil {
		t.Fatalf("Invalid models JSON: %v", err)
	}
	model, ok := modelMap[strconv.FormatInt(ModelID, 10)]
	if !ok {
		t.Fatalf("Model %d not found in %s", ModelID, models)
	}
	if model.Name != ModelName || model.Type != modelTypeCloze || len(model.Flds) != 4 {
		t.Errorf("Unexpected model: %+v", model)
	}

	var deckMap map[string]struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(decks), &deckMap); err != nil {
		t.Fatalf("Invalid decks JSON: %v", err)
	}
	if deckMap[strconv.FormatInt(DeckID, 10)].Name != "French Words" {
		t.Errorf("Deck name not stored: %s", decks)
	}
}

func TestGenerateAPKGInvalidPath(t *testing.T) {
	gen := NewAPKGGenerator("Test Deck")
	err := gen.GenerateAPKG(filepath.Join(t.TempDir(), "missing", "deck.apkg"))
	if err == nil {
		t.Error("Expected error for missing output directory")
	}
}

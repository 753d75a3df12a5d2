package anki

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Format selects the deck file format
type Format string

const (
	// FormatAPKG writes an Anki package
	FormatAPKG Format = "apkg"
	// FormatCSV writes a CSV file for Anki's text import
	FormatCSV Format = "csv"
)

// GeneratorOptions configures the Anki export
type GeneratorOptions struct {
	DeckName       string // Deck the notes are imported into
	Format         Format // Output format
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		DeckName:       DefaultDeckName,
		Format:         FormatAPKG,
		IncludeHeaders: true,
	}
}

// Generator collects notes and writes them as an Anki deck
type Generator struct {
	options    *GeneratorOptions
	notes      []Note
	guids      map[string]bool
	duplicates int
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		notes:   make([]Note, 0),
		guids:   make(map[string]bool),
	}
}

// AddNote adds a note to the deck. A note whose GUID was already added is
// dropped and false is returned.
func (g *Generator) AddNote(note Note) bool {
	guid := note.GUID()
	if g.guids[guid] {
		g.duplicates++
		return false
	}

	g.guids[guid] = true
	g.notes = append(g.notes, note)
	return true
}

// Has reports whether a note with the given GUID was already added
func (g *Generator) Has(guid string) bool {
	return g.guids[guid]
}

// Notes returns the collected notes
func (g *Generator) Notes() []Note {
	return g.notes
}

// Extension returns the file extension of the configured format
func (g *Generator) Extension() string {
	if g.options.Format == FormatCSV {
		return "csv"
	}
	return "apkg"
}

// Generate writes the deck to outputPath in the configured format
func (g *Generator) Generate(outputPath string) error {
	switch g.options.Format {
	case FormatCSV:
		return g.GenerateCSV(outputPath)
	case FormatAPKG, "":
		return g.GenerateAPKG(outputPath)
	default:
		return fmt.Errorf("unknown deck format: %s", g.options.Format)
	}
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		if err := writer.Write(FieldNames); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, note := range g.notes {
		if err := writer.Write(note.Fields()); err != nil {
			return fmt.Errorf("failed to write note: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}

	return nil
}

// GenerateAPKG creates a proper .apkg file for Anki import
func (g *Generator) GenerateAPKG(outputPath string) error {
	apkgGen := NewAPKGGenerator(g.options.DeckName)

	for _, note := range g.notes {
		apkgGen.AddNote(note)
	}

	return apkgGen.GenerateAPKG(outputPath)
}

// Stats returns statistics about the note collection
func (g *Generator) Stats() (totalNotes, totalCards, duplicates int) {
	totalNotes = len(g.notes)

	for _, note := range g.notes {
		totalCards += len(note.ClozeOrdinals())
	}

	return totalNotes, totalCards, g.duplicates
}

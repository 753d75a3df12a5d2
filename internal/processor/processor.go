package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"codeberg.org/snonux/vocabbuilder/internal"
	"codeberg.org/snonux/vocabbuilder/internal/anki"
	"codeberg.org/snonux/vocabbuilder/internal/archive"
	"codeberg.org/snonux/vocabbuilder/internal/batch"
	"codeberg.org/snonux/vocabbuilder/internal/cli"
	"codeberg.org/snonux/vocabbuilder/internal/definition"
	"codeberg.org/snonux/vocabbuilder/internal/kindle"
	"codeberg.org/snonux/vocabbuilder/internal/translation"
)

// ErrNoDefinitions is returned by CreateNote when the dictionary knows no
// definitions for a word
var ErrNoDefinitions = errors.New("no definitions found")

// errDuplicate is returned by CreateNote when the deck already has the note
var errDuplicate = errors.New("duplicate note")

// Definer looks up the definitions of a word
type Definer interface {
	Define(ctx context.Context, word string) ([]string, error)
}

// Summary counts the outcome of an import run
type Summary struct {
	Total      int
	Imported   int
	Skipped    int
	Failed     int
	Duplicates int
	OutputPath string
}

// Processor handles the main import logic
type Processor struct {
	flags      *cli.Flags
	definer    Definer
	translator translation.Translator
	generator  *anki.Generator
	log        logrus.FieldLogger
	out        io.Writer
	summary    Summary
}

// NewProcessor creates a processor with the Larousse dictionary and the
// configured translation provider
func NewProcessor(ctx context.Context, flags *cli.Flags, logger logrus.FieldLogger) (*Processor, error) {
	fetcherOpts := definition.DefaultFetcherOptions()
	fetcherOpts.URLTemplate = flags.DictionaryURL
	if flags.Timeout > 0 {
		fetcherOpts.Timeout = flags.Timeout
	}
	dictionary := definition.NewDictionary(definition.NewFetcher(fetcherOpts), logger)

	translator, err := translation.NewTranslator(ctx, &translation.Config{
		Provider:    flags.TranslationProvider,
		OpenAIKey:   cli.GetOpenAIKey(),
		OpenAIModel: flags.OpenAIModel,
		GeminiKey:   cli.GetGeminiKey(),
		GeminiModel: flags.GeminiModel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create translator: %w", err)
	}

	return New(flags, dictionary, translator, logger), nil
}

// New creates a processor from explicit collaborators. Translations are
// cached for the lifetime of the processor.
func New(flags *cli.Flags, definer Definer, translator translation.Translator, logger logrus.FieldLogger) *Processor {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	format := anki.FormatAPKG
	if flags.AnkiCSV {
		format = anki.FormatCSV
	}

	return &Processor{
		flags:      flags,
		definer:    definer,
		translator: translation.NewCachedTranslator(translator, nil),
		generator: anki.NewGenerator(&anki.GeneratorOptions{
			DeckName:       flags.DeckName,
			Format:         format,
			IncludeHeaders: true,
		}),
		log: logger,
		out: os.Stdout,
	}
}

// SetOutput redirects progress output, which goes to stdout by default
func (p *Processor) SetOutput(w io.Writer) {
	p.out = w
}

// Run imports all lookups and writes the deck
func (p *Processor) Run(ctx context.Context) (*Summary, error) {
	lookups, err := p.LoadLookups(ctx)
	if err != nil {
		return nil, err
	}

	if len(lookups) == 0 {
		fmt.Fprintf(p.out, "No words to import\n")
		return &p.summary, nil
	}

	if err := p.ProcessLookups(ctx, lookups); err != nil {
		return nil, err
	}

	outputPath, err := p.GenerateAnkiFile()
	if err != nil {
		return nil, err
	}
	p.summary.OutputPath = outputPath

	p.printSummary()
	return &p.summary, nil
}

// LoadLookups reads the lookups from the batch file or the Kindle database
// and applies --limit
func (p *Processor) LoadLookups(ctx context.Context) ([]kindle.Lookup, error) {
	var (
		lookups []kindle.Lookup
		err     error
	)

	if p.flags.BatchFile != "" {
		lookups, err = batch.ReadBatchFile(p.flags.BatchFile)
	} else {
		lookups, err = p.loadKindleLookups(ctx)
	}
	if err != nil {
		return nil, err
	}

	if p.flags.Limit > 0 && len(lookups) > p.flags.Limit {
		p.log.WithFields(logrus.Fields{
			"lookups": len(lookups),
			"limit":   p.flags.Limit,
		}).Info("limiting import")
		lookups = lookups[:p.flags.Limit]
	}

	return lookups, nil
}

func (p *Processor) loadKindleLookups(ctx context.Context) ([]kindle.Lookup, error) {
	since, err := p.flags.SinceTime()
	if err != nil {
		return nil, err
	}

	if p.flags.Archive {
		archiveDir, err := archive.DefaultDir()
		if err != nil {
			return nil, err
		}
		snapshot, err := archive.SnapshotDatabase(p.flags.DBPath, archiveDir)
		if err != nil {
			return nil, fmt.Errorf("failed to archive vocabulary database: %w", err)
		}
		fmt.Fprintf(p.out, "Vocabulary database archived to: %s\n", snapshot)
	}

	db, err := kindle.Open(ctx, p.flags.DBPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.Lookups(ctx, kindle.Filter{Lang: p.flags.Lang, Since: since})
}

// ProcessLookups creates a note for each lookup. A word that fails never
// stops the run; only cancellation does.
func (p *Processor) ProcessLookups(ctx context.Context, lookups []kindle.Lookup) error {
	total := len(lookups)
	p.summary.Total += total

	for i, lookup := range lookups {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(p.out, "Importing word %d of %d: %s\n", i+1, total, lookup.Word)

		note, err := p.CreateNote(ctx, lookup)
		switch {
		case err == nil:
			p.generator.AddNote(note)
			p.summary.Imported++
		case errors.Is(err, errDuplicate):
			p.summary.Duplicates++
		case errors.Is(err, ErrNoDefinitions):
			fmt.Fprintf(p.out, "  Skipping '%s': no definitions found\n", lookup.Stem)
			p.summary.Skipped++
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			p.log.WithError(err).WithField("word", lookup.Word).Warn("word not imported")
			fmt.Fprintf(p.out, "  Warning: %v\n", err)
			p.summary.Failed++
		}
	}

	return nil
}

// CreateNote defines the lookup's stem and translates its usage sentence.
// It returns ErrNoDefinitions when the dictionary has nothing for the stem.
// A failed translation leaves the Translation field empty.
func (p *Processor) CreateNote(ctx context.Context, lookup kindle.Lookup) (anki.Note, error) {
	stem := lookup.Stem
	if stem == "" {
		stem = lookup.Word
	}

	if p.generator.Has(anki.NewNote(lookup.Word, stem, lookup.Usage, "", nil).GUID()) {
		return anki.Note{}, errDuplicate
	}

	definitions, err := p.definer.Define(ctx, stem)
	if err != nil {
		return anki.Note{}, err
	}
	if len(definitions) == 0 {
		return anki.Note{}, ErrNoDefinitions
	}

	translated, err := p.translator.Translate(ctx, lookup.Usage, p.flags.Lang, p.flags.TargetLang)
	if err != nil {
		p.log.WithError(err).WithField("word", lookup.Word).Warn("translation failed")
		fmt.Fprintf(p.out, "  Warning: Translation failed: %v\n", err)
		translated = ""
	}

	return anki.NewNote(lookup.Word, stem, lookup.Usage, translated, definitions), nil
}

// GenerateAnkiFile writes the collected notes and returns the output path.
// Nothing is written when no note was created.
func (p *Processor) GenerateAnkiFile() (string, error) {
	notes := p.generator.Notes()
	if len(notes) == 0 {
		fmt.Fprintf(p.out, "No notes created, nothing to write\n")
		return "", nil
	}

	outputDir := p.flags.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	deckName := p.flags.DeckName
	if deckName == "" {
		deckName = anki.DefaultDeckName
	}
	outputPath := filepath.Join(outputDir,
		fmt.Sprintf("%s.%s", internal.SanitizeFilename(deckName), p.generator.Extension()))

	if err := p.generator.Generate(outputPath); err != nil {
		return "", fmt.Errorf("failed to generate deck: %w", err)
	}

	total, cards, _ := p.generator.Stats()
	fmt.Fprintf(p.out, "  Generated %d notes (%d cards)\n", total, cards)
	p.log.WithField("stems", lo.Uniq(lo.Map(notes, func(note anki.Note, _ int) string {
		return note.Stem
	}))).Debug("deck written")

	return outputPath, nil
}

func (p *Processor) printSummary() {
	s := p.summary
	fmt.Fprintf(p.out, "\n=== Import Summary ===\n")
	fmt.Fprintf(p.out, "Total lookups: %d\n", s.Total)
	fmt.Fprintf(p.out, "Imported: %d\n", s.Imported)
	fmt.Fprintf(p.out, "Skipped (no definitions): %d\n", s.Skipped)
	if s.Duplicates > 0 {
		fmt.Fprintf(p.out, "Duplicates: %d\n", s.Duplicates)
	}
	if s.Failed > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", s.Failed)
	}
	if s.OutputPath != "" {
		fmt.Fprintf(p.out, "Deck written to: %s\n", s.OutputPath)
	}
	fmt.Fprintf(p.out, "======================\n")
}

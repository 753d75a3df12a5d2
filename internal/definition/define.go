package definition

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// MarkupFetcher retrieves the raw dictionary page for a word
type MarkupFetcher interface {
	Fetch(ctx context.Context, word string) ([]byte, error)
}

// FetchFunc adapts a plain function to the MarkupFetcher interface
type FetchFunc func(ctx context.Context, word string) ([]byte, error)

// Fetch calls f(ctx, word)
func (f FetchFunc) Fetch(ctx context.Context, word string) ([]byte, error) {
	return f(ctx, word)
}

// Dictionary looks up words and returns their cleaned definitions
type Dictionary struct {
	fetcher MarkupFetcher
	log     logrus.FieldLogger
}

// NewDictionary creates a dictionary backed by the given fetcher. A nil
// logger discards debug output.
func NewDictionary(fetcher MarkupFetcher, logger logrus.FieldLogger) *Dictionary {
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		logger = l
	}
	return &Dictionary{
		fetcher: fetcher,
		log:     logger.WithField("component", "dictionary"),
	}
}

// Define returns the definitions of a word in the order the dictionary
// lists them. A word the dictionary does not know yields an empty slice and
// no error; only a failed fetch is reported.
func (d *Dictionary) Define(ctx context.Context, word string) ([]string, error) {
	markup, err := d.fetcher.Fetch(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("failed to look up '%s': %w", word, err)
	}

	entries := Extract(markup)
	d.log.WithFields(logrus.Fields{
		"word":    word,
		"bytes":   len(markup),
		"entries": len(entries),
	}).Debug("dictionary page parsed")

	return lo.Map(entries, func(entry Entry, _ int) string {
		return Clean(entry)
	}), nil
}

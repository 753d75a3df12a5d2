package batch

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/vocabbuilder/internal/kindle"
)

// ReadBatchFile reads lookups from a plain text file, one per line.
// Supports formats:
// - Word only: "renommée" (looked up as is, no usage sentence)
// - With usage: "renommée = Sa renommée dépassait les frontières."
// - With stem and usage: "mangeait (manger) = Il mangeait une pomme."
// Blank lines and lines starting with '#' are ignored.
func ReadBatchFile(filename string) ([]kindle.Lookup, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var lookups []kindle.Lookup
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if lookup, ok := parseLine(line); ok {
			lookups = append(lookups, lookup)
		}
	}

	return lookups, nil
}

// parseLine parses a single non-empty line. Lines without a word are dropped.
func parseLine(line string) (kindle.Lookup, bool) {
	head, usage, _ := strings.Cut(line, "=")
	head = strings.TrimSpace(head)
	usage = strings.TrimSpace(usage)

	word, stem := head, ""
	if open := strings.Index(head, "("); open > 0 && strings.HasSuffix(head, ")") {
		word = strings.TrimSpace(head[:open])
		stem = strings.TrimSpace(head[open+1 : len(head)-1])
	}

	if word == "" {
		return kindle.Lookup{}, false
	}
	if stem == "" {
		stem = word
	}

	return kindle.Lookup{
		Word:  word,
		Stem:  stem,
		Usage: usage,
	}, true
}

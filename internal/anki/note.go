package anki

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Note is one vocabulary note of the cloze model
type Note struct {
	Usage       string // Sentence with the looked-up word marked as a cloze deletion
	Translation string // Translation of the sentence
	Stem        string // Dictionary form of the word
	Definition  string // Cleaned definitions joined with <br/>
}

// definitionSeparator joins definitions in the Definition field
const definitionSeparator = "<br/>"

// NewNote builds a note for a looked-up word. Every occurrence of word in
// usage becomes the first cloze deletion. A lookup without a usage sentence
// gets the bare word as its cloze.
func NewNote(word, stem, usage, translation string, definitions []string) Note {
	cloze := "{{c1::" + word + "}}"

	clozed := usage
	switch {
	case strings.TrimSpace(usage) == "":
		clozed = cloze
	case word != "":
		clozed = strings.ReplaceAll(usage, word, cloze)
	}

	return Note{
		Usage:       clozed,
		Translation: translation,
		Stem:        stem,
		Definition:  strings.Join(definitions, definitionSeparator),
	}
}

// Fields returns the field values in model order
func (n Note) Fields() []string {
	return []string{n.Usage, n.Translation, n.Stem, n.Definition}
}

// GUID returns the note's globally unique id, derived from the Usage field.
// Importing the same sentence twice updates the existing note in Anki.
func (n Note) GUID() string {
	return GUIDFor(n.Usage)
}

// SortField returns the value Anki sorts and checksums the note by
func (n Note) SortField() string {
	return stripHTML(n.Usage)
}

// Checksum returns the first 32 bits of the SHA-1 of the sort field, which
// Anki uses to detect duplicate notes
func (n Note) Checksum() int64 {
	sum := sha1.Sum([]byte(n.SortField()))
	value, _ := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	return value
}

var clozePattern = regexp.MustCompile(`\{\{c(\d+)::`)

// ClozeOrdinals returns the zero-based template ordinals of the cloze
// deletions in the Usage field, sorted. A note always has at least one card.
func (n Note) ClozeOrdinals() []int {
	seen := make(map[int]bool)
	var ords []int

	for _, match := range clozePattern.FindAllStringSubmatch(n.Usage, -1) {
		num, err := strconv.Atoi(match[1])
		if err != nil || num < 1 || seen[num-1] {
			continue
		}
		seen[num-1] = true
		ords = append(ords, num-1)
	}

	if len(ords) == 0 {
		return []int{0}
	}

	sort.Ints(ords)
	return ords
}

// base91Table is the alphabet Anki uses for note GUIDs
const base91Table = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!#$%&()*+,-./:;<=>?@[]^_`{|}~"

// GUIDFor derives a stable GUID from the given values: the first 8 bytes of
// the SHA-256 of the values joined by "__", encoded in base 91
func GUIDFor(values ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(values, "__")))
	return base91(binary.BigEndian.Uint64(sum[:8]))
}

func base91(num uint64) string {
	var digits []byte
	for num > 0 {
		digits = append(digits, base91Table[num%91])
		num /= 91
	}

	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	clozeMarkup  = regexp.MustCompile(`\{\{c\d+::(.*?)(::[^}]*)?\}\}`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// stripHTML removes tags and cloze markup, leaving the visible text
func stripHTML(s string) string {
	s = clozeMarkup.ReplaceAllString(s, "$1")
	s = tagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

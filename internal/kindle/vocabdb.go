package kindle

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultDBPath is where a Kindle mounted on macOS exposes its vocabulary database
const DefaultDBPath = "/Volumes/Kindle/system/vocabulary/vocab.db"

// DefaultLanguage is the book language imported when none is given
const DefaultLanguage = "fr"

// Lookup is one word the reader looked up, with the sentence it appeared in
type Lookup struct {
	Word      string    // The word as it appeared in the book
	Stem      string    // Dictionary form of the word
	Usage     string    // Sentence containing the word
	Timestamp time.Time // When the lookup happened (zero if unknown)
}

// Filter selects which lookups are read
type Filter struct {
	Lang  string    // Book language, e.g. "fr"
	Since time.Time // Only lookups at or after this time (zero = all)
}

// VocabDB is a read-only handle on a Kindle vocabulary database
type VocabDB struct {
	path string
	db   *sql.DB
}

// Open opens the database at path read-only and checks that it is reachable
func Open(ctx context.Context, path string) (*VocabDB, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro", (&url.URL{Path: path}).EscapedPath())

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary database %s: %w", path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to vocabulary database %s: %w", path, err)
	}

	return &VocabDB{path: path, db: db}, nil
}

// Path returns the database file path
func (v *VocabDB) Path() string {
	return v.path
}

// Close releases the database handle
func (v *VocabDB) Close() error {
	return v.db.Close()
}

// Lookups returns all lookups matching the filter, oldest first
func (v *VocabDB) Lookups(ctx context.Context, filter Filter) ([]Lookup, error) {
	lang := filter.Lang
	if lang == "" {
		lang = DefaultLanguage
	}

	query := `
		SELECT WORDS.word, WORDS.stem, LOOKUPS.usage, LOOKUPS.timestamp
		FROM WORDS
		JOIN LOOKUPS ON WORDS.id = LOOKUPS.word_key
		WHERE WORDS.lang = ?`
	args := []interface{}{lang}

	if !filter.Since.IsZero() {
		query += ` AND LOOKUPS.timestamp >= ?`
		args = append(args, filter.Since.UnixMilli())
	}
	query += ` ORDER BY LOOKUPS.timestamp`

	rows, err := v.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookups: %w", err)
	}
	defer rows.Close()

	var lookups []Lookup
	for rows.Next() {
		var (
			word      string
			stem      sql.NullString
			usage     sql.NullString
			timestamp sql.NullInt64
		)
		if err := rows.Scan(&word, &stem, &usage, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan lookup: %w", err)
		}

		lookup := Lookup{
			Word:  word,
			Stem:  stem.String,
			Usage: usage.String,
		}
		if lookup.Stem == "" {
			lookup.Stem = word
		}
		if timestamp.Valid {
			lookup.Timestamp = time.UnixMilli(timestamp.Int64)
		}

		lookups = append(lookups, lookup)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lookups: %w", err)
	}

	return lookups, nil
}

package testutil

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// VocabRow is one lookup row for a fixture Kindle vocabulary database
type VocabRow struct {
	Word      string
	Stem      string
	Lang      string
	Usage     string
	Timestamp int64 // Milliseconds since epoch, as the Kindle stores it
}

// CreateTestVocabDB creates a Kindle-style vocab.db with the given rows and
// returns its path
func CreateTestVocabDB(t *testing.T, dir string, rows []VocabRow) string {
	t.Helper()

	path := filepath.Join(dir, "vocab.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to create vocab db: %v", err)
	}
	defer db.Close()

	schema := []string{
		`CREATE TABLE WORDS (id TEXT PRIMARY KEY NOT NULL, word TEXT, stem TEXT, lang TEXT, category INTEGER DEFAULT 0, timestamp INTEGER DEFAULT 0, profileid TEXT)`,
		`CREATE TABLE LOOKUPS (id TEXT PRIMARY KEY NOT NULL, word_key TEXT, book_key TEXT, dict_key TEXT, pos TEXT, usage TEXT, timestamp INTEGER DEFAULT 0)`,
		`CREATE TABLE BOOK_INFO (id TEXT PRIMARY KEY NOT NULL, asin TEXT, guid TEXT, lang TEXT, title TEXT, authors TEXT)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to create vocab db schema: %v", err)
		}
	}

	for i, row := range rows {
		wordID := fmt.Sprintf("%s:%s", row.Lang, row.Word)
		if _, err := db.Exec(`INSERT OR IGNORE INTO WORDS (id, word, stem, lang) VALUES (?, ?, ?, ?)`,
			wordID, row.Word, nullable(row.Stem), row.Lang); err != nil {
			t.Fatalf("Failed to insert word %q: %v", row.Word, err)
		}
		if _, err := db.Exec(`INSERT INTO LOOKUPS (id, word_key, book_key, usage, timestamp) VALUES (?, ?, ?, ?, ?)`,
			fmt.Sprintf("lookup-%d", i), wordID, "book", row.Usage, row.Timestamp); err != nil {
			t.Fatalf("Failed to insert lookup for %q: %v", row.Word, err)
		}
	}

	return path
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// NewDictionaryServer serves fixture dictionary pages keyed by word. Unknown
// words get a page without a definitions list. The returned URL template
// can be used as a fetcher URL template.
func NewDictionaryServer(t *testing.T, pages map[string]string) (*httptest.Server, string) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		word, err := url.PathUnescape(strings.Trim(strings.TrimPrefix(r.URL.EscapedPath(), "/dict/"), "/"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if page, ok := pages[word]; ok {
			fmt.Fprint(w, page)
			return
		}
		fmt.Fprint(w, "<html><body><span>no definitions</span></body></html>")
	}))
	t.Cleanup(srv.Close)

	return srv, srv.URL + "/dict/%s/"
}

// DefinitionsPage renders a minimal Larousse-style page with one list item
// per definition
func DefinitionsPage(items ...string) string {
	var sb strings.Builder
	sb.WriteString(`<html><body><ul class="Definitions">`)
	for _, item := range items {
		sb.WriteString(`<li class="DivisionDefinition">`)
		sb.WriteString(item)
		sb.WriteString(`</li>`)
	}
	sb.WriteString(`</ul></body></html>`)
	return sb.String()
}

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContent checks if a file has expected content
func AssertFileContent(t *testing.T, path string, expected []byte) {
	t.Helper()

	actual, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if string(actual) != string(expected) {
		t.Errorf("File content mismatch in %s\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !strings.Contains(string(content), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}

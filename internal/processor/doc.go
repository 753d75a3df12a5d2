// Package processor runs an import: it loads the looked-up words from the
// Kindle or a batch file, defines and translates each one, and writes the
// resulting notes as an Anki deck.
package processor

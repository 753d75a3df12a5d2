// Package definition looks up French words in the Larousse online
// dictionary and turns the definitions list of the result page into plain
// sentences suitable for a flashcard. Usage labels and example sentences
// are stripped from every definition.
package definition

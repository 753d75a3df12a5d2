// Package kindle reads the vocabulary builder database (vocab.db) that
// Kindle e-readers keep for every word the reader looked up.
package kindle

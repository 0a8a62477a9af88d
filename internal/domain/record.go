// Package domain provides domain models used across the application.
package domain

// QueryRecord is a single SQL example extracted from a source.
// Origin and Title identify it for humans only; duplicates are allowed.
type QueryRecord struct {
	// Origin is the file path or URL the query was extracted from.
	Origin string `json:"origin"`
	// Title is the human-readable name of the query.
	Title string `json:"title"`
	// SQL is the literal query text.
	SQL string `json:"sql"`
}

// Package snapshot models the historical record of a document.
//
// A snapshot is one point in the document's history: an identifier, a
// timestamp, aggregate statistics, and the word-frequency table extracted
// from the text at that point. Snapshots are produced by an external
// extraction step; this package only loads and orders them.
package snapshot

import (
	"time"
)

// Snapshot is one recorded state of the document.
type Snapshot struct {
	ID          string             `json:"id"`
	Timestamp   int64              `json:"timestamp"`
	Stats       Stats              `json:"stats"`
	Frequencies map[string]float64 `json:"frequencies,omitempty"`
}

// Stats are the aggregate counts for one snapshot.
type Stats struct {
	WordCount       int `json:"word_count"`
	UniqueWordCount int `json:"unique_word_count"`
	FigureCount     int `json:"figure_count"`
	EquationCount   int `json:"equation_count"`
	TableCount      int `json:"table_count"`
	ListingCount    int `json:"listing_count"`
}

// Time returns the snapshot timestamp as a time.Time in UTC.
func (s Snapshot) Time() time.Time {
	return time.Unix(s.Timestamp, 0).UTC()
}

// DaysSince returns the elapsed time from first to s in fractional days.
func (s Snapshot) DaysSince(first Snapshot) float64 {
	return float64(s.Timestamp-first.Timestamp) / 86400.0
}

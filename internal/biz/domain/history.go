package domain

import "time"

// SummaryRecord is one generated summary, kept in the history store.
// History is an audit trail, not a cache: follow-up state stays in memory.
type SummaryRecord struct {
	ID        int64
	ScopeKey  string
	URL       string
	Chars     int // length of the generated summary, in runes
	CreatedAt time.Time
}

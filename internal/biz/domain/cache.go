package domain

import "time"

// CachedContent is the extracted page text kept for the follow-up window.
// Written once per successful fetch, replaced wholesale on the next one.
type CachedContent struct {
	URL       string
	Text      string
	CreatedAt time.Time
}

// Expired reports whether the entry is past its timeout at the given instant
func (c *CachedContent) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(c.CreatedAt) >= timeout
}

// CachedSummary is the generated summary kept as follow-up context
type CachedSummary struct {
	URL       string
	Summary   string
	CreatedAt time.Time
}

// Expired reports whether the entry is past its timeout at the given instant
func (c *CachedSummary) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(c.CreatedAt) >= timeout
}

// PendingLink is a URL shared in a group, waiting for a bare summarize
// keyword from any member (the group two-step trigger)
type PendingLink struct {
	URL       string
	CreatedAt time.Time
}

// Expired reports whether the entry is past its timeout at the given instant
func (p *PendingLink) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(p.CreatedAt) >= timeout
}

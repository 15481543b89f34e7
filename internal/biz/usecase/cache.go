package usecase

import (
	"sync"
	"time"

	"github.com/BenedictKing/jina-sum/internal/biz/domain"
)

// SessionCache holds the per-scope follow-up state: extracted content,
// generated summaries, and per-group pending links for the two-step group
// trigger. Entries expire lazily on read; a stale entry left in place is
// harmless since presence is always re-validated against its timestamp.
// One write per scope replaces the prior entry wholesale.
type SessionCache struct {
	mu  sync.Mutex
	now func() time.Time

	contentTTL time.Duration
	summaryTTL time.Duration

	content map[string]*domain.CachedContent // scope key -> content
	summary map[string]*domain.CachedSummary // scope key -> summary
	pending map[string]*domain.PendingLink   // group ID -> shared link
}

// NewSessionCache creates a cache using the wall clock
func NewSessionCache(contentTTL, summaryTTL time.Duration) *SessionCache {
	return NewSessionCacheWithClock(contentTTL, summaryTTL, time.Now)
}

// NewSessionCacheWithClock creates a cache with an injected clock (for tests)
func NewSessionCacheWithClock(contentTTL, summaryTTL time.Duration, now func() time.Time) *SessionCache {
	return &SessionCache{
		now:        now,
		contentTTL: contentTTL,
		summaryTTL: summaryTTL,
		content:    make(map[string]*domain.CachedContent),
		summary:    make(map[string]*domain.CachedSummary),
		pending:    make(map[string]*domain.PendingLink),
	}
}

// PutContent stores extracted page text for a scope
func (c *SessionCache) PutContent(scope domain.ChatScope, url, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content[scope.Key()] = &domain.CachedContent{
		URL:       url,
		Text:      text,
		CreatedAt: c.now(),
	}
}

// GetContent returns the cached content for a scope, or nil if absent or expired
func (c *SessionCache) GetContent(scope domain.ChatScope) *domain.CachedContent {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.content[scope.Key()]
	if !ok {
		return nil
	}
	if entry.Expired(c.now(), c.contentTTL) {
		delete(c.content, scope.Key())
		return nil
	}
	return entry
}

// PutSummary stores a generated summary for a scope
func (c *SessionCache) PutSummary(scope domain.ChatScope, url, summary string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summary[scope.Key()] = &domain.CachedSummary{
		URL:       url,
		Summary:   summary,
		CreatedAt: c.now(),
	}
}

// GetSummary returns the cached summary for a scope, or nil if absent or expired
func (c *SessionCache) GetSummary(scope domain.ChatScope) *domain.CachedSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.summary[scope.Key()]
	if !ok {
		return nil
	}
	if entry.Expired(c.now(), c.summaryTTL) {
		delete(c.summary, scope.Key())
		return nil
	}
	return entry
}

// PutPendingLink records a URL shared in a group, waiting for the bare
// summarize keyword. Bounded by the content TTL.
func (c *SessionCache) PutPendingLink(groupID, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[groupID] = &domain.PendingLink{
		URL:       url,
		CreatedAt: c.now(),
	}
}

// Sweep removes expired entries and returns how many were dropped.
// Reads already skip stale entries; sweeping only bounds memory for
// scopes that never come back.
func (c *SessionCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()

	removed := 0
	for key, entry := range c.content {
		if entry.Expired(now, c.contentTTL) {
			delete(c.content, key)
			removed++
		}
	}
	for key, entry := range c.summary {
		if entry.Expired(now, c.summaryTTL) {
			delete(c.summary, key)
			removed++
		}
	}
	for groupID, entry := range c.pending {
		if entry.Expired(now, c.contentTTL) {
			delete(c.pending, groupID)
			removed++
		}
	}
	return removed
}

// TakePendingLink consumes the pending link for a group, if one is still fresh
func (c *SessionCache) TakePendingLink(groupID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.pending[groupID]
	if !ok {
		return "", false
	}
	delete(c.pending, groupID)
	if entry.Expired(c.now(), c.contentTTL) {
		return "", false
	}
	return entry.URL, true
}

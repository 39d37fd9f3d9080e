// Package session keeps per-user WaniKani data fetched during command
// handling. Entries are overwritten by the next fetch, never expired.
package session

import (
	"sync"

	"crabigator/internal/domain"
)

// entry holds the most recent records for one user.
type entry struct {
	profile *domain.UserProfile
	summary *domain.Summary
}

// Cache is an in-memory per-user cache. Each user id is an independent
// key, so concurrent commands from different users never contend on the
// same entry; same-user overlap is last-write-wins.
type Cache struct {
	mu      sync.RWMutex
	entries map[int64]*entry
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[int64]*entry)}
}

// Profile returns the cached profile for a user, if present
func (c *Cache) Profile(userID int64) (*domain.UserProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[userID]
	if !ok || e.profile == nil {
		return nil, false
	}
	return e.profile, true
}

// SetProfile stores the latest profile for a user
func (c *Cache) SetProfile(userID int64, profile *domain.UserProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensure(userID).profile = profile
}

// Summary returns the cached summary for a user, if present
func (c *Cache) Summary(userID int64) (*domain.Summary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[userID]
	if !ok || e.summary == nil {
		return nil, false
	}
	return e.summary, true
}

// SetSummary stores the latest summary for a user
func (c *Cache) SetSummary(userID int64, summary *domain.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensure(userID).summary = summary
}

// Forget drops everything cached for a user. Called on deregistration so
// a removed user leaves no data behind.
func (c *Cache) Forget(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}

func (c *Cache) ensure(userID int64) *entry {
	e, ok := c.entries[userID]
	if !ok {
		e = &entry{}
		c.entries[userID] = e
	}
	return e
}

package handler

import (
	"context"
	"sync"

	"crabigator/internal/chat"
	"crabigator/internal/metrics"
)

// defaultStatuses rotate through the bot's displayed presence.
var defaultStatuses = []string{
	"Learning ALL the Kanji!",
	"Judging your review accuracy",
	"Burning turtles since 2019",
	"水 is not 氷. Look closer.",
	"Waiting for your next level up",
}

// Presence rotates the bot's status. Rotate is the action driven by the
// recurring task scheduler.
type Presence struct {
	gateway  chat.Gateway
	statuses []string

	mu   sync.Mutex
	next int
}

// NewPresence creates a presence rotator. An empty list falls back to
// the default statuses.
func NewPresence(gateway chat.Gateway, statuses []string) *Presence {
	if len(statuses) == 0 {
		statuses = defaultStatuses
	}
	return &Presence{gateway: gateway, statuses: statuses}
}

// Rotate advances to the next status and pushes it to the platform.
func (p *Presence) Rotate(_ context.Context) error {
	p.mu.Lock()
	status := p.statuses[p.next]
	p.next = (p.next + 1) % len(p.statuses)
	p.mu.Unlock()

	metrics.PresenceRotationsTotal.Inc()
	return p.gateway.SetPresence(status)
}

package cache

import (
	"sync"
	"time"

	"github.com/ticketmint/ticket-indexer/internal/adapter"
	"github.com/ticketmint/ticket-indexer/internal/domain"
)

// entry holds one cached pipeline result
type entry struct {
	tickets   []domain.Ticket
	timestamp time.Time
}

// TicketCache is a TTL-bounded memoization of pipeline results keyed by
// wallet address. It is in-memory and process-lifetime only; the mutex
// guards the map, not redundant concurrent fetches (request coalescing
// lives in the ticket service).
type TicketCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	clock   adapter.Clock
}

// New creates a ticket cache with the given TTL
func New(ttl time.Duration, clock adapter.Clock) *TicketCache {
	return &TicketCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get returns the cached tickets for an address if the entry is still fresh
func (c *TicketCache) Get(address string) ([]domain.Ticket, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[address]
	if !ok {
		return nil, false
	}
	if c.clock.Since(e.timestamp) >= c.ttl {
		return nil, false
	}
	return e.tickets, true
}

// Set stores a fresh pipeline result for an address
func (c *TicketCache) Set(address string, tickets []domain.Ticket) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[address] = entry{
		tickets:   tickets,
		timestamp: c.clock.Now(),
	}
}

// Invalidate removes one address's entry
func (c *TicketCache) Invalidate(address string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, address)
}

// InvalidateAll clears every entry
func (c *TicketCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}

// Len returns the number of entries currently held, fresh or stale
func (c *TicketCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

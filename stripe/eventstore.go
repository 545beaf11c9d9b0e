package stripe

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultEventTTL is how long a processed event is remembered.
	DefaultEventTTL = 24 * time.Hour
	// maxTrackedEvents bounds the store, the oldest events are evicted
	// first.
	maxTrackedEvents = 10000
)

// MemoryEventStore remembers the processed webhook events for a while, so a
// redelivered event is not processed twice.
type MemoryEventStore struct {
	events *expirable.LRU[string, time.Time]
}

// NewMemoryEventStore creates a new in-memory event store. A zero ttl uses
// DefaultEventTTL.
func NewMemoryEventStore(ttl time.Duration) *MemoryEventStore {
	if ttl <= 0 {
		ttl = DefaultEventTTL
	}
	return &MemoryEventStore{
		events: expirable.NewLRU[string, time.Time](maxTrackedEvents, nil, ttl),
	}
}

// EventExists reports whether the event was processed and has not expired.
func (m *MemoryEventStore) EventExists(eventID string) bool {
	_, ok := m.events.Peek(eventID)
	return ok
}

// MarkProcessed records the event as processed.
func (m *MemoryEventStore) MarkProcessed(eventID string) {
	m.events.Add(eventID, time.Now())
}

// Close forgets every event.
func (m *MemoryEventStore) Close() {
	m.events.Purge()
}

// Size returns the number of tracked events.
func (m *MemoryEventStore) Size() int {
	return m.events.Len()
}

package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersCreated          uint64
	UsersUpdated          uint64
	UsersDeleted          uint64
	ItemsCreated          uint64
	ItemsUpdated          uint64
	ItemsDeleted          uint64
	SearchCount           uint64
	SearchDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersCreated          uint64
	usersUpdated          uint64
	usersDeleted          uint64
	itemsCreated          uint64
	itemsUpdated          uint64
	itemsDeleted          uint64
	searchCount           uint64
	searchDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersCreated:          atomic.LoadUint64(&m.usersCreated),
		UsersUpdated:          atomic.LoadUint64(&m.usersUpdated),
		UsersDeleted:          atomic.LoadUint64(&m.usersDeleted),
		ItemsCreated:          atomic.LoadUint64(&m.itemsCreated),
		ItemsUpdated:          atomic.LoadUint64(&m.itemsUpdated),
		ItemsDeleted:          atomic.LoadUint64(&m.itemsDeleted),
		SearchCount:           atomic.LoadUint64(&m.searchCount),
		SearchDurationTotalNs: atomic.LoadInt64(&m.searchDurationTotalNs),
	}
}

// IncUserCreated increments the user created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncUserUpdated increments the user updated counter.
func (m *InMemoryRecorder) IncUserUpdated() {
	atomic.AddUint64(&m.usersUpdated, 1)
}

// IncUserDeleted increments the user deleted counter.
func (m *InMemoryRecorder) IncUserDeleted() {
	atomic.AddUint64(&m.usersDeleted, 1)
}

// IncItemCreated increments the item created counter.
func (m *InMemoryRecorder) IncItemCreated() {
	atomic.AddUint64(&m.itemsCreated, 1)
}

// IncItemUpdated increments the item updated counter.
func (m *InMemoryRecorder) IncItemUpdated() {
	atomic.AddUint64(&m.itemsUpdated, 1)
}

// IncItemDeleted increments the item deleted counter.
func (m *InMemoryRecorder) IncItemDeleted() {
	atomic.AddUint64(&m.itemsDeleted, 1)
}

// ObserveSearchDuration records a search duration.
func (m *InMemoryRecorder) ObserveSearchDuration(duration time.Duration) {
	atomic.AddUint64(&m.searchCount, 1)
	atomic.AddInt64(&m.searchDurationTotalNs, duration.Nanoseconds())
}

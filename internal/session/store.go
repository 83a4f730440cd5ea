// Package session keeps the inquiries panel state of each browser between
// requests.  Concurrent requests of one session are last-write-wins.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/iliyamo/tourfront/internal/view"
)

// Store loads and saves view state by session id.  Load returns a fresh
// state for unknown ids.
type Store interface {
	Load(ctx context.Context, id string) (*view.InquiriesState, error)
	Save(ctx context.Context, id string, st *view.InquiriesState) error
}

type memoryEntry struct {
	state   []byte
	expires time.Time
}

// MemoryStore is the fallback used when Redis is not configured.  States are
// kept encoded, like in Redis, so a loaded state never aliases a stored one.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryStore) Load(ctx context.Context, id string) (*view.InquiriesState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok || (m.ttl > 0 && m.now().After(e.expires)) {
		delete(m.entries, id)
		return view.NewInquiriesState(), nil
	}
	st := view.NewInquiriesState()
	if err := json.Unmarshal(e.state, st); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return st, nil
}

func (m *MemoryStore) Save(ctx context.Context, id string, st *view.InquiriesState) error {
	bs, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", id, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = memoryEntry{state: bs, expires: m.now().Add(m.ttl)}
	m.sweepLocked()
	return nil
}

// sweepLocked drops expired sessions so abandoned browsers do not pile up.
func (m *MemoryStore) sweepLocked() {
	if m.ttl <= 0 {
		return
	}
	now := m.now()
	for id, e := range m.entries {
		if now.After(e.expires) {
			delete(m.entries, id)
		}
	}
}

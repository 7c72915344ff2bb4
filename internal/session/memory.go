package session

import (
	"context"
	"sync"
	"time"

	"github.com/hibried/SportNow/internal/domain"
)

// MemoryStore keeps sessions in process memory. Default for a single
// instance; expired entries are dropped lazily on Get.
type MemoryStore struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]memoryEntry
}

type memoryEntry struct {
	s       *Session
	expires time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, m: make(map[string]memoryEntry)}
}

func (st *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	st.mu.RLock()
	e, ok := st.m[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(e.expires) {
		st.mu.Lock()
		delete(st.m, id)
		st.mu.Unlock()
		return nil, ErrNotFound
	}
	return clone(e.s), nil
}

func (st *MemoryStore) Put(_ context.Context, s *Session) error {
	st.mu.Lock()
	st.m[s.ID] = memoryEntry{s: clone(s), expires: time.Now().Add(st.ttl)}
	st.mu.Unlock()
	return nil
}

func clone(s *Session) *Session {
	cp := *s
	if s.PendingJoins != nil {
		cp.PendingJoins = make(map[domain.ID]domain.Participant, len(s.PendingJoins))
		for k, v := range s.PendingJoins {
			cp.PendingJoins[k] = v
		}
	}
	return &cp
}

func (st *MemoryStore) Delete(_ context.Context, id string) error {
	st.mu.Lock()
	delete(st.m, id)
	st.mu.Unlock()
	return nil
}

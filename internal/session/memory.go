package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/kmonkmol38/DashNew1/internal/domain"
)

// memoryStore keeps the blob in process memory. It round-trips through JSON
// like the durable backends so date values degrade identically (a restored
// session always sees RFC3339 strings, never live time.Time values).
type memoryStore struct {
	mu      sync.RWMutex
	payload []byte
}

// NewMemoryStore returns the in-process fallback store.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Get(ctx context.Context) (*domain.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.payload == nil {
		return nil, false, nil
	}
	var sess domain.Session
	if err := json.Unmarshal(s.payload, &sess); err != nil {
		return nil, false, err
	}
	return &sess, true, nil
}

func (s *memoryStore) Set(ctx context.Context, sess *domain.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.payload = payload
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.payload = nil
	s.mu.Unlock()
	return nil
}

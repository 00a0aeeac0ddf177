// Package session persists the current workbook session as one opaque blob
// under a fixed key, so a dashboard session survives a process restart. The
// in-memory session is the source of truth; a store failure on save is a
// warning, never fatal.
package session

import (
	"context"
	"fmt"

	"github.com/kmonkmol38/DashNew1/internal/config"
	"github.com/kmonkmol38/DashNew1/internal/domain"
)

// sessionKey is the single key all backends store the blob under.
const sessionKey = "dashboard:session"

// Store is the durable session store contract.
type Store interface {
	// Get returns the stored session, ok=false when none exists.
	Get(ctx context.Context) (*domain.Session, bool, error)
	// Set replaces the stored session.
	Set(ctx context.Context, s *domain.Session) error
	// Clear removes the stored session.
	Clear(ctx context.Context) error
}

// NewStore builds the configured backend. An unknown backend name is an
// error; callers decide whether to fall back to the in-memory store.
func NewStore(cfg config.SessionConfig) (Store, error) {
	switch cfg.Backend {
	case "redis":
		return NewRedisStore(cfg.Redis)
	case "postgres":
		return NewPostgresStore(cfg.Postgres)
	case "", "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}

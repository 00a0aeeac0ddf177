package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/sync/semaphore"

	"github.com/kmonkmol38/DashNew1/internal/config"
	"github.com/kmonkmol38/DashNew1/internal/domain"
)

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS dashboard_sessions (
    session_key TEXT PRIMARY KEY,
    payload     JSONB NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type postgresStore struct {
	db  *sqlx.DB
	sem *semaphore.Weighted
}

// NewPostgresStore opens a connection pool and ensures the sessions table
// exists.
func NewPostgresStore(cfg config.PostgresConfig) (Store, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("postgres connect failed: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return newPostgresStore(db)
}

// NewPostgresStoreFromDB wraps an already opened connection, e.g. the seed
// tool's direct pgx connection.
func NewPostgresStoreFromDB(db *sqlx.DB) (Store, error) {
	return newPostgresStore(db)
}

func newPostgresStore(db *sqlx.DB) (Store, error) {
	if _, err := db.Exec(createSessionsTable); err != nil {
		return nil, fmt.Errorf("ensure sessions table: %w", err)
	}
	return &postgresStore{
		db:  db,
		sem: semaphore.NewWeighted(5),
	}, nil
}

func (s *postgresStore) Get(ctx context.Context) (*domain.Session, bool, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, false, fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer s.sem.Release(1)

	var payload []byte
	err := s.db.GetContext(ctx, &payload,
		`SELECT payload FROM dashboard_sessions WHERE session_key = $1`, sessionKey)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("postgres get failed: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, false, fmt.Errorf("decode stored session: %w", err)
	}

	return &sess, true, nil
}

func (s *postgresStore) Set(ctx context.Context, sess *domain.Session) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer s.sem.Release(1)

	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO dashboard_sessions (session_key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (session_key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		sessionKey, payload)
	if err != nil {
		return fmt.Errorf("postgres upsert failed: %w", err)
	}

	return nil
}

func (s *postgresStore) Clear(ctx context.Context) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer s.sem.Release(1)

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM dashboard_sessions WHERE session_key = $1`, sessionKey)
	if err != nil {
		return fmt.Errorf("postgres delete failed: %w", err)
	}
	return nil
}

// Package output holds the durable sinks: a postgres store for the
// event stream and periodic world snapshots, used to resume a service
// mid-run.
package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ckarenz/floorsim/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, config models.DatabaseConfig) (*PostgresStore, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode,
	)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	store := &PostgresStore{pool: pool}
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// EnsureSchema creates the event and snapshot tables if they are
// missing. Events land in one table per topic; payloads stay JSONB so
// topic schemas can evolve without migrations.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id BIGSERIAL PRIMARY KEY,
			topic TEXT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS events_topic_idx ON events (topic)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id BIGSERIAL PRIMARY KEY,
			sim_time TIMESTAMPTZ NOT NULL,
			state JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) WriteMessage(ctx context.Context, topic string, msg []byte) error {
	if !json.Valid(msg) {
		return fmt.Errorf("payload for topic %s is not valid JSON", topic)
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO events (topic, payload) VALUES ($1, $2)`,
		strings.ToLower(topic), msg,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event for topic %s: %w", topic, err)
	}
	return nil
}

func (s *PostgresStore) SaveSnapshot(ctx context.Context, snapshot models.WorldSnapshot) error {
	state, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO snapshots (sim_time, state) VALUES ($1, $2)`,
		snapshot.Time, state,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recent saved world, or nil when none
// has been taken yet.
func (s *PostgresStore) LatestSnapshot(ctx context.Context) (*models.WorldSnapshot, error) {
	var state []byte
	err := s.pool.QueryRow(ctx,
		`SELECT state FROM snapshots ORDER BY sim_time DESC, id DESC LIMIT 1`,
	).Scan(&state)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	var snapshot models.WorldSnapshot
	if err := json.Unmarshal(state, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

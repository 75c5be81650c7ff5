package persist

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"GroceryHub/internal/grocery"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// PostgresStore keeps the state document as a single jsonb row. An
// alternative primary to the hub for deployments that already run Postgres.
type PostgresStore struct {
	db *sql.DB
}

func OpenPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Name() string { return "postgres" }

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

// EnsureSchema creates the state table if it is missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS grocery_state (
				id         int PRIMARY KEY CHECK (id = 1),
				doc        jsonb NOT NULL,
				updated_at timestamptz NOT NULL
			)
		`)
		return err
	})
}

func (s *PostgresStore) Load(ctx context.Context) (grocery.Document, bool, error) {
	var raw []byte

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT doc FROM grocery_state WHERE id = 1
		`).Scan(&raw)
	})

	if err == sql.ErrNoRows {
		return grocery.Document{}, false, nil
	}
	if err != nil {
		return grocery.Document{}, false, err
	}

	doc, err := DecodeDocument(raw)
	if err != nil {
		return grocery.Document{}, false, err
	}
	return doc, true, nil
}

func (s *PostgresStore) Save(ctx context.Context, doc grocery.Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO grocery_state (id, doc, updated_at)
			VALUES (1, $1, $2)
			ON CONFLICT (id) DO UPDATE SET doc = $1, updated_at = $2
		`, b, doc.LastUpdated)
		return err
	})
}

func (s *PostgresStore) Close() error { return s.db.Close() }

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

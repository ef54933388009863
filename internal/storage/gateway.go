package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// Gateway is the key/value persistence contract: JSON documents addressed by
// string keys, no transactional guarantees.
type Gateway interface {
	// Load returns the stored value for key, or ok=false when absent.
	Load(key string) (value json.RawMessage, ok bool, err error)
	// Save upserts the JSON encoding of value under key.
	Save(key string, value interface{}) error
}

// PostgresGateway stores documents in the app_storage table.
type PostgresGateway struct {
	db *sql.DB
}

func NewPostgresGateway(db *sql.DB) *PostgresGateway {
	return &PostgresGateway{db: db}
}

func (g *PostgresGateway) Load(key string) (json.RawMessage, bool, error) {
	var raw []byte
	err := g.db.QueryRow(
		`SELECT value FROM app_storage WHERE key = $1`,
		key,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %q: %w", key, err)
	}
	return json.RawMessage(raw), true, nil
}

func (g *PostgresGateway) Save(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	_, err = g.db.Exec(
		`INSERT INTO app_storage (key, value, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, raw,
	)
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

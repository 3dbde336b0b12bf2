package database

import (
	"context"
	"database/sql"
	"fmt"
)

// RecordStorage stores one named record in storage_records.
type RecordStorage struct {
	db   *DB
	name string
}

func NewRecordStorage(db *DB, name string) *RecordStorage {
	return &RecordStorage{db: db, name: name}
}

func (s *RecordStorage) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	query := `SELECT payload FROM storage_records WHERE name = $1`

	err := s.db.QueryRowContext(ctx, query, s.name).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record %s: %w", s.name, err)
	}
	return payload, nil
}

func (s *RecordStorage) Save(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO storage_records (name, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query, s.name, string(data)); err != nil {
		return fmt.Errorf("failed to save record %s: %w", s.name, err)
	}
	return nil
}

func (s *RecordStorage) Close() error {
	return s.db.Close()
}

// Ping reports an error when the database health check fails.
func (s *RecordStorage) Ping(ctx context.Context) error {
	if hc := s.db.HealthCheck(ctx); hc.Status != "healthy" {
		return fmt.Errorf("database %s: %s", hc.Status, hc.Error)
	}
	return nil
}

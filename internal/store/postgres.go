package store

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

// PostgresStore persists resumes in a single table keyed by id, with the
// structured resume held as JSONB.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *errors.Logger
}

const createResumesTable = `
CREATE TABLE IF NOT EXISTS resumes (
	id          UUID PRIMARY KEY,
	user_id     TEXT NOT NULL,
	name        TEXT NOT NULL,
	raw_text    TEXT NOT NULL,
	resume_data JSONB NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS resumes_user_recency ON resumes (user_id, updated_at DESC);`

// NewPostgresStore connects, verifies the connection and ensures the schema.
func NewPostgresStore(ctx context.Context, cfg *config.StorageConfig, logger *errors.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to create database pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to connect to database", err)
	}
	if _, err := pool.Exec(ctx, createResumesTable); err != nil {
		pool.Close()
		return nil, errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to ensure resume schema", err)
	}

	logger.Debug("Connected to Postgres resume store")
	return &PostgresStore{pool: pool, logger: logger}, nil
}

// List returns the user's resumes ordered by recency.
func (s *PostgresStore) List(ctx context.Context, userID string) ([]types.SavedResume, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, name, raw_text, resume_data, updated_at
		 FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to list resumes", err)
	}
	defer rows.Close()

	out := make([]types.SavedResume, 0)
	for rows.Next() {
		var record types.SavedResume
		var resumeJSON []byte
		if err := rows.Scan(&record.ID, &record.UserID, &record.Name,
			&record.RawText, &resumeJSON, &record.UpdatedAt); err != nil {
			return nil, errors.NewStorageError(errors.ErrCodeStoreFailed,
				"Failed to scan resume row", err)
		}
		if err := json.Unmarshal(resumeJSON, &record.ResumeData); err != nil {
			return nil, errors.NewStorageError(errors.ErrCodeStoreFailed,
				"Stored resume data is corrupt", err).WithContext("id", record.ID)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to list resumes", err)
	}
	return out, nil
}

// Save upserts. A record without an id is inserted under a fresh UUID; a
// record with an id updates that row only when the user owns it.
func (s *PostgresStore) Save(ctx context.Context, record types.SavedResume) (types.SavedResume, error) {
	resumeJSON, err := json.Marshal(record.ResumeData)
	if err != nil {
		return types.SavedResume{}, errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to encode resume data", err)
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
		err = s.pool.QueryRow(ctx,
			`INSERT INTO resumes (id, user_id, name, raw_text, resume_data, updated_at)
			 VALUES ($1, $2, $3, $4, $5, now())
			 RETURNING updated_at`,
			record.ID, record.UserID, record.Name, record.RawText, resumeJSON,
		).Scan(&record.UpdatedAt)
		if err != nil {
			return types.SavedResume{}, errors.NewStorageError(errors.ErrCodeStoreFailed,
				"Failed to save resume", err)
		}
		return record, nil
	}

	err = s.pool.QueryRow(ctx,
		`UPDATE resumes
		 SET name = $3, raw_text = $4, resume_data = $5, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING updated_at`,
		record.ID, record.UserID, record.Name, record.RawText, resumeJSON,
	).Scan(&record.UpdatedAt)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return types.SavedResume{}, notFoundError(record.ID)
	}
	if err != nil {
		return types.SavedResume{}, errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to save resume", err)
	}
	return record, nil
}

// Delete removes the user's record; foreign or unknown ids are not-found.
func (s *PostgresStore) Delete(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStoreFailed,
			"Failed to delete resume", err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundError(id)
	}
	return nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

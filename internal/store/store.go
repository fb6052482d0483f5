// Package store persists saved resumes. Two drivers share one contract: a
// local JSON file and Postgres. Every operation is scoped to the acting
// user; a record belonging to someone else behaves as if it did not exist.
package store

import (
	"context"
	"fmt"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

// Store is the persistence contract. Save is an upsert: a record without an
// id is created and assigned one; a record with an id updates that record in
// place, so repeating a save never duplicates.
type Store interface {
	List(ctx context.Context, userID string) ([]types.SavedResume, error)
	Save(ctx context.Context, record types.SavedResume) (types.SavedResume, error)
	Delete(ctx context.Context, userID, id string) error
	Close() error
}

// New selects a driver from configuration.
func New(ctx context.Context, cfg *config.StorageConfig, logger *errors.Logger) (Store, error) {
	switch cfg.Driver {
	case "file":
		return NewFileStore(cfg, logger)
	case "postgres":
		return NewPostgresStore(ctx, cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported storage driver: %s", cfg.Driver), nil)
	}
}

func notFoundError(id string) *errors.AppError {
	return errors.NewStorageError(errors.ErrCodeNotFound,
		fmt.Sprintf("Resume %s not found", id), nil)
}

// IsNotFound reports whether err is the store's not-found outcome.
func IsNotFound(err error) bool {
	appErr, ok := errors.AsAppError(err)
	return ok && appErr.Code == errors.ErrCodeNotFound
}

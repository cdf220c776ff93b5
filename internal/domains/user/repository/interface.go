package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/user/model"
)

// RepositoryInterface is the user persistence contract.
type RepositoryInterface interface {
	// Create persists a new user, or returns ErrDuplicateUsername.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// GetByID returns the user with the given id, or ErrUserNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByUsername returns the user with the given username, or
	// ErrUserNotFound.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

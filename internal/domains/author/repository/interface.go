package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/author/model"
)

// RepositoryInterface is the author persistence contract.
type RepositoryInterface interface {
	// GetByName returns the author with the exact name, or ErrAuthorNotFound.
	GetByName(ctx context.Context, name string) (*model.Author, error)

	// UpdateBorn sets the birth year of the named author and returns the
	// updated row, or ErrAuthorNotFound if no author has that name.
	UpdateBorn(ctx context.Context, name string, born int) (*model.Author, error)

	// GetAll returns every author.
	GetAll(ctx context.Context) ([]model.Author, error)

	// Count returns the total number of authors.
	Count(ctx context.Context) (int, error)

	// BookCount returns the number of books referencing the author. The
	// count is always derived from the books table, never stored.
	BookCount(ctx context.Context, authorID uuid.UUID) (int, error)
}

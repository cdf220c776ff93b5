package repository

import (
	"context"

	"library-backend/internal/domains/book/model"
)

// RepositoryInterface is the book persistence contract.
type RepositoryInterface interface {
	// Create persists a book, resolving its author by name inside the same
	// transaction: the author row is upserted (created with no birth year if
	// missing), then the book is inserted referencing it. The returned book
	// has Author populated.
	Create(ctx context.Context, input model.AddBookInput) (*model.Book, error)

	// GetAll returns all books with their authors joined, optionally
	// filtered by exact author name and/or genre membership.
	GetAll(ctx context.Context, filter model.BookFilter) ([]model.Book, error)

	// Count returns the total number of books.
	Count(ctx context.Context) (int, error)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/domains/author/repository"
)

// Service exposes author operations to the resolver layer.
type Service interface {
	// EditBorn sets the birth year of the named author. A nil author with a
	// nil error means the author does not exist; the caller turns that into
	// a null result rather than an error.
	EditBorn(ctx context.Context, input model.EditAuthorInput) (*model.Author, error)

	// GetAll returns every author.
	GetAll(ctx context.Context) ([]model.Author, error)

	// Count returns the total number of authors.
	Count(ctx context.Context) (int, error)

	// BookCount derives the number of books referencing the author.
	BookCount(ctx context.Context, authorID uuid.UUID) (int, error)
}

type authorService struct {
	repo repository.RepositoryInterface
}

// NewService creates the author service.
func NewService(repo repository.RepositoryInterface) Service {
	return &authorService{repo: repo}
}

func (s *authorService) EditBorn(ctx context.Context, input model.EditAuthorInput) (*model.Author, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	// Unknown author is not an error for editAuthor, so resolve the name
	// before touching the row.
	if _, err := s.repo.GetByName(ctx, input.Name); err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("edit author: %w", err)
	}

	updated, err := s.repo.UpdateBorn(ctx, input.Name, input.SetBornTo)
	if err != nil {
		if errors.Is(err, model.ErrAuthorNotFound) {
			// Deleted between lookup and update.
			return nil, nil
		}
		return nil, fmt.Errorf("edit author: %w", err)
	}

	return updated, nil
}

func (s *authorService) GetAll(ctx context.Context) ([]model.Author, error) {
	return s.repo.GetAll(ctx)
}

func (s *authorService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *authorService) BookCount(ctx context.Context, authorID uuid.UUID) (int, error) {
	return s.repo.BookCount(ctx, authorID)
}

package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	"library-backend/internal/shared/pubsub"
)

// Service exposes book operations to the resolver layer.
type Service interface {
	// AddBook validates the input, persists the book (creating its author
	// if needed) and publishes it on the notification channel.
	AddBook(ctx context.Context, input model.AddBookInput) (*model.Book, error)

	// GetAll returns all books with authors resolved, optionally filtered.
	GetAll(ctx context.Context, filter model.BookFilter) ([]model.Book, error)

	// Count returns the total number of books.
	Count(ctx context.Context) (int, error)

	// Subscribe registers a bookAdded subscriber.
	Subscribe(ctx context.Context) (<-chan *model.Book, func())
}

type bookService struct {
	repo   repository.RepositoryInterface
	broker pubsub.Broker[*model.Book]
}

// NewService creates the book service.
func NewService(repo repository.RepositoryInterface, broker pubsub.Broker[*model.Book]) Service {
	return &bookService{repo: repo, broker: broker}
}

func (s *bookService) AddBook(ctx context.Context, input model.AddBookInput) (*model.Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	book, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("add book: %w", err)
	}

	// The book is persisted either way; a broker failure must not fail the
	// mutation.
	if err := s.broker.Publish(ctx, book); err != nil {
		log.Error().Err(err).Str("title", book.Title).Msg("failed to publish bookAdded event")
	}

	return book, nil
}

func (s *bookService) GetAll(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	return s.repo.GetAll(ctx, filter)
}

func (s *bookService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *bookService) Subscribe(ctx context.Context) (<-chan *model.Book, func()) {
	return s.broker.Subscribe(ctx)
}

package model

import (
	"time"

	"github.com/google/uuid"

	authormodel "library-backend/internal/domains/author/model"
)

// Book is a catalog entry. Books are immutable once created and always
// reference exactly one author.
type Book struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Published int       `json:"published" db:"published"`
	Genres    []string  `json:"genres" db:"genres"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Author is the joined author row, populated by the repository.
	Author *authormodel.Author `json:"author"`
}

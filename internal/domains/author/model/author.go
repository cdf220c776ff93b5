package model

import (
	"time"

	"github.com/google/uuid"
)

// Author is a catalog author. Born is optional; authors created implicitly
// during addBook start with no birth year.
type Author struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Born      *int      `json:"born" db:"born"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account in the catalog. Users carry no individual credentials;
// login is checked against the server's shared secret.
type User struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Username      string    `json:"username" db:"username"`
	FavoriteGenre string    `json:"favorite_genre" db:"favorite_genre"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

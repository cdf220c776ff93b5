package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateUserInput carries the createUser mutation arguments.
type CreateUserInput struct {
	Username      string `json:"username"`
	FavoriteGenre string `json:"favoriteGenre"`
}

func (in CreateUserInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required, validation.Length(3, 100)),
		validation.Field(&in.FavoriteGenre, validation.Required, validation.Length(1, 100)),
	)
}

// LoginInput carries the login mutation arguments.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

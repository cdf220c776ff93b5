package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AddBookInput carries the addBook mutation arguments.
type AddBookInput struct {
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Published int      `json:"published"`
	Genres    []string `json:"genres"`
}

func (in AddBookInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&in.Author, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Published, validation.Min(-3000), validation.Max(3000)),
		validation.Field(&in.Genres, validation.Each(validation.Required)),
	)
}

// BookFilter selects books by exact author name and/or genre membership.
// Empty fields mean "no filter"; both set means the intersection.
type BookFilter struct {
	Author string
	Genre  string
}

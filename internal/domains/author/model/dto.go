package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// EditAuthorInput carries the editAuthor mutation arguments.
type EditAuthorInput struct {
	Name      string `json:"name"`
	SetBornTo int    `json:"setBornTo"`
}

func (in EditAuthorInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.SetBornTo, validation.Min(-3000), validation.Max(3000)),
	)
}

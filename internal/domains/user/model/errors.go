package model

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrWrongCredentials  = errors.New("wrong credentials")
)

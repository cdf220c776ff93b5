package graphql

import (
	"errors"

	gql "github.com/botobag/artemis/graphql"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	bookmodel "library-backend/internal/domains/book/model"
	usermodel "library-backend/internal/domains/user/model"
)

// Error codes surfaced in extensions, compatible with Apollo clients.
const (
	codeBadUserInput       = "BAD_USER_INPUT"
	codeUnauthenticated    = "UNAUTHENTICATED"
	codeInvalidCredentials = "INVALID_CREDENTIALS"
)

// errNotAuthenticated is returned by mutations invoked without a current
// user.
func errNotAuthenticated() error {
	return gql.NewError("not authenticated", gql.ErrorExtensions{
		"code": codeUnauthenticated,
	})
}

// errWrongCredentials is returned by login on unknown user or wrong
// password.
func errWrongCredentials() error {
	return gql.NewError("wrong credentials", gql.ErrorExtensions{
		"code": codeInvalidCredentials,
	})
}

// errUserInput carries the offending arguments back to the caller the way
// Apollo's UserInputError does.
func errUserInput(message string, invalidArgs map[string]interface{}) error {
	return gql.NewError(message, gql.ErrorExtensions{
		"code":        codeBadUserInput,
		"invalidArgs": invalidArgs,
	})
}

// mapMutationError translates domain failures into typed GraphQL errors.
// Anything unrecognized passes through and surfaces as a plain error.
func mapMutationError(err error, invalidArgs map[string]interface{}) error {
	switch {
	case errors.Is(err, bookmodel.ErrInvalidBook),
		errors.Is(err, usermodel.ErrDuplicateUsername):
		return errUserInput(err.Error(), invalidArgs)
	case errors.Is(err, usermodel.ErrWrongCredentials):
		return errWrongCredentials()
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return errUserInput(err.Error(), invalidArgs)
	}

	return err
}

package graphql

import (
	"context"

	gql "github.com/botobag/artemis/graphql"

	authormodel "library-backend/internal/domains/author/model"
	authorservice "library-backend/internal/domains/author/service"
	bookmodel "library-backend/internal/domains/book/model"
	bookservice "library-backend/internal/domains/book/service"
	usermodel "library-backend/internal/domains/user/model"
	userservice "library-backend/internal/domains/user/service"
)

// Resolvers implements every query, mutation and subscription in the schema
// by delegating to the domain services.
type Resolvers struct {
	Authors authorservice.Service
	Books   bookservice.Service
	Users   userservice.Service
}

// NewResolvers wires the resolver layer to its services.
func NewResolvers(authors authorservice.Service, books bookservice.Service, users userservice.Service) *Resolvers {
	return &Resolvers{
		Authors: authors,
		Books:   books,
		Users:   users,
	}
}

// Query.hello: liveness probe.
func (r *Resolvers) hello(context.Context, interface{}, gql.ResolveInfo) (interface{}, error) {
	return "world", nil
}

// Query.bookCount
func (r *Resolvers) bookCount(ctx context.Context, _ interface{}, _ gql.ResolveInfo) (interface{}, error) {
	return r.Books.Count(ctx)
}

// Query.authorCount
func (r *Resolvers) authorCount(ctx context.Context, _ interface{}, _ gql.ResolveInfo) (interface{}, error) {
	return r.Authors.Count(ctx)
}

// Query.allBooks: author and genre filters are exact matches; both present
// means the intersection.
func (r *Resolvers) allBooks(ctx context.Context, _ interface{}, info gql.ResolveInfo) (interface{}, error) {
	filter := bookmodel.BookFilter{
		Author: argString(info, "author"),
		Genre:  argString(info, "genre"),
	}
	return r.Books.GetAll(ctx, filter)
}

// Query.allAuthors: bookCount on each returned author is resolved lazily by
// the Author type's field resolver.
func (r *Resolvers) allAuthors(ctx context.Context, _ interface{}, _ gql.ResolveInfo) (interface{}, error) {
	return r.Authors.GetAll(ctx)
}

// Query.me: null when unauthenticated, never an error.
func (r *Resolvers) me(_ context.Context, _ interface{}, info gql.ResolveInfo) (interface{}, error) {
	u := currentUser(info)
	if u == nil {
		return nil, nil
	}
	return u, nil
}

// Mutation.addBook
func (r *Resolvers) addBook(ctx context.Context, _ interface{}, info gql.ResolveInfo) (interface{}, error) {
	if currentUser(info) == nil {
		return nil, errNotAuthenticated()
	}

	input := bookmodel.AddBookInput{
		Title:     argString(info, "title"),
		Author:    argString(info, "author"),
		Published: argInt(info, "published"),
		Genres:    argStringList(info, "genres"),
	}

	book, err := r.Books.AddBook(ctx, input)
	if err != nil {
		return nil, mapMutationError(err, map[string]interface{}{
			"title":     input.Title,
			"author":    input.Author,
			"published": input.Published,
			"genres":    input.Genres,
		})
	}

	return book, nil
}

// Mutation.editAuthor: unknown author yields null, not an error.
func (r *Resolvers) editAuthor(ctx context.Context, _ interface{}, info gql.ResolveInfo) (interface{}, error) {
	if currentUser(info) == nil {
		return nil, errNotAuthenticated()
	}

	input := authormodel.EditAuthorInput{
		Name:      argString(info, "name"),
		SetBornTo: argInt(info, "setBornTo"),
	}

	author, err := r.Authors.EditBorn(ctx, input)
	if err != nil {
		return nil, mapMutationError(err, map[string]interface{}{
			"name":      input.Name,
			"setBornTo": input.SetBornTo,
		})
	}
	if author == nil {
		return nil, nil
	}

	return author, nil
}

// Mutation.createUser: open to anonymous callers.
func (r *Resolvers) createUser(ctx context.Context, _ interface{}, info gql.ResolveInfo) (interface{}, error) {
	input := usermodel.CreateUserInput{
		Username:      argString(info, "username"),
		FavoriteGenre: argString(info, "favoriteGenre"),
	}

	u, err := r.Users.CreateUser(ctx, input)
	if err != nil {
		return nil, mapMutationError(err, map[string]interface{}{
			"username":      input.Username,
			"favoriteGenre": input.FavoriteGenre,
		})
	}

	return u, nil
}

// Mutation.login
func (r *Resolvers) login(ctx context.Context, _ interface{}, info gql.ResolveInfo) (interface{}, error) {
	input := usermodel.LoginInput{
		Username: argString(info, "username"),
		Password: argString(info, "password"),
	}

	value, err := r.Users.Login(ctx, input)
	if err != nil {
		return nil, mapMutationError(err, map[string]interface{}{
			"username": input.Username,
		})
	}

	return Token{Value: value}, nil
}

// Subscription.bookAdded: the stream handler executes the operation once
// per published event with the book as root value.
func (r *Resolvers) bookAdded(_ context.Context, source interface{}, _ gql.ResolveInfo) (interface{}, error) {
	return source, nil
}

// Author.bookCount: derived per item from the books referencing the
// author, never stored.
func (r *Resolvers) authorBookCount(ctx context.Context, source interface{}, _ gql.ResolveInfo) (interface{}, error) {
	a := authorFromSource(source)
	if a == nil {
		return nil, nil
	}
	return r.Authors.BookCount(ctx, a.ID)
}

// Argument helpers. Artemis coerces scalars before resolvers run; these
// normalize the handful of dynamic shapes coercion can produce.

func argString(info gql.ResolveInfo, name string) string {
	s, _ := info.Args().Get(name).(string)
	return s
}

func argInt(info gql.ResolveInfo, name string) int {
	switch v := info.Args().Get(name).(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func argStringList(info gql.ResolveInfo, name string) []string {
	switch v := info.Args().Get(name).(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Source helpers. List fields resolve with value elements while single
// results resolve with pointers; accept both.

func bookFromSource(source interface{}) *bookmodel.Book {
	switch b := source.(type) {
	case *bookmodel.Book:
		return b
	case bookmodel.Book:
		return &b
	}
	return nil
}

func authorFromSource(source interface{}) *authormodel.Author {
	switch a := source.(type) {
	case *authormodel.Author:
		return a
	case authormodel.Author:
		return &a
	}
	return nil
}

func userFromSource(source interface{}) *usermodel.User {
	switch u := source.(type) {
	case *usermodel.User:
		return u
	case usermodel.User:
		return &u
	}
	return nil
}

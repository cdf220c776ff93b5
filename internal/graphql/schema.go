package graphql

import (
	"context"

	gql "github.com/botobag/artemis/graphql"
)

// Token is the login result carrying the signed bearer token.
type Token struct {
	Value string
}

// NewSchema builds the executable schema around the resolver set.
func NewSchema(r *Resolvers) (*gql.Schema, error) {
	tokenType := gql.MustNewObject(&gql.ObjectConfig{
		Name: "Token",
		Fields: gql.Fields{
			"value": {
				Type: gql.NonNullOfType(gql.String()),
				Resolver: gql.FieldResolverFunc(func(_ context.Context, source interface{}, _ gql.ResolveInfo) (interface{}, error) {
					t, _ := source.(Token)
					return t.Value, nil
				}),
			},
		},
	})

	userType := gql.MustNewObject(&gql.ObjectConfig{
		Name: "User",
		Fields: gql.Fields{
			"id": {
				Type: gql.NonNullOfType(gql.ID()),
				Resolver: gql.FieldResolverFunc(func(_ context.Context, source interface{}, _ gql.ResolveInfo) (interface{}, error) {
					if u := userFromSource(source); u != nil {
						return u.ID.String(), nil
					}
					return nil, nil
				}),
			},
			"username": {
				Type: gql.NonNullOfType(gql.String()),
				Resolver: gql.FieldResolverFunc(func(_ context.Context, source interface{}, _ gql.ResolveInfo) (interface{}, error) {
					if u := userFromSource(source); u != nil {
						return u.Username, nil
					}
					return nil, nil
				}),
			},
			"favoriteGenre": {
				Type: gql.NonNullOfType(gql.String()),
				Resolver: gql.FieldResolverFunc(func(_ context.Context, source interface{}, _ gql.ResolveInfo) (interface{}, error) {
					if u := userFromSource(source); u != nil {
						return u.FavoriteGenre, nil
					}
					return nil, nil
				}),
			},
		},
	})

	authorType := gql.MustNewObject(&gql.ObjectConfig{
		Name: "Author",
		Fields: gql.Fields{
			"id": {
				Type: gql.NonNullOfType(gql.ID()),
				Resolver: gql.FieldResolverFunc(func(_ context.Context, source interface{}, _ gql.ResolveInfo) (interface{}, error) {
					if a := authorFromSource(source); a != nil {
						return a.ID.String(), nil
					}
					return nil, nil
				}),
			},
			"name": {
				Type: gql.NonNullOfType(gql.String()),
				Resolver: gql.FieldResolverFunc(func(_ context.Context, source interface{}, _ gql.ResolveInfo) (interface{}, error) {
					if a := authorFromSource(source); a != nil {
						return a.Name, nil
					}
					return nil, nil
				}),
			},
			"born": {
				Type: gql.T(gql.Int()),
				Resolver: gql.FieldResolverFunc(func(_ context.Context, source interface{}, _ gql.ResolveInfo) (interface{}, error) {
					if a := authorFromSource(source); a != nil && a.Born != nil {
						return *a.Born, nil
					}
					return nil, nil
				}),
			},
			"bookCount": {
				Type:     gql.NonNullOfType(gql.Int()),
				Resolver: gql.FieldResolverFunc(r.authorBookCount),
			},
		},
	})

	bookType := gql.MustNewObject(&gql.ObjectConfig{
		Name: "Book",
		Fields: gql.Fields{
			"id": {
				Type: gql.NonNullOfType(gql.ID()),
				Resolver: gql.FieldResolverFunc(func(_ context.Context, source interface{}, _ gql.ResolveInfo) (interface{}, error) {
					if b := bookFromSource(source); b != nil {
						return b.ID.String(), nil
					}
					return nil, nil
				}),
			},
			"title": {
				Type: gql.NonNullOfType(gql.String()),
				Resolver: gql.FieldResolverFunc(func(_ context.Context, source interface{}, _ gql.ResolveInfo) (interface{}, error) {
					if b := bookFromSource(source); b != nil {
						return b.Title, nil
					}
					return nil, nil
				}),
			},
			"published": {
				Type: gql.NonNullOfType(gql.Int()),
				Resolver: gql.FieldResolverFunc(func(_ context.Context, source interface{}, _ gql.ResolveInfo) (interface{}, error) {
					if b := bookFromSource(source); b != nil {
						return b.Published, nil
					}
					return nil, nil
				}),
			},
			"genres": {
				Type: gql.NonNullOf(gql.ListOf(gql.NonNullOfType(gql.String()))),
				Resolver: gql.FieldResolverFunc(func(_ context.Context, source interface{}, _ gql.ResolveInfo) (interface{}, error) {
					if b := bookFromSource(source); b != nil {
						return b.Genres, nil
					}
					return nil, nil
				}),
			},
			"author": {
				Type: gql.NonNullOfType(authorType),
				Resolver: gql.FieldResolverFunc(func(_ context.Context, source interface{}, _ gql.ResolveInfo) (interface{}, error) {
					if b := bookFromSource(source); b != nil {
						return b.Author, nil
					}
					return nil, nil
				}),
			},
		},
	})

	queryType := gql.MustNewObject(&gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"hello": {
				Type:     gql.T(gql.String()),
				Resolver: gql.FieldResolverFunc(r.hello),
			},
			"bookCount": {
				Type:     gql.NonNullOfType(gql.Int()),
				Resolver: gql.FieldResolverFunc(r.bookCount),
			},
			"authorCount": {
				Type:     gql.NonNullOfType(gql.Int()),
				Resolver: gql.FieldResolverFunc(r.authorCount),
			},
			"allBooks": {
				Type: gql.NonNullOf(gql.ListOf(gql.NonNullOfType(bookType))),
				Args: gql.ArgumentConfigMap{
					"author": {Type: gql.T(gql.String())},
					"genre":  {Type: gql.T(gql.String())},
				},
				Resolver: gql.FieldResolverFunc(r.allBooks),
			},
			"allAuthors": {
				Type:     gql.NonNullOf(gql.ListOf(gql.NonNullOfType(authorType))),
				Resolver: gql.FieldResolverFunc(r.allAuthors),
			},
			"me": {
				Type:     gql.T(userType),
				Resolver: gql.FieldResolverFunc(r.me),
			},
		},
	})

	mutationType := gql.MustNewObject(&gql.ObjectConfig{
		Name: "Mutation",
		Fields: gql.Fields{
			"addBook": {
				Type: gql.T(bookType),
				Args: gql.ArgumentConfigMap{
					"title":     {Type: gql.NonNullOfType(gql.String())},
					"author":    {Type: gql.NonNullOfType(gql.String())},
					"published": {Type: gql.NonNullOfType(gql.Int())},
					"genres":    {Type: gql.NonNullOf(gql.ListOf(gql.NonNullOfType(gql.String())))},
				},
				Resolver: gql.FieldResolverFunc(r.addBook),
			},
			"editAuthor": {
				Type: gql.T(authorType),
				Args: gql.ArgumentConfigMap{
					"name":      {Type: gql.NonNullOfType(gql.String())},
					"setBornTo": {Type: gql.NonNullOfType(gql.Int())},
				},
				Resolver: gql.FieldResolverFunc(r.editAuthor),
			},
			"createUser": {
				Type: gql.T(userType),
				Args: gql.ArgumentConfigMap{
					"username":      {Type: gql.NonNullOfType(gql.String())},
					"favoriteGenre": {Type: gql.NonNullOfType(gql.String())},
				},
				Resolver: gql.FieldResolverFunc(r.createUser),
			},
			"login": {
				Type: gql.T(tokenType),
				Args: gql.ArgumentConfigMap{
					"username": {Type: gql.NonNullOfType(gql.String())},
					"password": {Type: gql.NonNullOfType(gql.String())},
				},
				Resolver: gql.FieldResolverFunc(r.login),
			},
		},
	})

	subscriptionType := gql.MustNewObject(&gql.ObjectConfig{
		Name: "Subscription",
		Fields: gql.Fields{
			"bookAdded": {
				Type:     gql.NonNullOfType(bookType),
				Resolver: gql.FieldResolverFunc(r.bookAdded),
			},
		},
	})

	return gql.NewSchema(&gql.SchemaConfig{
		Query:        queryType,
		Mutation:     mutationType,
		Subscription: subscriptionType,
	})
}

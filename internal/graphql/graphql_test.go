package graphql

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	gql "github.com/botobag/artemis/graphql"
	"github.com/botobag/artemis/graphql/executor"
	"github.com/botobag/artemis/graphql/parser"
	"github.com/botobag/artemis/graphql/token"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "library-backend/internal/domains/author/model"
	bookmodel "library-backend/internal/domains/book/model"
	usermodel "library-backend/internal/domains/user/model"
	"library-backend/internal/shared/pubsub"
)

// catalog is an in-memory stand-in for all three domain services.
type catalog struct {
	authors map[string]*authormodel.Author
	books   []bookmodel.Book
	users   map[string]*usermodel.User
	broker  pubsub.Broker[*bookmodel.Book]

	loginPassword string
}

func newCatalog() *catalog {
	return &catalog{
		authors:       map[string]*authormodel.Author{},
		users:         map[string]*usermodel.User{},
		broker:        pubsub.NewMemoryBroker[*bookmodel.Book](),
		loginPassword: "letmein",
	}
}

func (c *catalog) authorByName(name string) *authormodel.Author {
	return c.authors[name]
}

func (c *catalog) ensureAuthor(name string) *authormodel.Author {
	if a, ok := c.authors[name]; ok {
		return a
	}
	a := &authormodel.Author{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	c.authors[name] = a
	return a
}

// Author service surface.

func (c *catalog) EditBorn(_ context.Context, input authormodel.EditAuthorInput) (*authormodel.Author, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	a, ok := c.authors[input.Name]
	if !ok {
		return nil, nil
	}
	born := input.SetBornTo
	a.Born = &born
	return a, nil
}

func (c *catalog) GetAll(_ context.Context) ([]authormodel.Author, error) {
	out := make([]authormodel.Author, 0, len(c.authors))
	for _, a := range c.authors {
		out = append(out, *a)
	}
	return out, nil
}

func (c *catalog) Count(_ context.Context) (int, error) {
	return len(c.authors), nil
}

func (c *catalog) BookCount(_ context.Context, authorID uuid.UUID) (int, error) {
	n := 0
	for _, b := range c.books {
		if b.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

// Book service surface. The bookCatalog wrapper avoids method collisions
// with the author surface.

type bookCatalog struct{ *catalog }

func (c bookCatalog) AddBook(ctx context.Context, input bookmodel.AddBookInput) (*bookmodel.Book, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	author := c.ensureAuthor(input.Author)
	b := bookmodel.Book{
		ID:        uuid.New(),
		Title:     input.Title,
		Published: input.Published,
		Genres:    input.Genres,
		AuthorID:  author.ID,
		CreatedAt: time.Now(),
		Author:    author,
	}
	c.catalog.books = append(c.catalog.books, b)
	_ = c.broker.Publish(ctx, &b)
	return &b, nil
}

func (c bookCatalog) GetAll(_ context.Context, filter bookmodel.BookFilter) ([]bookmodel.Book, error) {
	out := make([]bookmodel.Book, 0, len(c.catalog.books))
	for _, b := range c.catalog.books {
		if filter.Author != "" && b.Author.Name != filter.Author {
			continue
		}
		if filter.Genre != "" {
			found := false
			for _, g := range b.Genres {
				if g == filter.Genre {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, b)
	}
	return out, nil
}

func (c bookCatalog) Count(_ context.Context) (int, error) {
	return len(c.catalog.books), nil
}

func (c bookCatalog) Subscribe(ctx context.Context) (<-chan *bookmodel.Book, func()) {
	return c.broker.Subscribe(ctx)
}

// User service surface.

type userCatalog struct{ *catalog }

func (c userCatalog) CreateUser(_ context.Context, input usermodel.CreateUserInput) (*usermodel.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if _, exists := c.users[input.Username]; exists {
		return nil, usermodel.ErrDuplicateUsername
	}
	u := &usermodel.User{
		ID:            uuid.New(),
		Username:      input.Username,
		FavoriteGenre: input.FavoriteGenre,
		CreatedAt:     time.Now(),
	}
	c.users[input.Username] = u
	return u, nil
}

func (c userCatalog) Login(_ context.Context, input usermodel.LoginInput) (string, error) {
	u, ok := c.users[input.Username]
	if !ok || input.Password != c.loginPassword {
		return "", usermodel.ErrWrongCredentials
	}
	return "token-" + u.Username, nil
}

func (c userCatalog) GetByID(_ context.Context, id uuid.UUID) (*usermodel.User, error) {
	for _, u := range c.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, usermodel.ErrUserNotFound
}

// Test harness.

type testServer struct {
	catalog *catalog
	schema  *gql.Schema
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	c := newCatalog()

	schema, err := NewSchema(NewResolvers(c, bookCatalog{c}, userCatalog{c}))
	require.NoError(t, err)

	return &testServer{catalog: c, schema: schema}
}

type graphqlResponse struct {
	Data   map[string]interface{} `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func (s *testServer) execute(t *testing.T, query string, user *usermodel.User, rootValue interface{}) graphqlResponse {
	t.Helper()

	document, err := parser.Parse(token.NewSource(&token.SourceConfig{
		Body: token.SourceBody([]byte(query)),
	}), parser.ParseOptions{})
	require.NoError(t, err)

	operation, errs := executor.Prepare(executor.PrepareParams{
		Schema:   *s.schema,
		Document: document,
	})
	require.False(t, errs.HaveOccurred(), "prepare failed: %v", errs)

	result := <-operation.Execute(context.Background(), executor.ExecuteParams{
		RootValue:  rootValue,
		AppContext: &RequestContext{User: user},
	})

	raw, err := result.MarshalJSON()
	require.NoError(t, err)

	var resp graphqlResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	return resp
}

func (s *testServer) user(t *testing.T, username string) *usermodel.User {
	t.Helper()
	u, err := userCatalog{s.catalog}.CreateUser(context.Background(), usermodel.CreateUserInput{
		Username:      username,
		FavoriteGenre: "scifi",
	})
	require.NoError(t, err)
	return u
}

func (s *testServer) addBook(t *testing.T, title, author string, published int, genres []string) *bookmodel.Book {
	t.Helper()
	b, err := bookCatalog{s.catalog}.AddBook(context.Background(), bookmodel.AddBookInput{
		Title: title, Author: author, Published: published, Genres: genres,
	})
	require.NoError(t, err)
	return b
}

// Tests.

func TestHello(t *testing.T) {
	s := newTestServer(t)

	resp := s.execute(t, `{ hello }`, nil, nil)
	require.Empty(t, resp.Errors)
	assert.Equal(t, "world", resp.Data["hello"])
}

func TestCounts(t *testing.T) {
	s := newTestServer(t)
	s.addBook(t, "Refactoring", "Martin Fowler", 1999, []string{"refactoring"})
	s.addBook(t, "NoSQL Distilled", "Martin Fowler", 2012, []string{"nosql"})
	s.addBook(t, "Clean Code", "Robert Martin", 2008, []string{"refactoring"})

	resp := s.execute(t, `{ bookCount authorCount }`, nil, nil)
	require.Empty(t, resp.Errors)
	assert.Equal(t, float64(3), resp.Data["bookCount"])
	assert.Equal(t, float64(2), resp.Data["authorCount"])
}

func TestAllBooksFilters(t *testing.T) {
	s := newTestServer(t)
	s.addBook(t, "Refactoring", "Martin Fowler", 1999, []string{"refactoring", "design"})
	s.addBook(t, "Clean Code", "Robert Martin", 2008, []string{"refactoring"})

	resp := s.execute(t, `{ allBooks(genre: "design") { title author { name } genres } }`, nil, nil)
	require.Empty(t, resp.Errors)

	books := resp.Data["allBooks"].([]interface{})
	require.Len(t, books, 1)
	book := books[0].(map[string]interface{})
	assert.Equal(t, "Refactoring", book["title"])
	assert.Equal(t, "Martin Fowler", book["author"].(map[string]interface{})["name"])

	resp = s.execute(t, `{ allBooks(author: "Robert Martin", genre: "design") { title } }`, nil, nil)
	require.Empty(t, resp.Errors)
	assert.Empty(t, resp.Data["allBooks"])
}

func TestAllAuthorsDerivesBookCount(t *testing.T) {
	s := newTestServer(t)
	s.addBook(t, "Refactoring", "Martin Fowler", 1999, []string{"refactoring"})
	s.addBook(t, "NoSQL Distilled", "Martin Fowler", 2012, []string{"nosql"})

	resp := s.execute(t, `{ allAuthors { name born bookCount } }`, nil, nil)
	require.Empty(t, resp.Errors)

	authors := resp.Data["allAuthors"].([]interface{})
	require.Len(t, authors, 1)
	author := authors[0].(map[string]interface{})
	assert.Equal(t, "Martin Fowler", author["name"])
	assert.Nil(t, author["born"])
	assert.Equal(t, float64(2), author["bookCount"])
}

func TestMe(t *testing.T) {
	s := newTestServer(t)
	u := s.user(t, "alice")

	resp := s.execute(t, `{ me { username favoriteGenre } }`, u, nil)
	require.Empty(t, resp.Errors)
	me := resp.Data["me"].(map[string]interface{})
	assert.Equal(t, "alice", me["username"])
	assert.Equal(t, "scifi", me["favoriteGenre"])

	resp = s.execute(t, `{ me { username } }`, nil, nil)
	require.Empty(t, resp.Errors)
	assert.Nil(t, resp.Data["me"])
}

func TestAddBookRequiresAuthentication(t *testing.T) {
	s := newTestServer(t)

	resp := s.execute(t, `mutation {
		addBook(title: "Clean Code", author: "Robert Martin", published: 2008, genres: ["refactoring"]) { title }
	}`, nil, nil)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "not authenticated", resp.Errors[0].Message)
	assert.Equal(t, "UNAUTHENTICATED", resp.Errors[0].Extensions["code"])
	assert.Empty(t, s.catalog.books)
}

func TestAddBookCreatesBookAndAuthor(t *testing.T) {
	s := newTestServer(t)
	u := s.user(t, "alice")

	resp := s.execute(t, `mutation {
		addBook(title: "Clean Code", author: "Robert Martin", published: 2008, genres: ["refactoring"]) {
			title
			published
			genres
			author { name bookCount }
		}
	}`, u, nil)

	require.Empty(t, resp.Errors)
	book := resp.Data["addBook"].(map[string]interface{})
	assert.Equal(t, "Clean Code", book["title"])
	assert.Equal(t, float64(2008), book["published"])
	assert.Equal(t, []interface{}{"refactoring"}, book["genres"])

	author := book["author"].(map[string]interface{})
	assert.Equal(t, "Robert Martin", author["name"])
	assert.Equal(t, float64(1), author["bookCount"])

	require.NotNil(t, s.catalog.authorByName("Robert Martin"))
}

func TestAddBookReusesExistingAuthor(t *testing.T) {
	s := newTestServer(t)
	u := s.user(t, "alice")
	s.addBook(t, "Clean Code", "Robert Martin", 2008, []string{"refactoring"})

	resp := s.execute(t, `mutation {
		addBook(title: "Agile Software Development", author: "Robert Martin", published: 2002, genres: ["agile"]) { title }
	}`, u, nil)
	require.Empty(t, resp.Errors)

	resp = s.execute(t, `{ authorCount bookCount }`, nil, nil)
	require.Empty(t, resp.Errors)
	assert.Equal(t, float64(1), resp.Data["authorCount"])
	assert.Equal(t, float64(2), resp.Data["bookCount"])
}

func TestAddBookRejectsInvalidInput(t *testing.T) {
	s := newTestServer(t)
	u := s.user(t, "alice")

	resp := s.execute(t, `mutation {
		addBook(title: "", author: "Robert Martin", published: 2008, genres: []) { title }
	}`, u, nil)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "BAD_USER_INPUT", resp.Errors[0].Extensions["code"])
	require.Contains(t, resp.Errors[0].Extensions, "invalidArgs")
	invalidArgs := resp.Errors[0].Extensions["invalidArgs"].(map[string]interface{})
	assert.Equal(t, "Robert Martin", invalidArgs["author"])
}

func TestEditAuthor(t *testing.T) {
	s := newTestServer(t)
	u := s.user(t, "alice")
	s.addBook(t, "Refactoring", "Martin Fowler", 1999, []string{"refactoring"})

	resp := s.execute(t, `mutation {
		editAuthor(name: "Martin Fowler", setBornTo: 1963) { name born }
	}`, u, nil)
	require.Empty(t, resp.Errors)
	author := resp.Data["editAuthor"].(map[string]interface{})
	assert.Equal(t, "Martin Fowler", author["name"])
	assert.Equal(t, float64(1963), author["born"])
}

func TestEditAuthorUnknownReturnsNull(t *testing.T) {
	s := newTestServer(t)
	u := s.user(t, "alice")

	resp := s.execute(t, `mutation {
		editAuthor(name: "Nobody", setBornTo: 1900) { name }
	}`, u, nil)
	require.Empty(t, resp.Errors)
	assert.Nil(t, resp.Data["editAuthor"])
}

func TestEditAuthorRequiresAuthentication(t *testing.T) {
	s := newTestServer(t)

	resp := s.execute(t, `mutation {
		editAuthor(name: "Martin Fowler", setBornTo: 1963) { name }
	}`, nil, nil)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "UNAUTHENTICATED", resp.Errors[0].Extensions["code"])
}

func TestCreateUser(t *testing.T) {
	s := newTestServer(t)

	resp := s.execute(t, `mutation {
		createUser(username: "alice", favoriteGenre: "scifi") { username favoriteGenre }
	}`, nil, nil)
	require.Empty(t, resp.Errors)
	created := resp.Data["createUser"].(map[string]interface{})
	assert.Equal(t, "alice", created["username"])

	resp = s.execute(t, `mutation {
		createUser(username: "alice", favoriteGenre: "crime") { username }
	}`, nil, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "BAD_USER_INPUT", resp.Errors[0].Extensions["code"])
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.user(t, "alice")

	resp := s.execute(t, `mutation { login(username: "alice", password: "letmein") { value } }`, nil, nil)
	require.Empty(t, resp.Errors)
	tok := resp.Data["login"].(map[string]interface{})
	assert.Equal(t, "token-alice", tok["value"])

	resp = s.execute(t, `mutation { login(username: "alice", password: "nope") { value } }`, nil, nil)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "wrong credentials", resp.Errors[0].Message)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Errors[0].Extensions["code"])
}

func TestBookAddedSubscriptionResolvesRootValue(t *testing.T) {
	s := newTestServer(t)
	book := s.addBook(t, "Clean Code", "Robert Martin", 2008, []string{"refactoring"})

	resp := s.execute(t, `subscription {
		bookAdded { title published author { name } }
	}`, nil, book)

	require.Empty(t, resp.Errors)
	added := resp.Data["bookAdded"].(map[string]interface{})
	assert.Equal(t, "Clean Code", added["title"])
	assert.Equal(t, float64(2008), added["published"])
	assert.Equal(t, "Robert Martin", added["author"].(map[string]interface{})["name"])
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/user/model"
	"library-backend/pkg/jwt"
)

type fakeUserRepo struct {
	byUsername map[string]*model.User
	byID       map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byUsername: map[string]*model.User{},
		byID:       map[uuid.UUID]*model.User{},
	}
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) (*model.User, error) {
	if _, exists := r.byUsername[u.Username]; exists {
		return nil, model.ErrDuplicateUsername
	}
	created := &model.User{
		ID:            uuid.New(),
		Username:      u.Username,
		FavoriteGenre: u.FavoriteGenre,
		CreatedAt:     time.Now(),
	}
	r.byUsername[created.Username] = created
	r.byID[created.ID] = created
	return created, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return u, nil
}

func newTestService(t *testing.T) (Service, *fakeUserRepo, *jwt.Manager) {
	t.Helper()
	repo := newFakeUserRepo()
	tokens := jwt.NewManager("test-secret", time.Hour)

	svc, err := NewService(repo, tokens, "letmein")
	require.NoError(t, err)
	return svc, repo, tokens
}

func TestCreateUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	u, err := svc.CreateUser(context.Background(), model.CreateUserInput{
		Username:      "alice",
		FavoriteGenre: "scifi",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "scifi", u.FavoriteGenre)
	assert.NotEqual(t, uuid.Nil, u.ID)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, model.CreateUserInput{Username: "alice", FavoriteGenre: "scifi"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, model.CreateUserInput{Username: "alice", FavoriteGenre: "crime"})
	assert.ErrorIs(t, err, model.ErrDuplicateUsername)
}

func TestCreateUserValidatesInput(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateUser(context.Background(), model.CreateUserInput{Username: "al"})
	assert.Error(t, err)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _, tokens := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, model.CreateUserInput{Username: "alice", FavoriteGenre: "scifi"})
	require.NoError(t, err)

	token, err := svc.Login(ctx, model.LoginInput{Username: "alice", Password: "letmein"})
	require.NoError(t, err)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, created.ID.String(), claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, model.CreateUserInput{Username: "alice", FavoriteGenre: "scifi"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, model.LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, model.ErrWrongCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), model.LoginInput{Username: "nobody", Password: "letmein"})
	assert.ErrorIs(t, err, model.ErrWrongCredentials)
}

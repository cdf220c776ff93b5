package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/repository"
	"library-backend/pkg/jwt"
)

// Service exposes user and authentication operations to the resolver layer.
type Service interface {
	// CreateUser persists a new user. Duplicate usernames surface as
	// model.ErrDuplicateUsername.
	CreateUser(ctx context.Context, input model.CreateUserInput) (*model.User, error)

	// Login checks the username exists and the password matches the shared
	// login secret, then issues a signed token embedding username and id.
	// Unknown user or wrong password both return model.ErrWrongCredentials.
	Login(ctx context.Context, input model.LoginInput) (string, error)

	// GetByID resolves a user id from a verified token to the stored user.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type userService struct {
	repo       repository.RepositoryInterface
	tokens     *jwt.Manager
	secretHash []byte
}

// NewService creates the user service. The shared login password is hashed
// once here so the plaintext is not kept around after startup.
func NewService(repo repository.RepositoryInterface, tokens *jwt.Manager, loginPassword string) (Service, error) {
	secretHash, err := bcrypt.GenerateFromPassword([]byte(loginPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash login password: %w", err)
	}

	return &userService{
		repo:       repo,
		tokens:     tokens,
		secretHash: secretHash,
	}, nil
}

func (s *userService) CreateUser(ctx context.Context, input model.CreateUserInput) (*model.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.User{
		Username:      input.Username,
		FavoriteGenre: input.FavoriteGenre,
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}

func (s *userService) Login(ctx context.Context, input model.LoginInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	u, err := s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", model.ErrWrongCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(s.secretHash, []byte(input.Password)); err != nil {
		return "", model.ErrWrongCredentials
	}

	token, err := s.tokens.Generate(u.Username, u.ID.String())
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"gameverse/backend/internal/apperr"
	"gameverse/backend/internal/models"
	"gameverse/backend/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "invalid credentials"

// dummyHash is compared against when the identifier is unknown, so a miss costs as much as a wrong password.
var dummyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("gameverse-no-such-user"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
})

// AuthService registers and authenticates users and issues their tokens.
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	cost   int
}

func NewAuthService(users UserStore, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// Register hashes the password and stores a new user.
// The returned user carries the hash; callers must never serialize it.
func (s *AuthService) Register(ctx context.Context, fullName, username, email, password string) (*models.User, error) {
	fullName = strings.TrimSpace(fullName)
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	switch {
	case fullName == "":
		return nil, apperr.Validation("full name is required")
	case username == "":
		return nil, apperr.Validation("username is required")
	case email == "":
		return nil, apperr.Validation("email is required")
	case strings.TrimSpace(password) == "":
		return nil, apperr.Validation("password is required")
	}

	taken, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("username or email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperr.Validation("password must be at most 72 bytes")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &models.User{
		FullName:     fullName,
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user matching identifier (username or email, any case) and password.
// Unknown identifiers and wrong passwords yield the same unauthorized error.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*models.User, error) {
	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return nil, apperr.Unauthorized(invalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized(invalidCredentials)
	}
	return user, nil
}

// IssueToken signs an access token for user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	token, err := s.tokens.GenerateToken(jwt.Subject{ID: user.ID, Email: user.Email, Username: user.Username})
	if err != nil {
		return "", apperr.Internal(err)
	}
	return token, nil
}

// CurrentUser resolves the subject of a verified token.
func (s *AuthService) CurrentUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.Unauthorized("user no longer exists")
	}
	return user, err
}

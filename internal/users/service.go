package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/serroba/shortlink/internal/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// RegisterInput is the data needed to open an account.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Address     string
	PhoneNumber string
}

// Session is the result of a successful login.
type Session struct {
	Token string
	User  *User
}

// Service registers and authenticates users.
type Service struct {
	users    Repository
	tokens   TokenIssuer
	hashCost int
	logger   *zap.Logger
}

// NewService creates a Service hashing passwords with the given bcrypt cost.
func NewService(users Repository, tokens TokenIssuer, hashCost int, logger *zap.Logger) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		hashCost: hashCost,
		logger:   logger,
	}
}

// Register creates a user with a hashed password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	email := normalizeEmail(in.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.New(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		PasswordHash: string(hash),
		Address:      in.Address,
		PhoneNumber:  in.PhoneNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}

		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", zap.Stringer("userId", user.ID))

	return user, nil
}

// Login checks the credentials and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, User: user}, nil
}

// Profile returns the user with the given id.
func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, fmt.Errorf("look up user: %w", err)
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

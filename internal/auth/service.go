package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fenggwsx/GeoChat/internal/config"
	"github.com/fenggwsx/GeoChat/internal/storage"
)

var (
	ErrInvalidRequest     = errors.New("invalid credentials request")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// Credentials is the register and login request body.
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Session is returned after a successful register or login.
type Session struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	UserID    string `json:"user_id"`
}

// Service registers accounts and issues tokens.
type Service struct {
	users    storage.UserStore
	cfg      config.JWTConfig
	validate *validator.Validate
	log      *slog.Logger
	now      func() time.Time
}

// NewService returns an auth service over users.
func NewService(users storage.UserStore, cfg config.JWTConfig, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		cfg:      cfg,
		validate: validator.New(),
		log:      log,
		now:      time.Now,
	}
}

// Register creates an account and signs the caller in.
func (s *Service) Register(ctx context.Context, creds Credentials) (Session, error) {
	if err := s.validate.Struct(creds); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if _, err := s.users.GetUserByUsername(ctx, creds.Username); err == nil {
		return Session{}, ErrUserExists
	} else if !errors.Is(err, storage.ErrNotFound) {
		return Session{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := HashPassword(creds.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &storage.User{
		ID:        uuid.NewString(),
		Username:  creds.Username,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return Session{}, ErrUserExists
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered", "user_id", user.ID, "username", user.Username)
	return s.issue(user)
}

// Login checks the password and issues a fresh token.
func (s *Service) Login(ctx context.Context, creds Credentials) (Session, error) {
	if creds.Username == "" || creds.Password == "" {
		return Session{}, fmt.Errorf("%w: username and password are required", ErrInvalidRequest)
	}

	user, err := s.users.GetUserByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("lookup user: %w", err)
	}
	if err := ComparePassword(user.Password, creds.Password); err != nil {
		s.log.Debug("Password mismatch", "username", creds.Username)
		return Session{}, ErrInvalidCredentials
	}
	return s.issue(user)
}

// Identity is what a verified token says about its bearer.
type Identity struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	ExpiresAt int64  `json:"expires_at"`
}

// Verify checks a token issued by this service and returns its bearer.
func (s *Service) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalidToken
	}
	claims, err := ParseToken(s.cfg, token)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	identity := Identity{UserID: claims.UserID, Username: claims.Username}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return identity, nil
}

func (s *Service) issue(user *storage.User) (Session, error) {
	token, expiresAt, err := NewToken(s.cfg, user.ID, user.Username, s.now())
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{Token: token, ExpiresAt: expiresAt.Unix(), UserID: user.ID}, nil
}

// Package auth authenticates users and resolves the caller of every request.
// A token only vouches for an auth subject; the AuthContext is always built
// from the local user record that subject belongs to.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/piolcm/piol/pkg/authz"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/pkg/domain"
	"github.com/piolcm/piol/pkg/domain/user"
	"github.com/piolcm/piol/pkg/repository"
	"github.com/piolcm/piol/pkg/utils"
)

type contextKey string

const tokenContextKey contextKey = "token"

// bcrypt hash compared against when the email is unknown, so that unknown
// and known accounts take the same time to reject.
const dummyHash = "$2a$12$C6UzMDM.H6dfI/f/IKcEe.4WQyiL6Bvw8XchWzXdQFmBp0aRXVYxO"

// Strategy authenticates credentials and reads the subject back from a request.
type Strategy interface {
	Login(ctx context.Context, email, password string) (*user.User, error)
	GenerateToken(ctx context.Context, u *user.User) (string, error)
	// GetCurrentSubject returns the auth subject carried by ctx.
	GetCurrentSubject(ctx context.Context) (string, error)
}

type Service struct {
	uow      repository.UnitOfWork
	strategy Strategy
	logger   *slog.Logger
}

func New(
	uow repository.UnitOfWork,
	strategy Strategy,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, strategy: strategy, logger: logger}
}

// NewWithJWT builds a Service issuing HS256 tokens.
func NewWithJWT(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return New(uow, NewJWTStrategy(uow, cfg, logger), logger)
}

// NewWithBasic builds a Service for the operator CLI: credentials are checked
// on every command and no token is issued.
func NewWithBasic(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return New(uow, NewBasicStrategy(uow, logger), logger)
}

// Login checks credentials and returns the user.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (u *user.User, err error) {
	log := s.logger.With("context", "Login")
	log.Debug("Login called", "email", email)
	u, err = s.strategy.Login(ctx, email, password)
	if err != nil {
		log.Error("Login failed", "email", email, "error", err)
		return nil, err
	}
	if u == nil {
		log.Error("Login failed", "email", email, "error", user.ErrUserUnauthorized)
		return nil, user.ErrUserUnauthorized
	}
	log.Info("Login successful", "userID", u.ID)
	return u, nil
}

// GenerateToken issues a token for u.
func (s *Service) GenerateToken(
	ctx context.Context,
	u *user.User,
) (string, error) {
	log := s.logger.With("userID", u.ID)
	token, err := s.strategy.GenerateToken(ctx, u)
	if err != nil {
		log.Error("GenerateToken failed", "error", err)
		return "", err
	}
	log.Debug("GenerateToken successful")
	return token, nil
}

// Resolve turns a validated token into the caller's AuthContext. A subject
// with no local user resolves to nil, an anonymous caller.
func (s *Service) Resolve(
	ctx context.Context,
	token *jwt.Token,
) (*authz.AuthContext, error) {
	log := s.logger.With("context", "Resolve")
	subject, err := s.strategy.GetCurrentSubject(context.WithValue(ctx, tokenContextKey, token))
	if err != nil {
		log.Debug("Resolve failed", "error", err)
		return nil, err
	}
	return s.ResolveSubject(ctx, subject)
}

// ResolveSubject joins an authenticated subject to its local user.
func (s *Service) ResolveSubject(ctx context.Context, subject string) (*authz.AuthContext, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	u, err := repo.GetByAuthSubject(ctx, subject)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return authz.New(u), nil
}

// JWTStrategy implements Strategy with HS256 tokens whose subject is the user's auth subject.
type JWTStrategy struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

func NewJWTStrategy(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	logger *slog.Logger,
) *JWTStrategy {
	return &JWTStrategy{uow: uow, cfg: cfg, logger: logger}
}

func (s *JWTStrategy) Login(ctx context.Context, email, password string) (*user.User, error) {
	return checkCredentials(ctx, s.uow, s.logger, email, password)
}

func (s *JWTStrategy) GenerateToken(ctx context.Context, u *user.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.AuthSubject,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.Expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("GenerateToken failed", "userID", u.ID, "error", err)
		return "", err
	}
	return signed, nil
}

func (s *JWTStrategy) GetCurrentSubject(ctx context.Context) (string, error) {
	token, ok := ctx.Value(tokenContextKey).(*jwt.Token)
	if !ok || token == nil {
		return "", user.ErrUserUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", user.ErrUserUnauthorized
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", user.ErrUserUnauthorized
	}
	return subject, nil
}

// BasicStrategy implements Strategy for the CLI: no tokens, the subject is
// whatever Login put in the context.
type BasicStrategy struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func NewBasicStrategy(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *BasicStrategy {
	return &BasicStrategy{uow: uow, logger: logger}
}

func (s *BasicStrategy) Login(ctx context.Context, email, password string) (*user.User, error) {
	return checkCredentials(ctx, s.uow, s.logger, email, password)
}

func (s *BasicStrategy) GenerateToken(ctx context.Context, u *user.User) (string, error) {
	return "", nil
}

func (s *BasicStrategy) GetCurrentSubject(ctx context.Context) (string, error) {
	return "", user.ErrUserUnauthorized
}

func checkCredentials(
	ctx context.Context,
	uow repository.UnitOfWork,
	logger *slog.Logger,
	email, password string,
) (*user.User, error) {
	repo, err := uow.UserRepository()
	if err != nil {
		return nil, err
	}
	u, err := repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if u == nil {
		_ = utils.CheckPasswordHash(password, dummyHash)
		logger.Debug("unknown email")
		return nil, user.ErrUserUnauthorized
	}
	if !utils.CheckPasswordHash(password, u.Password) {
		logger.Debug("password mismatch", "userID", u.ID)
		return nil, user.ErrUserUnauthorized
	}
	return u, nil
}

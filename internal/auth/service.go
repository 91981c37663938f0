package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/cadefab1n/cardapio-backend/pkg/auth"
	"github.com/cadefab1n/cardapio-backend/pkg/config"
	"github.com/cadefab1n/cardapio-backend/pkg/db/models"
	pkgerrors "github.com/cadefab1n/cardapio-backend/pkg/errors"
	"github.com/cadefab1n/cardapio-backend/pkg/logger"
	"github.com/cadefab1n/cardapio-backend/pkg/security"
	"github.com/google/uuid"
)

// Service exposes admin authentication.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	EnsureAdmin(ctx context.Context) error
}

// LoginResult carries the minted token and its expiry.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Email     string    `json:"email"`
}

type service struct {
	repo        *Repository
	jwtConfig   config.JWTConfig
	passwordCfg config.PasswordConfig
	adminCfg    config.AdminConfig
	logg        *logger.Logger
	now         func() time.Time
}

// ServiceParams wires the auth service dependencies.
type ServiceParams struct {
	Repo        *Repository
	JWTConfig   config.JWTConfig
	PasswordCfg config.PasswordConfig
	AdminCfg    config.AdminConfig
	Logger      *logger.Logger
	Now         func() time.Time
}

// NewService constructs an auth service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("admin repository required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:        params.Repo,
		jwtConfig:   params.JWTConfig,
		passwordCfg: params.PasswordCfg,
		adminCfg:    params.AdminCfg,
		logg:        params.Logger,
		now:         now,
	}, nil
}

// Login verifies the credentials and mints an access token. Unknown emails
// and bad passwords return the same error.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load admin")
	}
	if admin == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.now()
	token, err := pkgauth.MintAccessToken(s.jwtConfig, now, pkgauth.AccessTokenPayload{
		AdminID: admin.ID,
		Email:   admin.Email,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	if err := s.repo.TouchLogin(ctx, admin.ID, now); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "recording login time failed")
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(s.jwtConfig.Expiration()),
		Email:     admin.Email,
	}, nil
}

// EnsureAdmin creates the bootstrap admin from configuration when no account
// with that email exists yet. Missing configuration is a no-op.
func (s *service) EnsureAdmin(ctx context.Context) error {
	email := strings.ToLower(strings.TrimSpace(s.adminCfg.Email))
	if email == "" || s.adminCfg.Password == "" {
		return nil
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load admin")
	}
	if existing != nil {
		return nil
	}

	hash, err := security.HashPassword(s.adminCfg.Password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash admin password")
	}

	if _, err := s.repo.Create(ctx, &models.AdminUser{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create admin")
	}

	if s.logg != nil {
		s.logg.Info(ctx, "bootstrap admin created")
	}
	return nil
}

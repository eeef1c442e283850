package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yamdb/yamdb-server/internal/auth"
	"github.com/yamdb/yamdb-server/internal/domain"
	domainerrors "github.com/yamdb/yamdb-server/internal/errors"
	"github.com/yamdb/yamdb-server/internal/mail"
	"github.com/yamdb/yamdb-server/internal/ratelimit"
	"github.com/yamdb/yamdb-server/internal/store"
	"github.com/yamdb/yamdb-server/internal/validation"
)

// MailSettings is the envelope of confirmation mails.
type MailSettings struct {
	From    string
	Subject string
}

// AuthService handles signup, confirmation code exchange and bearer token
// authentication.
type AuthService struct {
	store     store.UserStore
	codes     *auth.CodeGenerator
	tokens    *auth.TokenService
	mailer    mail.Sender
	mail      MailSettings
	limiter   *ratelimit.KeyedRateLimiter
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store store.UserStore,
	codes *auth.CodeGenerator,
	tokens *auth.TokenService,
	mailer mail.Sender,
	mailSettings MailSettings,
	limiter *ratelimit.KeyedRateLimiter,
	validator *validation.Validator,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:     store,
		codes:     codes,
		tokens:    tokens,
		mailer:    mailer,
		mail:      mailSettings,
		limiter:   limiter,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// SignupRequest asks for a confirmation code.
type SignupRequest struct {
	Username string `json:"username" validate:"required,max=150,username,notreserved"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// TokenRequest exchanges a confirmation code for a bearer token.
type TokenRequest struct {
	Username         string `json:"username" validate:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" validate:"required,max=200"`
	ClientIP         string `json:"-"` // Extracted from request by handler
}

// CreateAdminRequest bootstraps an administrator from the command line.
type CreateAdminRequest struct {
	Username  string `json:"username" validate:"required,max=150,username,notreserved"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Superuser bool   `json:"superuser"`
}

// Signup creates the account if needed and mails a confirmation code. Repeating
// a signup with the same username and email sends a fresh code; any other
// overlap with an existing account is a field error. A failed mail fails the
// request but keeps the account.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	u, err := s.findOrCreateSignupUser(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.sendCode(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("confirmation code sent", "username", u.Username, "user_id", u.ID)
	return u, nil
}

func (s *AuthService) findOrCreateSignupUser(ctx context.Context, req SignupRequest) (*domain.User, error) {
	byName, err := s.lookup(ctx, s.store.GetUserByUsername, req.Username)
	if err != nil {
		return nil, err
	}
	byEmail, err := s.lookup(ctx, s.store.GetUserByEmail, req.Email)
	if err != nil {
		return nil, err
	}

	if byName != nil && byEmail != nil && byName.ID == byEmail.ID {
		return byName, nil
	}

	details := map[string]string{}
	if byName != nil {
		details["username"] = "a user with that username already exists"
	}
	if byEmail != nil {
		details["email"] = "a user with that email already exists"
	}
	if len(details) > 0 {
		return nil, domainerrors.ValidationWithDetails("validation failed", details)
	}

	u := &domain.User{Username: req.Username, Email: req.Email, Role: domain.RoleUser}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, userConflict(err)
	}
	return u, nil
}

func (s *AuthService) lookup(ctx context.Context, get func(context.Context, string) (*domain.User, error), key string) (*domain.User, error) {
	u, err := get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

func (s *AuthService) sendCode(ctx context.Context, u *domain.User) error {
	code, err := s.codes.Make(u)
	if err != nil {
		return fmt.Errorf("make confirmation code: %w", err)
	}

	msg := mail.Message{
		Subject: s.mail.Subject,
		Body:    "Your confirmation code: " + code,
		From:    s.mail.From,
		To:      []string{u.Email},
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Error("confirmation mail failed", "username", u.Username, "error", err)
		return domainerrors.Internal("could not send the confirmation email").WithCause(err)
	}
	return nil
}

// ExchangeToken verifies a confirmation code and returns a bearer token. A
// successful exchange confirms the user and stamps their last login, which
// invalidates the code.
func (s *AuthService) ExchangeToken(ctx context.Context, req TokenRequest) (string, error) {
	if err := s.validator.Validate(&req); err != nil {
		return "", err
	}

	// Keyed on username only; the client address is caller-controlled via proxy headers.
	if s.limiter != nil && !s.limiter.Allow(req.Username) {
		s.logger.Warn("token exchange rate limited", "username", req.Username, "ip", req.ClientIP)
		return "", domainerrors.RateLimited("too many attempts, try again later")
	}

	u, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return "", notFoundAs(err, "user not found")
	}

	if !s.codes.Check(u, req.ConfirmationCode) {
		return "", domainerrors.FieldError("confirmation_code", "invalid or expired confirmation code")
	}

	now := s.now().UTC()
	u.Confirmed = true
	u.LastLoginAt = &now
	if err := s.store.UpdateUser(ctx, u); err != nil {
		return "", fmt.Errorf("confirm user: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(u)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("token issued", "username", u.Username, "user_id", u.ID)
	return token, nil
}

// Authenticate resolves a bearer token to its user. Tokens of deleted users
// are rejected.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token").WithCause(err)
	}

	u, err := s.store.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.Unauthorized("user not found")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CreateAdmin creates a confirmed-by-code administrator and returns the code
// for their first token exchange.
func (s *AuthService) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*domain.User, string, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, "", err
	}

	u := &domain.User{
		Username:    req.Username,
		Email:       req.Email,
		Role:        domain.RoleAdmin,
		IsStaff:     true,
		IsSuperuser: req.Superuser,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, "", userConflict(err)
	}

	code, err := s.codes.Make(u)
	if err != nil {
		return nil, "", fmt.Errorf("make confirmation code: %w", err)
	}

	s.logger.Info("administrator created", "username", u.Username, "superuser", u.IsSuperuser)
	return u, code, nil
}

// PublicKey returns the hex-encoded token verification key.
func (s *AuthService) PublicKey() string {
	return s.tokens.PublicKeyHex()
}

package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/yamdb/yamdb-server/internal/api/dto"
	"github.com/yamdb/yamdb-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "signup",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/signup",
		Summary:     "Sign up",
		Description: "Creates the account if needed and emails a confirmation code",
		Tags:        []string{"Auth"},
	}, s.handleSignup)

	huma.Register(s.api, huma.Operation{
		OperationID: "obtainToken",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/token",
		Summary:     "Obtain token",
		Description: "Exchanges a confirmation code for a bearer token",
		Tags:        []string{"Auth"},
	}, s.handleToken)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPublicKey",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/public-key",
		Summary:     "Token verification key",
		Description: "Returns the public key that verifies issued tokens",
		Tags:        []string{"Auth"},
	}, s.handlePublicKey)
}

// SignupInput wraps the signup request for huma.
type SignupInput struct {
	Body dto.SignupRequest
}

// SignupOutput wraps the signup response for huma.
type SignupOutput struct {
	Body dto.SignupResponse
}

// TokenInput wraps the token request for huma.
type TokenInput struct {
	Body dto.TokenRequest

	clientIP string
}

// Resolve captures the client address, which huma does not bind as a parameter.
func (i *TokenInput) Resolve(ctx huma.Context) []error {
	i.clientIP = clientIP(ctx.RemoteAddr())
	return nil
}

// TokenOutput wraps the token response for huma.
type TokenOutput struct {
	Body dto.TokenResponse
}

// PublicKeyOutput wraps the public key response for huma.
type PublicKeyOutput struct {
	Body dto.PublicKeyResponse
}

func (s *Server) handleSignup(ctx context.Context, input *SignupInput) (*SignupOutput, error) {
	u, err := s.services.Auth.Signup(ctx, service.SignupRequest{
		Username: input.Body.Username,
		Email:    input.Body.Email,
	})
	if err != nil {
		return nil, err
	}

	return &SignupOutput{Body: dto.SignupResponse{Username: u.Username, Email: u.Email}}, nil
}

func (s *Server) handleToken(ctx context.Context, input *TokenInput) (*TokenOutput, error) {
	token, err := s.services.Auth.ExchangeToken(ctx, service.TokenRequest{
		Username:         input.Body.Username,
		ConfirmationCode: input.Body.ConfirmationCode,
		ClientIP:         input.clientIP,
	})
	if err != nil {
		return nil, err
	}

	return &TokenOutput{Body: dto.TokenResponse{Token: token}}, nil
}

func (s *Server) handlePublicKey(_ context.Context, _ *struct{}) (*PublicKeyOutput, error) {
	return &PublicKeyOutput{Body: dto.PublicKeyResponse{
		Version: "v4",
		Purpose: "public",
		Key:     s.services.Auth.PublicKey(),
	}}, nil
}

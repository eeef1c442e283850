package api

import (
	"context"
	"strings"

	"github.com/yamdb/yamdb-server/internal/domain"
	domainerrors "github.com/yamdb/yamdb-server/internal/errors"
)

// resolveActor turns the Authorization header into an actor. A missing header
// is an anonymous actor; a malformed or invalid one is rejected with 401 even on
// public routes.
func (s *Server) resolveActor(ctx context.Context, authHeader string) (domain.Actor, error) {
	if authHeader == "" {
		return domain.Anonymous(), nil
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return domain.Actor{}, domainerrors.Unauthorized("invalid authorization header format")
	}

	user, err := s.services.Auth.Authenticate(ctx, strings.TrimSpace(token))
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.AsUser(user), nil
}

var bearer = []map[string][]string{{"bearer": {}}}

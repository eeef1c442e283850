package auth

import (
	"fmt"
	"strconv"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/yamdb/yamdb-server/internal/domain"
	"github.com/yamdb/yamdb-server/internal/id"
)

const (
	tokenIssuer   = "yamdb-server"
	tokenAudience = "yamdb-api"

	claimUsername = "username"
)

// TokenService signs and verifies v4.public access tokens.
type TokenService struct {
	keys     *Keys
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenService creates a token service issuing tokens valid for lifetime.
func NewTokenService(keys *Keys, lifetime time.Duration) *TokenService {
	return &TokenService{
		keys:     keys,
		lifetime: lifetime,
		now:      time.Now,
	}
}

// GenerateAccessToken signs a token for the user.
func (s *TokenService) GenerateAccessToken(user *domain.User) (string, error) {
	now := s.now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(strconv.FormatInt(user.ID, 10))
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.lifetime))

	tokenID, err := id.Generate("tok")
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(tokenID)
	token.SetString(claimUsername, user.Username)

	return token.V4Sign(s.keys.signing, nil), nil
}

// VerifyAccessToken checks signature, issuer, audience and validity window and
// returns the claims.
func (s *TokenService) VerifyAccessToken(tokenString string) (*Claims, error) {
	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.ValidAt(s.now()))

	token, err := parser.ParseV4Public(s.keys.verifying, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	sub, err := token.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("token subject: %w", err)
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("token subject %q: %w", sub, err)
	}

	claims := &Claims{UserID: userID}
	// Optional claims; a missing one leaves the zero value.
	claims.Username, _ = token.GetString(claimUsername)
	claims.TokenID, _ = token.GetJti()
	claims.IssuedAt, _ = token.GetIssuedAt()
	claims.ExpiresAt, _ = token.GetExpiration()

	return claims, nil
}

// PublicKeyHex returns the hex-encoded key that verifies issued tokens.
func (s *TokenService) PublicKeyHex() string {
	return s.keys.PublicKeyHex()
}

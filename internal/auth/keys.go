// Package auth issues and verifies access tokens and email confirmation codes.
package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"aidanwoods.dev/go-paseto"
	"golang.org/x/crypto/hkdf"
)

const (
	// Server secret size; everything else is derived from it.
	secretLength = 32
	// Expected hex-encoded length (32 bytes = 64 hex characters).
	secretHexLength = 64

	keyFileName = "auth.key"

	signingInfo = "yamdb/token-signing/v4.public"
	codeInfo    = "yamdb/confirmation-code"
)

// LoadOrGenerateSecret loads the server secret from <dir>/auth.key, creating it
// on first start. The file holds the secret hex-encoded.
func LoadOrGenerateSecret(dir string) ([]byte, error) {
	keyPath := filepath.Join(dir, keyFileName)

	//#nosec G304 -- key path is built from the configured data directory
	if raw, err := os.ReadFile(keyPath); err == nil {
		return decodeSecret(strings.TrimSpace(string(raw)))
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read auth key: %w", err)
	}

	secret := make([]byte, secretLength)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate auth key: %w", err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create key directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(secret)), 0o600); err != nil {
		return nil, fmt.Errorf("save auth key: %w", err)
	}

	return secret, nil
}

func decodeSecret(keyHex string) ([]byte, error) {
	if len(keyHex) != secretHexLength {
		return nil, fmt.Errorf("invalid auth key length: expected %d hex chars, got %d", secretHexLength, len(keyHex))
	}
	secret, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid auth key format: not valid hex: %w", err)
	}
	return secret, nil
}

// Keys is the key material derived from the server secret: an Ed25519 pair for
// v4.public tokens and a MAC key for confirmation codes.
type Keys struct {
	signing   paseto.V4AsymmetricSecretKey
	verifying paseto.V4AsymmetricPublicKey
	codeKey   []byte
}

// DeriveKeys expands the server secret with HKDF-SHA256. The same secret always
// yields the same keys, so tokens survive restarts.
func DeriveKeys(secret []byte) (*Keys, error) {
	if len(secret) != secretLength {
		return nil, fmt.Errorf("server secret must be %d bytes, got %d", secretLength, len(secret))
	}

	seed, err := expand(secret, signingInfo, ed25519.SeedSize)
	if err != nil {
		return nil, err
	}
	signing, err := paseto.NewV4AsymmetricSecretKeyFromBytes(ed25519.NewKeyFromSeed(seed))
	if err != nil {
		return nil, fmt.Errorf("create signing key: %w", err)
	}

	codeKey, err := expand(secret, codeInfo, 32)
	if err != nil {
		return nil, err
	}

	return &Keys{
		signing:   signing,
		verifying: signing.Public(),
		codeKey:   codeKey,
	}, nil
}

func expand(secret []byte, info string, n int) ([]byte, error) {
	out := make([]byte, n)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), out); err != nil {
		return nil, fmt.Errorf("derive %s: %w", info, err)
	}
	return out, nil
}

// PublicKeyHex returns the token verification key, hex-encoded.
func (k *Keys) PublicKeyHex() string {
	return k.verifying.ExportHex()
}

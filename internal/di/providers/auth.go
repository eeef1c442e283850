package providers

import (
	"github.com/samber/do/v2"

	"github.com/yamdb/yamdb-server/internal/auth"
	"github.com/yamdb/yamdb-server/internal/config"
	"github.com/yamdb/yamdb-server/internal/logger"
)

// ProvideKeys loads or generates the server secret and derives the signing keys.
func ProvideKeys(i do.Injector) (*auth.Keys, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	secret, err := auth.LoadOrGenerateSecret(cfg.App.DataDir)
	if err != nil {
		return nil, err
	}

	keys, err := auth.DeriveKeys(secret)
	if err != nil {
		return nil, err
	}

	log.Info("Authentication keys loaded",
		"token_lifetime", cfg.Auth.TokenLifetime,
		"code_timeout", cfg.Auth.CodeTimeout,
	)

	return keys, nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	keys := do.MustInvoke[*auth.Keys](i)

	return auth.NewTokenService(keys, cfg.Auth.TokenLifetime), nil
}

// ProvideCodeGenerator provides the confirmation code generator.
func ProvideCodeGenerator(i do.Injector) (*auth.CodeGenerator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	keys := do.MustInvoke[*auth.Keys](i)

	return auth.NewCodeGenerator(keys, cfg.Auth.CodeTimeout), nil
}

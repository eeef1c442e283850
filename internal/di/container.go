// Package di provides dependency injection configuration for the yamdb server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/yamdb/yamdb-server/internal/auth"
	"github.com/yamdb/yamdb-server/internal/config"
	"github.com/yamdb/yamdb-server/internal/di/providers"
	"github.com/yamdb/yamdb-server/internal/logger"
	"github.com/yamdb/yamdb-server/internal/mail"
	"github.com/yamdb/yamdb-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
// configFile may be empty.
func NewContainer(configFile string) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, providers.ConfigFile(configFile))
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideKeys)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvideCodeGenerator)
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideMailer)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideCategoryService)
	do.Provide(injector, providers.ProvideGenreService)
	do.Provide(injector, providers.ProvideTitleService)
	do.Provide(injector, providers.ProvideReviewService)
	do.Provide(injector, providers.ProvideCommentService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
func Bootstrap(injector *do.RootScope) (*providers.HTTPServerHandle, error) {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return nil, err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*auth.Keys](injector)
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return nil, err
	}
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*mail.BreakerSender](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.UserService](injector)
	_ = do.MustInvoke[*service.TitleService](injector)

	return do.Invoke[*providers.HTTPServerHandle](injector)
}

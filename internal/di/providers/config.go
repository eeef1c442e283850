// Package providers contains dependency injection providers for the yamdb server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/yamdb/yamdb-server/internal/config"
	"github.com/yamdb/yamdb-server/internal/logger"
)

// ConfigFile is the path given with --config. Empty means defaults and
// environment only.
type ConfigFile string

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	path := do.MustInvoke[ConfigFile](i)
	return config.Load(config.WithFile(string(path)))
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Format:      cfg.Logger.Format,
		AddSource:   cfg.Logger.AddSource,
		Environment: cfg.App.Environment,
	})

	log.Info("Starting yamdb server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_dir", cfg.App.DataDir,
		"mail_backend", cfg.Mail.Backend,
	)

	return log, nil
}

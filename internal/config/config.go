// Package config loads application configuration from defaults, an optional
// YAML file and YAMDB_ environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/yamdb/yamdb-server/internal/logger"
)

const (
	envPrefix = "YAMDB_"
	// EnvConfigFile names the YAML file when --config is not given.
	EnvConfigFile = envPrefix + "CONFIG_FILE"

	// Mail backends.
	MailConsole = "console"
	MailSMTP    = "smtp"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig      `koanf:"app"`
	Logger   LoggerConfig   `koanf:"logger"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Mail     MailConfig     `koanf:"mail"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `koanf:"environment"`
	// DataDir holds the database and the auth key unless overridden.
	DataDir string `koanf:"data_dir"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level     string `koanf:"level"`
	Format    string `koanf:"format"` // json, pretty or empty for auto
	AddSource bool   `koanf:"add_source"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	CORSOrigins  []string      `koanf:"cors_origins"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds storage configuration.
type DatabaseConfig struct {
	// Path of the SQLite file. Defaults to <data_dir>/yamdb.db.
	Path string `koanf:"path"`
}

// AuthConfig holds token and confirmation code settings.
type AuthConfig struct {
	TokenLifetime time.Duration `koanf:"token_lifetime"`
	CodeTimeout   time.Duration `koanf:"code_timeout"`
	// Token exchange attempts per second and burst, per username.
	ExchangeRate  float64 `koanf:"exchange_rate"`
	ExchangeBurst int     `koanf:"exchange_burst"`
}

// MailConfig holds outbound mail configuration.
type MailConfig struct {
	Backend string        `koanf:"backend"`
	From    string        `koanf:"from"`
	Subject string        `koanf:"subject"`
	SMTP    SMTPConfig    `koanf:"smtp"`
	Breaker BreakerConfig `koanf:"breaker"`
}

// SMTPConfig holds SMTP relay settings.
type SMTPConfig struct {
	Host     string        `koanf:"host"`
	Port     int           `koanf:"port"`
	Username string        `koanf:"username"`
	Password string        `koanf:"password"`
	TLS      string        `koanf:"tls"` // mandatory, opportunistic or none
	Timeout  time.Duration `koanf:"timeout"`
}

// BreakerConfig tunes the circuit breaker in front of the mail transport.
type BreakerConfig struct {
	MaxFailures uint32        `koanf:"max_failures"`
	OpenTimeout time.Duration `koanf:"open_timeout"`
}

func defaults() map[string]any {
	return map[string]any{
		"app.environment": "development",
		"app.data_dir":    "",

		"logger.level":  "info",
		"logger.format": "",

		"server.host":          "",
		"server.port":          8080,
		"server.read_timeout":  "15s",
		"server.write_timeout": "15s",
		"server.idle_timeout":  "60s",
		"server.cors_origins":  []string{"*"},

		"auth.token_lifetime": "24h",
		"auth.code_timeout":   "72h",
		"auth.exchange_rate":  0.2,
		"auth.exchange_burst": 5,

		"mail.backend":              MailConsole,
		"mail.from":                 "from@example.com",
		"mail.subject":              "Email confirmation",
		"mail.smtp.port":            587,
		"mail.smtp.tls":             "mandatory",
		"mail.smtp.timeout":         "10s",
		"mail.breaker.max_failures": 3,
		"mail.breaker.open_timeout": "30s",
	}
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	file    string
	environ func() []string
}

// WithFile loads the given YAML file. Without it Load falls back to
// $YAMDB_CONFIG_FILE and then to defaults and environment only.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.file = path
	}
}

// WithEnviron replaces os.Environ, for tests.
func WithEnviron(fn func() []string) Option {
	return func(o *loadOptions) {
		o.environ = fn
	}
}

// Load builds the configuration with the following precedence (highest last):
// built-in defaults, the YAML file (--config or YAMDB_CONFIG_FILE), then
// environment variables with "__" separating sections:
//
//	YAMDB_SERVER__PORT=9000          -> server.port
//	YAMDB_AUTH__TOKEN_LIFETIME=1h    -> auth.token_lifetime
//	YAMDB_MAIL__SMTP__HOST=mx.local  -> mail.smtp.host
func Load(opts ...Option) (*Config, error) {
	o := &loadOptions{environ: os.Environ}
	for _, opt := range opts {
		opt(o)
	}
	if o.file == "" {
		o.file = lookup(o.environ(), EnvConfigFile)
	}

	k := koanf.New(".")
	for key, val := range defaults() {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	if o.file != "" {
		if err := k.Load(file.Provider(o.file), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", o.file, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        envPrefix,
		TransformFunc: transformEnv,
		EnvironFunc:   o.environ,
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func transformEnv(key, value string) (string, any) {
	if key == EnvConfigFile {
		return "", nil
	}
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	key = strings.ReplaceAll(key, "__", ".")

	if strings.HasSuffix(key, "_origins") {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return key, parts
	}
	return key, value
}

func lookup(environ []string, name string) string {
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k == name {
			return v
		}
	}
	return ""
}

// Validate checks that config values are present and consistent.
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	if !logger.ValidLevel(c.Logger.Level) {
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", c.Logger.Level)
	}
	switch c.Logger.Format {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("invalid log format: %q (must be json or pretty)", c.Logger.Format)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	for name, d := range map[string]time.Duration{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
		"server.idle_timeout":  c.Server.IdleTimeout,
		"auth.token_lifetime":  c.Auth.TokenLifetime,
		"auth.code_timeout":    c.Auth.CodeTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}

	if c.Auth.ExchangeRate <= 0 || c.Auth.ExchangeBurst < 1 {
		return errors.New("auth.exchange_rate must be positive and auth.exchange_burst at least 1")
	}

	if c.Database.Path == "" {
		return errors.New("database path cannot be empty after expansion")
	}

	if c.Mail.From == "" {
		return errors.New("mail.from is required")
	}
	switch c.Mail.Backend {
	case MailConsole:
	case MailSMTP:
		if c.Mail.SMTP.Host == "" {
			return errors.New("mail.smtp.host is required for the smtp backend")
		}
		switch c.Mail.SMTP.TLS {
		case "mandatory", "opportunistic", "none":
		default:
			return fmt.Errorf("invalid mail.smtp.tls: %q", c.Mail.SMTP.TLS)
		}
	default:
		return fmt.Errorf("invalid mail backend: %q (must be console or smtp)", c.Mail.Backend)
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is used as is.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

func (c *Config) expandPaths() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	dataDir, err := expandPath(c.App.DataDir, filepath.Join(homeDir, ".yamdb"))
	if err != nil {
		return fmt.Errorf("invalid data dir: %w", err)
	}
	c.App.DataDir = dataDir

	dbPath, err := expandPath(c.Database.Path, filepath.Join(dataDir, "yamdb.db"))
	if err != nil {
		return fmt.Errorf("invalid database path: %w", err)
	}
	c.Database.Path = dbPath

	return nil
}

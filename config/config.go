package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

// Access gate modes.
const (
	AccessModeSecret  = "secret"
	AccessModeSession = "session"
	AccessModeOIDC    = "oidc"
)

// Config holds all service configuration, parsed from the environment.
// Missing optional values degrade the corresponding feature instead of
// preventing startup.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	UseHTTPS  bool   `env:"USE_HTTPS"`
	StaticDir string `env:"STATIC_DIR" envDefault:"static"`

	// CooldownWindow is the minimum time between two push dispatches
	// for the same item+location pair.
	CooldownWindow time.Duration `env:"COOLDOWN_WINDOW" envDefault:"60s"`

	// FetchLimit caps how many recent events manager views read.
	FetchLimit int `env:"FETCH_LIMIT" envDefault:"200"`

	// PublicURL is the externally visible base URL; push notifications
	// link back to the checklist under it.
	PublicURL string `env:"PUBLIC_URL"`

	// SQLitePath is the local event log used when no spreadsheet is
	// configured.
	SQLitePath string `env:"SQLITE_PATH" envDefault:"shelfwatch.db"`

	Push   PushConfig
	Sheet  SheetConfig
	Access AccessConfig
}

// PushConfig identifies the external push delivery application.
type PushConfig struct {
	AppID  string `env:"PUSH_APP_ID"`
	APIKey string `env:"PUSH_API_KEY"`
}

// Configured reports whether push delivery can be used.
func (c PushConfig) Configured() bool {
	return c.AppID != "" && c.APIKey != ""
}

// SheetConfig identifies the spreadsheet event log and the service
// account used to reach it.
type SheetConfig struct {
	SpreadsheetID       string `env:"SHEET_ID"`
	SheetName           string `env:"SHEET_NAME" envDefault:"Alerts"`
	ServiceAccountEmail string `env:"GOOGLE_SA_EMAIL"`
	ServiceAccountKey   string `env:"GOOGLE_SA_PRIVATE_KEY"`
}

// Configured reports whether the spreadsheet backend can be used.
func (c SheetConfig) Configured() bool {
	return c.SpreadsheetID != "" && c.ServiceAccountEmail != "" && c.ServiceAccountKey != ""
}

// AccessConfig selects and parameterizes the manager access gate.
type AccessConfig struct {
	Mode string `env:"ACCESS_MODE" envDefault:"secret"`

	// secret mode
	ManagerKey string `env:"MANAGER_KEY"`

	// session mode
	PasswordHash  string `env:"MANAGER_PASSWORD_HASH"`
	SessionSecret string `env:"SESSION_SECRET"`

	// oidc mode
	OIDCDomain       string `env:"OIDC_DOMAIN"`
	OIDCClientID     string `env:"OIDC_CLIENT_ID"`
	OIDCClientSecret string `env:"OIDC_CLIENT_SECRET"`
	OIDCCallbackURL  string `env:"OIDC_CALLBACK_URL"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	switch cfg.Access.Mode {
	case AccessModeSecret, AccessModeSession, AccessModeOIDC:
	default:
		return nil, fmt.Errorf("unknown ACCESS_MODE %q", cfg.Access.Mode)
	}

	if cfg.FetchLimit <= 0 {
		return nil, fmt.Errorf("FETCH_LIMIT must be positive, got %d", cfg.FetchLimit)
	}

	return cfg, nil
}

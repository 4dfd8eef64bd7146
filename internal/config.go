package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Version is embedded in every archive manifest.
const Version = "1.0.0"

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Database DatabaseConfig    `yaml:"database"`
	Uploads  UploadsConfig     `yaml:"uploads"`
	Backups  BackupsConfig     `yaml:"backups"`
	Auth     AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Uploads.Validate(); err != nil {
		return err
	}
	if err := c.Backups.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns the HTTP server listen address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the database configuration.
func (c *DatabaseConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// UploadsConfig holds the uploads root and size ceiling.
type UploadsConfig struct {
	Path     string `yaml:"path"`
	MaxBytes int64  `yaml:"max_upload_bytes"`
}

// Validate validates the uploads configuration.
func (c *UploadsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.MaxBytes, validation.Required, validation.Min(int64(1))),
	)
}

// BackupsConfig controls the archive directory, retention and the daily
// trigger time ("HH:MM", local clock).
type BackupsConfig struct {
	Path      string `yaml:"path"`
	KeepCount int    `yaml:"keep_count"`
	DailyAt   string `yaml:"daily_at"`
}

// Validate validates the backups configuration.
func (c *BackupsConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.KeepCount, validation.Required, validation.Min(1)),
		validation.Field(&c.DailyAt, validation.Required),
	); err != nil {
		return err
	}
	if _, err := time.Parse("15:04", c.DailyAt); err != nil {
		return fmt.Errorf("backups: daily_at must be HH:MM, got %q", c.DailyAt)
	}
	return nil
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication, suitable for a private host.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 5000,
			},
		},
		Database: DatabaseConfig{
			Path: "./cuna.db",
		},
		Uploads: UploadsConfig{
			Path:     "./uploads",
			MaxBytes: 50 << 20,
		},
		Backups: BackupsConfig{
			Path:      "./backups",
			KeepCount: 10,
			DailyAt:   "02:00",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}

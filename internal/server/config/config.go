// Package config handles configuration for the server component: defaults,
// environment variables, command-line flags, and validation.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime settings for the httpshare server.
//
// Fields:
//   - Host / Port: bind address for the HTTP listener.
//   - Dir: the directory served over GET.
//   - UploadDir: where accepted uploads are written (created on startup;
//     relative paths are taken relative to Dir).
//   - MaxUploadBytes: hard cap on an upload body.
//   - NoTUI: run headless with structured logs instead of the monitor.
//   - RefreshInterval: monitor redraw/speed-sampling period.
//   - LogLevel: debug, info, warn or error.
//   - AuthSecret: when set, uploads require a valid HS256 bearer token.
//   - TokenValidity: lifetime of tokens minted with -mint-token.
//   - DatabaseDSN: when set, accepted uploads are recorded in Postgres.
//   - S3Endpoint / S3Bucket / S3Region / S3AccessKey / S3SecretKey: when
//     endpoint and bucket are set, accepted uploads are mirrored to object
//     storage.
type Config struct {
	Host            string        `envconfig:"SHARE_HOST" default:"127.0.0.1"`
	Port            int           `envconfig:"SHARE_PORT" default:"8080" validate:"gte=1,lte=65535"`
	Dir             string        `envconfig:"SHARE_DIR" default:"." validate:"required"`
	UploadDir       string        `envconfig:"SHARE_UPLOAD_DIR" default:"uploads"`
	MaxUploadBytes  int64         `envconfig:"SHARE_MAX_UPLOAD_BYTES" default:"1073741824" validate:"gt=0"`
	NoTUI           bool          `envconfig:"SHARE_NO_TUI"`
	RefreshInterval time.Duration `envconfig:"SHARE_REFRESH_INTERVAL" default:"500ms" validate:"gt=0"`
	LogLevel        string        `envconfig:"SHARE_LOG_LEVEL" default:"info"`

	AuthSecret    string        `envconfig:"SHARE_AUTH_SECRET"`
	TokenValidity time.Duration `envconfig:"SHARE_TOKEN_VALIDITY" default:"15m"`

	DatabaseDSN string `envconfig:"SHARE_DATABASE_DSN"`

	S3Endpoint  string `envconfig:"SHARE_S3_ENDPOINT"`
	S3Bucket    string `envconfig:"SHARE_S3_BUCKET"`
	S3Region    string `envconfig:"SHARE_S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"SHARE_S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"SHARE_S3_SECRET_KEY"`

	// MintTokenSubject is flag-only: when set the server prints a bearer
	// token for that subject and exits instead of serving.
	MintTokenSubject string `ignored:"true"`
}

// Load builds a Config from environment variables, overlays command-line
// flags, and validates the result. Flags take precedence.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	parseFlags(cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Addr returns the host:port bind address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MirrorEnabled reports whether an S3 mirror target is configured.
func (c *Config) MirrorEnabled() bool {
	return c.S3Endpoint != "" && c.S3Bucket != ""
}

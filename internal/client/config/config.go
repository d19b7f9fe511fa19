// Package config handles configuration for the uploadcheck CLI: defaults,
// environment variables, and a small command-line flag overlay.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"httpshare/internal/checksum"
)

// Config holds runtime settings for a single upload round-trip check.
//
// Fields:
//   - Host / Port: where the receiving server listens.
//   - BaseDir: directory the positional file argument is resolved against.
//   - OutputDir: directory the server writes received files into. The check
//     reads (and finally deletes) <OutputDir>/<name>.
//   - Boundary: the multipart boundary token; supplied by the calling
//     context, never generated here.
//   - TargetPath: request target of the upload endpoint.
//   - Algorithm: digest used for the before/after comparison.
//   - DialTimeout: cap on the whole connect/send/read-reply cycle.
//   - AuthToken: optional bearer token forwarded with the upload.
type Config struct {
	Host        string             `envconfig:"UPLOAD_HOST" default:"127.0.0.1"`
	Port        int                `envconfig:"UPLOAD_PORT" default:"8080"`
	BaseDir     string             `envconfig:"UPLOAD_BASE_DIR" default:"."`
	OutputDir   string             `envconfig:"UPLOAD_OUTPUT_DIR" default:"uploads"`
	Boundary    string             `envconfig:"UPLOAD_BOUNDARY" required:"true"`
	TargetPath  string             `envconfig:"UPLOAD_TARGET_PATH" default:"/upload"`
	Algorithm   checksum.Algorithm `envconfig:"UPLOAD_CHECKSUM" default:"md5"`
	DialTimeout time.Duration      `envconfig:"UPLOAD_DIAL_TIMEOUT" default:"10s"`
	AuthToken   string             `envconfig:"UPLOAD_AUTH_TOKEN"`
}

// Load builds a Config from environment variables, then overlays values from
// command-line flags. Flags take precedence.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	parseFlags(cfg)

	if !cfg.Algorithm.Valid() {
		return nil, fmt.Errorf("config: unknown checksum algorithm %q", cfg.Algorithm)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("config: port %d out of range", cfg.Port)
	}

	return cfg, nil
}

// Addr returns the host:port dial target.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

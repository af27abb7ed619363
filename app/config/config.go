// Package config loads the blog's configuration file.
//
// The file is relaxed JSON as read by rjson: keys may be unquoted and commas
// are optional at line ends. Absent fields keep their defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"firstblog/app/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/rogpeppe/rjson"
	"golang.org/x/time/rate"
)

// Response personalities. Exactly one is mounted per process.
const (
	PersonalityJSON = "json"
	PersonalityHTML = "html"
)

type Config struct {
	Addr        string `json:"addr" validate:"required"`
	Personality string `json:"personality" validate:"oneof=json html"`
	// StaticDir is served under /static/ by the HTML personality.
	StaticDir string `json:"static_dir"`
	// ViewsDir overrides the embedded templates when set.
	ViewsDir string `json:"views_dir"`
	Debug    bool   `json:"debug"`
	// Diagnostics starts a gops agent next to the server.
	Diagnostics     bool                 `json:"diagnostics"`
	ShutdownTimeout int                  `json:"shutdown_timeout_seconds" validate:"gte=0"`
	RateLimit       RateLimit            `json:"rate_limit"`
	Storage         repositories.Options `json:"storage"`
	Backup          Backup               `json:"backup"`
}

type RateLimit struct {
	// RPS is the sustained request rate; zero disables limiting.
	RPS   float64 `json:"rps" validate:"gte=0"`
	Burst int     `json:"burst" validate:"gte=0"`
}

// Limiter builds the token bucket for the configured rate, or nil when
// limiting is off.
func (r RateLimit) Limiter() *rate.Limiter {
	if r.RPS == 0 {
		return nil
	}
	burst := r.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(r.RPS), burst)
}

type Backup struct {
	Dir string `json:"dir" validate:"required"`
	// When S3Bucket is set, backups are also uploaded there.
	S3Bucket  string `json:"s3_bucket"`
	S3Region  string `json:"s3_region" validate:"required_with=S3Bucket"`
	S3Profile string `json:"s3_profile"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Addr:            ":8080",
		Personality:     PersonalityHTML,
		StaticDir:       "public",
		ShutdownTimeout: 5,
		Storage: repositories.Options{
			Driver: repositories.DriverBadger,
			Path:   "data/badger",
		},
		Backup: Backup{
			Dir: "data/backups",
		},
	}
}

// ShutdownGrace is ShutdownTimeout as a duration.
func (c *Config) ShutdownGrace() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load reads the configuration at pathname over the defaults. An empty
// pathname yields the defaults.
func Load(pathname string) (*Config, error) {
	c := Default()
	if pathname != "" {
		f, err := os.Open(pathname)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err := rjson.NewDecoder(f).Decode(c); err != nil {
			return nil, fmt.Errorf("decoding %q: %w", pathname, err)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

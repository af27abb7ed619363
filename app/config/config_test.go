package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"firstblog/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "firstblog.config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, PersonalityHTML, c.Personality)
	assert.Equal(t, repositories.DriverBadger, c.Storage.Driver)
	assert.Equal(t, 5*time.Second, c.ShutdownGrace())
	assert.Nil(t, c.RateLimit.Limiter())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `{
		addr: "127.0.0.1:9000",
		personality: "json",
		rate_limit: {rps: 10, burst: 20},
		storage: {driver: "bolt", path: "data/blog.db"},
	}`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", c.Addr)
	assert.Equal(t, PersonalityJSON, c.Personality)
	assert.Equal(t, repositories.DriverBolt, c.Storage.Driver)
	assert.Equal(t, "data/blog.db", c.Storage.Path)
	// Untouched fields keep their defaults.
	assert.Equal(t, "public", c.StaticDir)
	assert.Equal(t, "data/backups", c.Backup.Dir)

	limiter := c.RateLimit.Limiter()
	require.NotNil(t, limiter)
	assert.Equal(t, 20, limiter.Burst())
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown personality", `{personality: "xml"}`},
		{"unknown driver", `{storage: {driver: "cassandra"}}`},
		{"mongo without uri", `{storage: {driver: "mongo"}}`},
		{"postgres without dsn", `{storage: {driver: "postgres"}}`},
		{"negative rate", `{rate_limit: {rps: -1}}`},
		{"bucket without region", `{backup: {s3_bucket: "blog-backups"}}`},
		{"empty addr", `{addr: ""}`},
		{"malformed", `{addr: `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, os.IsNotExist(err))
}

func TestRateLimitMinimumBurst(t *testing.T) {
	limiter := RateLimit{RPS: 5}.Limiter()
	require.NotNil(t, limiter)
	assert.Equal(t, 1, limiter.Burst())
}

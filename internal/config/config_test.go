package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[storage]
driver = "memory"

[auth]
jwt_secret = "secret"

[booking]
shared_pool_size = 3
timezone = "Asia/Bangkok"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 3, cfg.Booking.SharedPoolSize)
	assert.True(t, cfg.Booking.SharedPool)
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Bangkok", loc.String())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[auth]
jwt_secret = "from-file"
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_PASSWORD", "pg-secret")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "pg-secret", cfg.Database.Password)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.Database.DSN(), "password=pg-secret")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)

	_, err = Load(writeConfig(t, `
[storage]
driver = "sqlite"
[auth]
jwt_secret = "x"
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(writeConfig(t, `
[booking]
lock_backend = "redis"
[auth]
jwt_secret = "x"
`))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate_ClampsPoolSize(t *testing.T) {
	cfg := Default()
	cfg.Auth.JWTSecret = "x"
	cfg.Booking.SharedPoolSize = 0

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Booking.SharedPoolSize)
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins(""))
	assert.Equal(t, []string{"*"}, splitOrigins(" * "))
	assert.Equal(t, []string{"http://x"}, splitOrigins("http://x,"))
}

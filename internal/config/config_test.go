package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("BOOKSTOCK_JWT_SECRET", secret)
	t.Setenv("BOOKSTOCK_HTTP_ADDR", ":9999")
	t.Setenv("BOOKSTOCK_INVENTORY_PICK_SEED", "7")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadHeaderTimeout)
	assert.Equal(t, 15*time.Minute, cfg.JWT.TokenTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, int64(7), cfg.Inventory.PickSeed)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	yaml := `
http:
  addr: ":7000"
  login_limit_per_min: 2
log:
  level: debug
jwt:
  secret: "` + secret + `"
  token_ttl: 1h
operators:
  bootstrap_email: admin@example.com
  bootstrap_password: password123
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bookstock.yaml"), []byte(yaml), 0o600))

	t.Setenv("BOOKSTOCK_LOG_LEVEL", "warn")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.Equal(t, 2, cfg.HTTP.LoginLimitPerMin)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, time.Hour, cfg.JWT.TokenTTL)
	assert.Equal(t, "admin@example.com", cfg.Operators.BootstrapEmail)
}

func TestLoad_RejectsShortSecret(t *testing.T) {
	t.Setenv("BOOKSTOCK_JWT_SECRET", "short")

	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestValidate_BootstrapPair(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Addr: ":1", LoginLimitPerMin: 1},
		JWT:  JWTConfig{Secret: secret, TokenTTL: time.Minute},
		Operators: OperatorsConfig{
			BootstrapEmail: "a@example.com",
		},
	}
	assert.Error(t, cfg.Validate())

	cfg.Operators.BootstrapPass = "password123"
	assert.NoError(t, cfg.Validate())
}

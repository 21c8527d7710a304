package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
api:
  environment: test
  port: "9090"
  jwt_signing_key: secret
  jwt_ttl: 30m
database:
  driver: mysql
  host: localhost
notification:
  enabled: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "test", conf.API.Environment)
	assert.Equal(t, "9090", conf.API.Port)
	assert.Equal(t, 30*time.Minute, conf.API.JWTTTL)
	assert.Equal(t, "mysql", conf.Database.Driver)
	assert.Equal(t, "disable", conf.Database.SSLMode)
	assert.True(t, conf.Notification.Enabled)
	assert.Equal(t, 4, conf.Notification.Workers)
	assert.Equal(t, 24*time.Hour, conf.Order.IdempotencyTTL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("GIFT_API_PORT", "7070")

	conf, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "7070", conf.API.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		conf    AppConfig
		wantErr error
	}{
		{
			name:    "missing signing key",
			conf:    AppConfig{API: &APIConfig{JWTTTL: time.Hour}},
			wantErr: errMissingSigningKey,
		},
		{
			name:    "non-positive ttl",
			conf:    AppConfig{API: &APIConfig{JWTSigningKey: "k"}},
			wantErr: errInvalidTokenTTL,
		},
		{
			name: "unknown driver",
			conf: AppConfig{
				API:      &APIConfig{JWTSigningKey: "k", JWTTTL: time.Hour},
				Database: &DatabaseConfig{Driver: "sqlite"},
			},
			wantErr: errUnknownDriver,
		},
		{
			name: "valid",
			conf: AppConfig{
				API:      &APIConfig{JWTSigningKey: "k", JWTTTL: time.Hour},
				Database: &DatabaseConfig{Driver: "postgres"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conf.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

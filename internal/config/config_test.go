package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
api:
  environment: production
  port: "9000"
  allowed_cors_domains:
    - https://club.example.com
  access_token_secret: access
  refresh_token_secret: refresh
  access_token_ttl: 1h
database:
  driver: sqlite
  sqlite_path: /tmp/club.db
`)

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", conf.API.Port)
	assert.Equal(t, []string{"https://club.example.com"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, time.Hour, conf.API.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, conf.API.RefreshTokenTTL)
	assert.True(t, conf.API.SecureCookies())
	assert.Equal(t, "sqlite", conf.Database.Driver)
	assert.Equal(t, "/tmp/club.db", conf.Database.SQLitePath)
	assert.Equal(t, int64(5<<20), conf.Storage.MaxUploadBytes)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
api:
  access_token_secret: access
  refresh_token_secret: refresh
`)
	t.Setenv("API_PORT", "7070")
	t.Setenv("API_ACCESS_TOKEN_SECRET", "from-env")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/club")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", conf.API.Port)
	assert.Equal(t, "from-env", conf.API.AccessTokenSecret)
	assert.Equal(t, "postgres://u:p@db:5432/club", conf.Database.URL)
	assert.False(t, conf.API.SecureCookies())
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("API_ACCESS_TOKEN_SECRET", "a")
	t.Setenv("API_REFRESH_TOKEN_SECRET", "b")

	conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, "8080", conf.API.Port)
	assert.Equal(t, 24*time.Hour, conf.API.AccessTokenTTL)
}

func TestLoad_RejectsBadSecrets(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{
			name: "missing refresh secret",
			body: "api:\n  access_token_secret: a\n",
			want: errMissingTokenSecrets,
		},
		{
			name: "identical secrets",
			body: "api:\n  access_token_secret: same\n  refresh_token_secret: same\n",
			want: errSameTokenSecrets,
		},
		{
			name: "unknown driver",
			body: "api:\n  access_token_secret: a\n  refresh_token_secret: b\ndatabase:\n  driver: mysql\n",
			want: errUnknownDriver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:4000", cfg.Server.Addr)
	require.Equal(t, "debug", cfg.Server.Mode)
	require.Equal(t, "data/authd.db", cfg.Database.Path)
	require.Equal(t, "sid", cfg.Session.Name)
	require.Equal(t, 14*24*60*60, cfg.Session.MaxAgeSeconds)
	// debug mode falls back to a development secret
	require.NotEmpty(t, cfg.Session.Secret)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AUTHD_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("AUTHD_SESSION_SECRET", "super-secret")
	t.Setenv("AUTHD_CORS_ALLOWEDORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	require.Equal(t, "super-secret", cfg.Session.Secret)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins())
}

func TestReleaseModeRequiresSecret(t *testing.T) {
	t.Setenv("AUTHD_SERVER_MODE", "release")
	t.Setenv("AUTHD_SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

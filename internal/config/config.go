package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
		Mode string
	}
	Database struct {
		Path string
	}
	Session struct {
		Secret        string
		Name          string
		MaxAgeSeconds int
		RedisAddr     string
	}
	CORS struct {
		AllowedOrigins string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("AUTHD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:4000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.path", "data/authd.db")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.name", "sid")
	v.SetDefault("session.maxageseconds", 14*24*60*60)
	v.SetDefault("session.redisaddr", "")
	v.SetDefault("cors.allowedorigins", "http://localhost:3000")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Session.Secret == "" {
		if cfg.Server.Mode == "release" {
			return Config{}, fmt.Errorf("session secret is required in release mode")
		}
		cfg.Session.Secret = "dev-session-secret"
	}

	return cfg, nil
}

// AllowedOrigins splits the comma-separated CORS origin list.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORS.AllowedOrigins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV" default:"local"`
	Port         int    `envconfig:"PORT" default:"3000"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT" default:"5432"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	Redis struct {
		Addr     string `envconfig:"REDIS_ADDR"`
		Password string `envconfig:"REDIS_PASSWORD"`
		DB       int    `envconfig:"REDIS_DB"`
		CacheTTL int    `envconfig:"CACHE_TTL" default:"3"`
	}
	Auth struct {
		AccessTokenSecret  string `envconfig:"AUTH_ACCESS_TOKEN_SECRET"`
		RefreshTokenSecret string `envconfig:"AUTH_REFRESH_TOKEN_SECRET"`
		AccessTTL          int    `envconfig:"AUTH_ACCESS_TTL" default:"300"`
		RefreshTTL         int    `envconfig:"AUTH_REFRESH_TTL" default:"86400"`
		HashRounds         int    `envconfig:"HASH_ROUNDS" default:"10"`
	}
}

// AccessTTL returns AUTH_ACCESS_TTL, given in seconds, as a duration.
func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.Auth.AccessTTL) * time.Second
}

func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.Auth.RefreshTTL) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.CacheTTL) * time.Second
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}

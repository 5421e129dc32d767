package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Secrets never live in config.toml. They come from the environment,
// optionally seeded from a .env file.
type Secrets struct {
	RedisPassword     string
	PostgresUser      string
	PostgresPassword  string
	AdminUsername     string
	AdminPasswordHash string
	SentryDSN         string
	HoneycombEnabled  bool
}

// LoadSecrets reads the secrets from the environment after loading
// dotEnvPath, if it exists. Variables already set in the environment win.
func LoadSecrets(dotEnvPath string) (Secrets, error) {
	if dotEnvPath != "" {
		if err := godotenv.Load(dotEnvPath); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Secrets{}, err
			}
			log.Debugf("no env file at %s, using the environment only", dotEnvPath)
		}
	}

	return Secrets{
		RedisPassword:     os.Getenv("KRAFT_REDIS_PASS"),
		PostgresUser:      os.Getenv("KRAFT_POSTGRES_USER"),
		PostgresPassword:  os.Getenv("KRAFT_POSTGRES_PASS"),
		AdminUsername:     os.Getenv("KRAFT_ADMIN_USERNAME"),
		AdminPasswordHash: os.Getenv("KRAFT_ADMIN_PASSWORD_HASH"),
		SentryDSN:         os.Getenv("SENTRY_DSN"),
		HoneycombEnabled:  os.Getenv("HONEYCOMB_ENABLED") == "true",
	}, nil
}

package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	envHTTPAddr    = "PROFILE_HTTP_ADDR"
	envDatabaseDSN = "PROFILE_DATABASE_DSN"
	envSecretKey   = "PROFILE_SECRET_KEY"
	envLogLevel    = "PROFILE_LOG_LEVEL"
)

// parseEnv loads dotenvPath into the environment (variables already set
// win) and overlays cfg with the PROFILE_* variables that are non-empty. A
// missing dotenv file is not an error; a malformed one panics.
func parseEnv(cfg *Config, dotenvPath string) {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	for name, dst := range map[string]*string{
		envHTTPAddr:    &cfg.HTTPAddr,
		envDatabaseDSN: &cfg.DatabaseDSN,
		envSecretKey:   &cfg.SecretKey,
		envLogLevel:    &cfg.LogLevel,
	} {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
}

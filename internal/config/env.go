package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "FINANZAS_"

var dotEnvPath = ".env"

// parseEnv overlays Config with FINANZAS_* variables from the environment
// and from the .env file. A missing .env file is not an error.
func parseEnv(cfg *Config) {
	fileVals, err := godotenv.Read(dotEnvPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok
	}

	if err := applyEnv(cfg, lookup); err != nil {
		panic(err)
	}
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}

	str("STORAGE_BACKEND", &cfg.StorageBackend)
	str("DATABASE_DSN", &cfg.DatabaseDSN)
	str("SQLITE_PATH", &cfg.SQLitePath)
	str("JWT_SECRET", &cfg.JWTSecret)
	str("AMQP_URL", &cfg.AMQPURL)
	str("AMQP_EXCHANGE", &cfg.AMQPExchange)
	str("AMQP_QUEUE", &cfg.AMQPQueue)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("TIME_ZONE", &cfg.TimeZone)

	if v, ok := lookup(envPrefix + "DEMO_MODE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sDEMO_MODE: %w", envPrefix, err)
		}
		cfg.DemoMode = b
	}
	if v, ok := lookup(envPrefix + "LOAD_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sLOAD_TIMEOUT: %w", envPrefix, err)
		}
		cfg.LoadTimeout = d
	}
	return nil
}

package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration. Each field maps to one
// environment variable; required values abort startup when absent.
type Config struct {
	Env        string // application environment (dev/test/prod)
	Port       string // HTTP port to listen on
	DBUser     string
	DBPass     string // optional, empty allowed
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string // signing secret for identity tokens; never defaulted
	BcryptCost int    // bcrypt work factor for password hashing
}

// Load reads configuration from the environment. The JWT secret and the
// database coordinates have no compiled-in defaults: the process refuses
// to start without them.
func Load() Config {
	return Config{
		Env:        envStr("APP_ENV", "dev"),
		Port:       envStr("APP_PORT", "8080"),
		DBUser:     must("DB_USER"),
		DBPass:     os.Getenv("DB_PASS"),
		DBHost:     must("DB_HOST"),
		DBPort:     must("DB_PORT"),
		DBName:     must("DB_NAME"),
		JWTSecret:  must("JWT_SECRET"),
		BcryptCost: envInt("BCRYPT_COST", 10),
	}
}

// must retrieves a required environment variable or exits the process.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes", "on":
		return true
	case "0", "false", "FALSE", "False", "no", "off":
		return false
	}
	return def
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

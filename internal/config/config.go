package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string
	JWTSecret  string

	// Client side.
	APIBaseURL string
	StateDir   string
}

// Load reads configuration from the environment, after best-effort
// loading of a local .env file.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    os.Getenv("APP_PORT"),
		AppEnv:     os.Getenv("APP_ENV"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		APIBaseURL: os.Getenv("API_BASE_URL"),
		StateDir:   os.Getenv("STATE_DIR"),
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:" + cfg.AppPort
	}

	return cfg
}

// MustLoadServer is Load plus a hard check on the database settings,
// which the API server cannot run without.
func MustLoadServer() *Config {
	cfg := Load()
	if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "" {
		log.Fatal("database environment variables not loaded properly")
	}
	return cfg
}

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadENV loads variables from .env unless GO_ENV says we run in a managed
// environment that injects them directly.
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			return err
		}
	}

	return nil
}

// Env holds every environment variable the portal reads. Secrets are only
// ever sourced from here, never from constants.
type Env struct {
	GO_ENV       string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	PORT         int
	// JWT Configuration
	JWT_SECRET string
	JWT_ISSUER string
	// Redis Configuration
	REDIS_URL string
	// Object storage (S3-compatible)
	STORAGE_ACCESS_KEY string
	STORAGE_SECRET_KEY string
	STORAGE_BUCKET     string
	STORAGE_REGION     string
	STORAGE_ENDPOINT   string
	// Bootstrap admin account for seeding
	ADMIN_EMAIL    string
	ADMIN_PASSWORD string
}

// Get reads the environment into an Env struct, applying local-dev defaults
// for host/port style values only.
func Get() (*Env, error) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	env := &Env{
		GO_ENV:       os.Getenv("GO_ENV"),
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      dbHost,
		DB_PORT:      dbPort,
		DB_SSL_MODE:  os.Getenv("DB_SSL_MODE"),
		PORT:         port,
		// JWT
		JWT_SECRET: os.Getenv("JWT_SECRET"),
		JWT_ISSUER: os.Getenv("JWT_ISSUER"),
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// Object storage
		STORAGE_ACCESS_KEY: os.Getenv("STORAGE_ACCESS_KEY"),
		STORAGE_SECRET_KEY: os.Getenv("STORAGE_SECRET_KEY"),
		STORAGE_BUCKET:     os.Getenv("STORAGE_BUCKET"),
		STORAGE_REGION:     os.Getenv("STORAGE_REGION"),
		STORAGE_ENDPOINT:   os.Getenv("STORAGE_ENDPOINT"),
		// Seeding
		ADMIN_EMAIL:    os.Getenv("ADMIN_EMAIL"),
		ADMIN_PASSWORD: os.Getenv("ADMIN_PASSWORD"),
	}

	return env, nil
}

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	CerebrasAPIKey  string
	CerebrasBaseURL string
	CerebrasModel   string

	JobProvider   string // "adzuna" or "usajobs"
	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaCountry string
	USAJobsAPIKey string
	USAJobsHost   string
	USAJobsEmail  string
}

// Load reads environment variables, optionally from a .env file if present.
// Credentials are injected into collaborator constructors at startup;
// business logic never reads the environment itself.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:     getEnv("JWT_ISSUER", "resume-analyzer"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 7*24*60),

		CerebrasAPIKey:  os.Getenv("CEREBRAS_API_KEY"),
		CerebrasBaseURL: getEnv("CEREBRAS_BASE_URL", "https://api.cerebras.ai/v1"),
		CerebrasModel:   getEnv("CEREBRAS_MODEL", "llama-4-scout-17b-16e-instruct"),

		JobProvider:   getEnv("JOB_PROVIDER", "adzuna"),
		AdzunaAppID:   os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey:  os.Getenv("ADZUNA_APP_KEY"),
		AdzunaCountry: getEnv("ADZUNA_COUNTRY", "us"),
		USAJobsAPIKey: os.Getenv("USAJOBS_API_KEY"),
		USAJobsHost:   getEnv("USAJOBS_HOST", "data.usajobs.gov"),
		USAJobsEmail:  os.Getenv("USAJOBS_EMAIL"),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

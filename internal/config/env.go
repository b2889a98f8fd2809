package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string
	// Bcrypt hash of the admin elevation password. Elevation is disabled when empty.
	AdminPasswordHash string

	CORSAllowedOrigins []string
	// Default region for phone number normalization (ISO 3166-1 alpha-2).
	PhoneRegion string
}

func LoadEnv() Env {
	env := Env{
		AppAddr:           envOr("APP_ADDR", ":8080"),
		GinMode:           strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:            envOr("DB_USER", "root"),
		DBPass:            strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost:            envOr("DB_HOST", "127.0.0.1:3306"),
		DBName:            envOr("DB_NAME", "froforforno"),
		JWTSecret:         envOr("JWT_SECRET", "froforforno-dev-secret-change-me"),
		AdminPasswordHash: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
		PhoneRegion:       envOr("PHONE_REGION", "IT"),
	}

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSAllowedOrigins = append(env.CORSAllowedOrigins, o)
			}
		}
	} else {
		env.CORSAllowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}

	return env
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

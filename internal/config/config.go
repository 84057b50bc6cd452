package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config collects every environment knob in one place so handlers receive an
// explicit object instead of reading the environment themselves.
type Config struct {
	Port           string
	JWTSecret      string
	PlantAPIURL    string
	RedisURL       string
	AllowedOrigins []string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	// DemoOTP surfaces one-time codes directly in API responses instead of
	// emailing them. Enabled automatically when SMTP is not configured;
	// explicitly a non-production affordance.
	DemoOTP bool
}

// Load reads .env (if present) and builds the Config with fallback defaults.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found — continuing with system environment variables")
	} else {
		log.Println("✅ .env file loaded")
	}

	cfg := &Config{
		Port:         getenv("PORT", "8080"),
		JWTSecret:    getenv("JWT_SECRET", "super_secret"),
		PlantAPIURL:  os.Getenv("PLANT_API_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getenvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		EmailFrom:    getenv("EMAIL_FROM", "noreply@verdant.shop"),
	}

	origins := getenv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	cfg.DemoOTP = cfg.SMTPHost == ""
	if cfg.DemoOTP {
		log.Println("⚠️  SMTP not configured — demo mode: OTP codes are returned in API responses")
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

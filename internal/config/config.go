package config

import (
	"os"
	"strconv"
	"time"
)

// Config is built once at process start and handed to every component that
// needs it. Nothing reads the environment after startup.
type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	DBHost        string
	DBPort        int
	DBUser        string
	DBPassword    string
	DBName        string
	MigrationsDir string

	JWTSecret  string
	BcryptCost int

	PaymentAPIURL        string
	PaymentSecretKey     string
	PaymentWebhookSecret string
	ClientURL            string
}

func Load() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,

		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnvInt("DB_PORT", 5432),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "storefront"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "./internal/repository/migrations"),

		JWTSecret:  getEnv("JWT_SECRET", "secret-dev"),
		BcryptCost: getEnvInt("BCRYPT_COST", 10),

		PaymentAPIURL:        getEnv("PAYMENT_API_URL", "https://api.payments.example.com"),
		PaymentSecretKey:     getEnv("PAYMENT_SECRET_KEY", ""),
		PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", ""),
		ClientURL:            getEnv("CLIENT_URL", "http://localhost:3000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

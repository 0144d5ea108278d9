package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Settings
	AppPort      string
	HOST         string
	DatabasePath string

	// JWT Settings
	JWTSecret     string
	JWTExpiration string

	// Message broker (optional, disabled when empty)
	RabbitURL      string
	RabbitExchange string

	// Redis cache (optional, disabled when empty)
	RedisAddr string

	// Seed admin credentials
	AdminEmail    string
	AdminPassword string

	// CORS Settings
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
}

func LoadConfig() *Config {
	// Load configuration from a .env file when present, otherwise rely on
	// the process environment.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	config := &Config{
		AppPort:      getEnv("PORT", "3000"),
		HOST:         getEnv("HOST", "0.0.0.0"),
		DatabasePath: getEnv("DATABASE_PATH", "borts_books.db"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiration: getEnv("JWT_EXPIRES_IN", "72h"),

		RabbitURL:      os.Getenv("RABBITMQ_URL"),
		RabbitExchange: getEnv("RABBITMQ_EXCHANGE", "inventory_exchange"),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@bortsbooks.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "changeme123"),

		CORSAllowOrigins: []string{"*"},
		CORSAllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CORSAllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}

	return config
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

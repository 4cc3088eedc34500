package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string

	// SendGridAPIKey is optional. When empty the server runs without a
	// notification provider and overdue checks report that sending was skipped.
	SendGridAPIKey string
	NotifyFrom     string
	NotifyTo       string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "gantt_user"),
		DBPassword:     getEnv("DB_PASSWORD", "gantt_pass"),
		DBName:         getEnv("DB_NAME", "gantt_db"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		NotifyFrom:     getEnv("NOTIFY_FROM", "noreply@ganttboard.local"),
		NotifyTo:       getEnv("NOTIFY_TO", "team@ganttboard.local"),
	}
}

// NotifierConfigured reports whether an email provider credential is present.
func (c *Config) NotifierConfigured() bool {
	return c.SendGridAPIKey != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

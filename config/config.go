package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBName    string
	JWTKey    string
	SaltRound int

	OCRApiURL string // Math OCR service base URL
	OCRAppID  string
	OCRAppKey string

	ParserApiURL string // Document parsing service base URL
	ParserApiKey string

	ParserPollIntervalSec int // Seconds between parse-job polls
	ParserMaxPollAttempts int // Attempts before the job is treated as timed out

	SendGridApiKey string
	EmailSender    string
	AdminEmail     string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		DBName:    getEnv("DB_NAME", "paperscan"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		OCRApiURL: getEnv("OCR_API_URL", "https://api.mathpix.com/v3"),
		OCRAppID:  getEnv("OCR_APP_ID", ""),
		OCRAppKey: getEnv("OCR_APP_KEY", ""),

		ParserApiURL: getEnv("PARSER_API_URL", "https://api.cloud.llamaindex.ai/api/parsing"),
		ParserApiKey: getEnv("PARSER_API_KEY", ""),

		ParserPollIntervalSec: getEnvInt("PARSER_POLL_INTERVAL_SEC", 2),
		ParserMaxPollAttempts: getEnvInt("PARSER_MAX_POLL_ATTEMPTS", 90),

		SendGridApiKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender:    getEnv("EMAIL_SENDER", "noreply@paperscan.io"),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.OCRAppKey == "" {
		log.Println("Warning: OCR_APP_KEY is empty. Scan conversion will fail.")
	}
	if AppConfig.ParserApiKey == "" {
		log.Println("Warning: PARSER_API_KEY is empty. Extraction will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

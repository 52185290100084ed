package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

var (
	MAIN_ROUTES   string
	APP_PORT      string
	JWTSecret     string
	JWTExpiration int

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	CookieSecure   bool
	CookieHTTPOnly bool
	CookieSameSite string

	SMTPHost     string
	SMTPPort     int
	SMTPSender   string
	SMTPPassword string
	NotifyEmails []string

	ImportFolder    string
	ProcessedFolder string

	allowedOrigins map[string]bool
)

// LoadConfig reads the .env file and initializes the configuration variables
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Server Configuration
	MAIN_ROUTES = getEnv("MAIN_ROUTES", "/api/v1")
	APP_PORT = getEnv("APP_PORT", "9000")

	// JWT Configuration
	JWTSecret = getEnv("JWT_SECRET", "shipments_manager_key_secret")
	JWTExpiration = getEnvAsInt("JWT_EXPIRATION", 86400)

	// Database Configuration
	DBDriver = getEnv("DB_DRIVER", "mysql")
	DBHost = getEnv("DB_HOST", "localhost")
	DBPort = getEnv("DB_PORT", "3306")
	DBUser = getEnv("DB_USER", "golang")
	DBPassword = getEnv("DB_PASSWORD", "password")
	DBName = getEnv("DB_NAME", "shipments_manager")

	// Cookie Configuration
	CookieSecure = getEnvAsBool("COOKIE_SECURE", true)
	CookieHTTPOnly = getEnvAsBool("COOKIE_HTTPONLY", false)
	CookieSameSite = getEnv("COOKIE_SAMESITE", "None")

	// Mail + import processor configuration
	SMTPHost = getEnv("SMTP_HOST", "")
	SMTPPort = getEnvAsInt("SMTP_PORT", 465)
	SMTPSender = getEnv("SMTP_SENDER", "")
	SMTPPassword = getEnv("SMTP_PASSWORD", "")
	NotifyEmails = getEnvAsList("NOTIFY_EMAILS")

	ImportFolder = getEnv("IMPORT_FOLDER", "./import-data/unprocessed")
	ProcessedFolder = getEnv("PROCESSED_FOLDER", "./import-data/processed")

	loadAllowedOrigins()
}

// getEnv reads an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as an integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool reads an environment variable as a boolean
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList reads a comma-separated environment variable
func getEnvAsList(key string) []string {
	var values []string
	for _, v := range strings.Split(getEnv(key, ""), ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// loadAllowedOrigins loads the allowed origins list from the environment
func loadAllowedOrigins() {
	allowedOrigins = make(map[string]bool)
	originsStr := getEnv("ALLOWED_ORIGINS", "")

	if originsStr == "" {
		allowedOrigins = map[string]bool{
			"http://127.0.0.1:3000": true,
		}
		return
	}

	origins := strings.Split(originsStr, ",")
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
}

func SetupCORS(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		if allowedOrigins[origin] {
			c.Set("Access-Control-Allow-Origin", origin)
			c.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			c.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			c.Set("Access-Control-Allow-Credentials", "true")
		}

		// Handle preflight request
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	})
}

func GetTokenCookie(token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: CookieHTTPOnly,
		SameSite: CookieSameSite,
		Path:     "/",
		Secure:   CookieSecure,
	}
}

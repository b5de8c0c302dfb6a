package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var AppEnv Config

type Config struct {
	Port           string
	Env            string
	MongoURI       string
	DBName         string
	JWTSecret      string
	AccessTokenTTL time.Duration

	RabbitMQURL     string
	EmailQueue      string
	MailSendEnabled bool
	MailgunDomain   string
	MailgunAPIKey   string
	MailgunSender   string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		logrus.Info(".env not loaded: ", err)
	}
	AppEnv = Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		Env:            getEnvOrDefault("APP_ENV", "development"),
		MongoURI:       getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getEnvOrDefault("DB_NAME", "propertypro"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 60, time.Minute),

		RabbitMQURL:     getEnvOrDefault("RABBITMQ_URL", ""),
		EmailQueue:      getEnvOrDefault("EMAIL_QUEUE", "booking_emails"),
		MailSendEnabled: getBoolEnv("MAIL_SEND_ENABLED", false),
		MailgunDomain:   getEnvOrDefault("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:   getEnvOrDefault("MAILGUN_API_KEY", ""),
		MailgunSender:   getEnvOrDefault("MAILGUN_SENDER", ""),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

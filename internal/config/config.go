package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	SeedOnStart bool

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	FlashTTL      time.Duration

	// HTTP
	AppPort         string
	GinMode         string
	CORSOrigins     []string
	ShutdownTimeout time.Duration

	// Logging
	LogLevel string
	LogFile  string
}

func Load() (*Config, error) {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	config := &Config{
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "password"),
		DBName:      getEnv("DB_NAME", "fyyur"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		SeedOnStart: getEnvBool("SEED_ON_START", false),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		FlashTTL:      parseDuration(getEnv("FLASH_TTL", "10m"), 10*time.Minute),

		AppPort:         getEnv("APP_PORT", "5000"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		ShutdownTimeout: parseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),
	}
	if _, ok := os.LookupEnv("LOG_FILE"); !ok {
		config.LogFile = "error.log"
	}

	if _, err := strconv.Atoi(config.AppPort); err != nil {
		return nil, fmt.Errorf("invalid APP_PORT %q: %w", config.AppPort, err)
	}

	switch config.GinMode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("invalid GIN_MODE %q", config.GinMode)
	}

	return config, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	valueBool, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return valueBool
}

func getEnvInt(key string, defaultValue int) int {
	valueInt, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return valueInt
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return duration
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

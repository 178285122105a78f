package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName string
	Port    string

	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string
	DBTimeZone  string
	DBLogLevel  string
	DBMaxIdle   int
	DBMaxOpen   int

	JWTSecret string
	JWTTTL    time.Duration

	CORSAllowOrigins string
	AutoMigrate      bool

	SeedAdminUsername string
	SeedAdminPassword string
	SeedAdminPIN      string
}

// Load reads .env (if any) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		AppName: getEnv("APP_NAME", "Mesin Kasir API v1.0"),
		Port:    getEnv("PORT", "3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getEnv("DB_NAME", "mesinkasir"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		DBTimeZone:  getEnv("DB_TIMEZONE", "Asia/Jakarta"),
		DBLogLevel:  getEnv("DB_LOG_LEVEL", "warn"),
		DBMaxIdle:   getInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpen:   getInt("DB_MAX_OPEN_CONNS", 100),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    time.Duration(getInt("JWT_TTL_HOURS", 24)) * time.Hour,

		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		AutoMigrate:      getBool("AUTO_MIGRATE", true),

		SeedAdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin12345"),
		SeedAdminPIN:      getEnv("SEED_ADMIN_PIN", "1234"),
	}
}

// DSN prefers DATABASE_URL and falls back to the discrete DB_* variables.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimeZone,
	)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

package config

import (
	"TeamChat/models"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/charmbracelet/log"
	"google.golang.org/api/option"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	DBTimeZone string

	JWTSecret string
	JWTTTL    time.Duration

	RedisURL          string
	WorkerConcurrency int

	FirebaseCredentialsPath string

	RequireMembership bool

	LogLevel string
	GinMode  string
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:                    getEnv("PORT", "8000"),
		DBHost:                  os.Getenv("DB_HOST"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBPort:                  getEnv("DB_PORT", "5432"),
		DBSSLMode:               os.Getenv("DB_SSLMODE"),
		DBTimeZone:              getEnv("DB_TIMEZONE", "UTC"),
		JWTSecret:               os.Getenv("JWT_SECRET"),
		RedisURL:                os.Getenv("REDIS_URL"),
		FirebaseCredentialsPath: os.Getenv("FIREBASE_CREDENTIALS_PATH"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		GinMode:                 os.Getenv("GIN_MODE"),
	}

	// Render requires TLS; local databases usually have it off.
	if cfg.DBSSLMode == "" {
		if strings.Contains(cfg.DBHost, "render.com") {
			cfg.DBSSLMode = "require"
		} else {
			cfg.DBSSLMode = "disable"
		}
	}

	ttlHours, err := getInt("JWT_TTL_HOURS", 24)
	if err != nil {
		return Config{}, err
	}
	cfg.JWTTTL = time.Duration(ttlHours) * time.Hour

	if cfg.WorkerConcurrency, err = getInt("WORKER_CONCURRENCY", 10); err != nil {
		return Config{}, err
	}

	if raw := os.Getenv("CHAT_REQUIRE_MEMBERSHIP"); raw != "" {
		if cfg.RequireMembership, err = strconv.ParseBool(raw); err != nil {
			return Config{}, fmt.Errorf("CHAT_REQUIRE_MEMBERSHIP: %w", err)
		}
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}
	return cfg, nil
}

// DSN builds the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimeZone)
}

// InitLogger configures the process-wide logger.
func InitLogger(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
		log.Warn("unknown LOG_LEVEL, using info", "value", level)
	}
	log.SetLevel(lvl)
	log.SetReportTimestamp(true)
}

func InitDatabase(cfg Config) (*gorm.DB, error) {
	log.Info("connecting to database", "host", cfg.DBHost, "user", cfg.DBUser, "dbname", cfg.DBName, "port", cfg.DBPort, "sslmode", cfg.DBSSLMode)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("successfully connected to database")
	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// InitFirebase returns nil when no credentials file is configured.
func InitFirebase(ctx context.Context, credentialsPath string) (*firebase.App, error) {
	if credentialsPath == "" {
		return nil, nil
	}
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}
	return app, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return n, nil
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Port        string
	BindAddress string

	DBDriver     string // postgres or sqlite
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSQLitePath string
	DBLogLevel   string

	RedisHost        string
	RedisPort        string
	RedisPassword    string
	CategoryCacheTTL time.Duration

	JWTSecret         string
	AdminPasswordHash string
	TokenTTL          time.Duration

	QuizSeed uint64
	SeedFile string
}

func Load() *Config {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		BindAddress:       getEnv("BIND_ADDRESS", ""),
		DBDriver:          getEnv("DB_DRIVER", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "trivia"),
		DBPassword:        getEnv("DB_PASSWORD", "trivia"),
		DBName:            getEnv("DB_NAME", "trivia"),
		DBSQLitePath:      getEnv("DB_SQLITE_PATH", "trivia.db"),
		DBLogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		RedisHost:         getEnv("REDIS_HOST", ""),
		RedisPort:         getEnv("REDIS_PORT", "6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		CategoryCacheTTL:  getDuration("CATEGORY_CACHE_TTL", 5*time.Minute),
		JWTSecret:         getEnv("JWT_SECRET", "change-me-in-production"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		TokenTTL:          getDuration("TOKEN_TTL", 12*time.Hour),
		QuizSeed:          getUint("QUIZ_SEED", 0),
		SeedFile:          getEnv("SEED_FILE", ""),
	}
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.BindAddress + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if value == "0" {
		return 0
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("config: %s=%q is not a valid duration, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getUint(key string, defaultValue uint64) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		log.Printf("config: %s=%q is not a valid unsigned integer, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// Dialector picks the gorm dialector for the configured driver.
func Dialector(cfg *Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.DBSQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(ParseLogLevel(cfg.DBLogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// InitRedis returns nil when no Redis host is configured.
func InitRedis(cfg *Config) *redis.Client {
	if cfg.RedisHost == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       0,
	})

	return client
}

package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends selectable with STORAGE.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	DBMaxConns    int32
	Storage       string
	RunMigrations bool
	Port          string
	IsProduction  bool

	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration

	LogLevel  string
	LogFormat string

	RateLimit          string
	CORSAllowedOrigins []string

	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	AggregateWorkers   int
	AggregateQueueSize int
	ShutdownTimeout    time.Duration
}

// UseAMQP reports whether aggregate tasks go through the broker.
func (c *Config) UseAMQP() bool {
	return c.AMQPURL != ""
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("STORAGE", StoragePostgres)
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "pocket-ledger")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "ledger")
	viper.SetDefault("AMQP_QUEUE", "monthly_aggregates")
	viper.SetDefault("AGGREGATE_WORKERS", 4)
	viper.SetDefault("AGGREGATE_QUEUE_SIZE", 1024)
	viper.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		DBMaxConns:         viper.GetInt32("DB_MAX_CONNS"),
		Storage:            strings.ToLower(viper.GetString("STORAGE")),
		RunMigrations:      viper.GetBool("RUN_MIGRATIONS"),
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		JWTIssuer:          viper.GetString("JWT_ISSUER"),
		LogLevel:           viper.GetString("LOG_LEVEL"),
		LogFormat:          viper.GetString("LOG_FORMAT"),
		RateLimit:          viper.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		AMQPURL:            viper.GetString("AMQP_URL"),
		AMQPExchange:       viper.GetString("AMQP_EXCHANGE"),
		AMQPQueue:          viper.GetString("AMQP_QUEUE"),
		AggregateWorkers:   viper.GetInt("AGGREGATE_WORKERS"),
		AggregateQueueSize: viper.GetInt("AGGREGATE_QUEUE_SIZE"),
	}

	switch cfg.Storage {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE=%s", StoragePostgres)
		}
	case StorageMemory:
		log.Println("Warning: STORAGE=memory, data is lost on restart.")
	default:
		return nil, fmt.Errorf("unknown STORAGE %q, use postgres or memory", cfg.Storage)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry

	shutdownStr := viper.GetString("SHUTDOWN_TIMEOUT")
	shutdown, err := time.ParseDuration(shutdownStr)
	if err != nil {
		shutdown = 10 * time.Second
		log.Printf("Warning: Invalid value for SHUTDOWN_TIMEOUT ('%s'). Defaulting to %s.\n", shutdownStr, shutdown)
	}
	cfg.ShutdownTimeout = shutdown

	if cfg.DBMaxConns <= 0 {
		cfg.DBMaxConns = 10
	}
	if cfg.AggregateWorkers <= 0 {
		log.Printf("Warning: AGGREGATE_WORKERS must be positive. Defaulting to 4.\n")
		cfg.AggregateWorkers = 4
	}
	if cfg.AggregateQueueSize <= 0 {
		cfg.AggregateQueueSize = 1024
	}

	return cfg, nil
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

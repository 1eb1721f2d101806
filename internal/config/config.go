package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file - ignore error if file doesn't exist
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Note: .env file not found or could not be loaded: %v\n", err)
	}
}

type Config struct {
	Primary       PrimaryConfig
	Database      DatabaseConfig
	Server        ServerConfig
	Redis         RedisConfig
	RateLimit     RateLimitConfig
	Render        RenderConfig
	Observability *ObservabilityConfig
}

type PrimaryConfig struct {
	Env string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	IdleTimeout        int
	CORSAllowedOrigins []string
}

type RedisConfig struct {
	Address      string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	KeyPrefix    string
}

type RateLimitConfig struct {
	Enabled  bool
	Strategy string // "sliding" or "fixed"
	Limit    int64
	Window   time.Duration
}

type RenderConfig struct {
	QRSize int
}

type ObservabilityConfig struct {
	ServiceName  string
	Environment  string
	Logging      LoggingConfig
	NewRelic     NewRelicConfig
	HealthChecks HealthChecksConfig
}

type LoggingConfig struct {
	Level              string
	Format             string
	SlowQueryThreshold time.Duration
}

type NewRelicConfig struct {
	LicenseKey                string
	AppLogForwardingEnabled   bool
	DistributedTracingEnabled bool
	DebugLogging              bool
}

type HealthChecksConfig struct {
	Enabled bool
	Timeout time.Duration
	Checks  []string
}

// Helper functions for parsing env vars
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return fallback
}

func (c *ObservabilityConfig) GetLogLevel() string {
	if c.Logging.Level == "" {
		switch c.Environment {
		case "production":
			return "info"
		case "development":
			return "debug"
		default:
			return "info"
		}
	}
	return c.Logging.Level
}

func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}

// DSN returns the postgres connection string for the database section.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User), url.QueryEscape(c.Password), c.Host, c.Port, c.Name, c.SSLMode)
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Primary: PrimaryConfig{
			Env: getEnv("PIXCODE_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("PIXCODE_DB_HOST", "localhost"),
			Port:            getEnvInt("PIXCODE_DB_PORT", 5432),
			User:            getEnv("PIXCODE_DB_USER", "pixcode"),
			Password:        getEnv("PIXCODE_DB_PASSWORD", ""),
			Name:            getEnv("PIXCODE_DB_NAME", "pixcode"),
			SSLMode:         getEnv("PIXCODE_DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("PIXCODE_DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("PIXCODE_DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getEnvInt("PIXCODE_DB_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("PIXCODE_DB_CONN_MAX_IDLE_TIME", 60),
		},
		Server: ServerConfig{
			Port:               getEnv("PIXCODE_SERVER_PORT", "8080"),
			ReadTimeout:        getEnvInt("PIXCODE_SERVER_READ_TIMEOUT", 30),
			WriteTimeout:       getEnvInt("PIXCODE_SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:        getEnvInt("PIXCODE_SERVER_IDLE_TIMEOUT", 60),
			CORSAllowedOrigins: getEnvSlice("PIXCODE_SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Redis: RedisConfig{
			Address:      getEnv("PIXCODE_REDIS_ADDRESS", "localhost:6379"),
			Password:     getEnv("PIXCODE_REDIS_PASSWORD", ""),
			DB:           getEnvInt("PIXCODE_REDIS_DB", 0),
			PoolSize:     getEnvInt("PIXCODE_REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("PIXCODE_REDIS_MIN_IDLE_CONNS", 5),
			DialTimeout:  getEnvDuration("PIXCODE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("PIXCODE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("PIXCODE_REDIS_WRITE_TIMEOUT", 3*time.Second),
			KeyPrefix:    getEnv("PIXCODE_REDIS_KEY_PREFIX", "pixcode:"),
		},
		RateLimit: RateLimitConfig{
			Enabled:  getEnvBool("PIXCODE_RATE_LIMIT_ENABLED", true),
			Strategy: getEnv("PIXCODE_RATE_LIMIT_STRATEGY", "sliding"),
			Limit:    int64(getEnvInt("PIXCODE_RATE_LIMIT", 120)),
			Window:   getEnvDuration("PIXCODE_RATE_LIMIT_WINDOW", time.Minute),
		},
		Render: RenderConfig{
			QRSize: getEnvInt("PIXCODE_QR_SIZE", 256),
		},
		Observability: &ObservabilityConfig{
			ServiceName: "pixcode",
			Environment: getEnv("PIXCODE_ENV", "development"),
			Logging: LoggingConfig{
				Level:              getEnv("PIXCODE_LOG_LEVEL", "debug"),
				Format:             getEnv("PIXCODE_LOG_FORMAT", "console"),
				SlowQueryThreshold: getEnvDuration("PIXCODE_LOG_SLOW_QUERY_THRESHOLD", 100*time.Millisecond),
			},
			NewRelic: NewRelicConfig{
				LicenseKey:                getEnv("PIXCODE_NEWRELIC_LICENSE_KEY", ""),
				AppLogForwardingEnabled:   getEnvBool("PIXCODE_NEWRELIC_LOG_FORWARDING", true),
				DistributedTracingEnabled: getEnvBool("PIXCODE_NEWRELIC_DISTRIBUTED_TRACING", true),
				DebugLogging:              getEnvBool("PIXCODE_NEWRELIC_DEBUG", false),
			},
			HealthChecks: HealthChecksConfig{
				Enabled: getEnvBool("PIXCODE_HEALTHCHECK_ENABLED", true),
				Timeout: getEnvDuration("PIXCODE_HEALTHCHECK_TIMEOUT", 5*time.Second),
				Checks:  getEnvSlice("PIXCODE_HEALTHCHECK_CHECKS", []string{"database", "redis"}),
			},
		},
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, fmt.Errorf("PIXCODE_DB_HOST is required")
	}
	if cfg.Database.Name == "" {
		return nil, fmt.Errorf("PIXCODE_DB_NAME is required")
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.Limit <= 0 || cfg.RateLimit.Window <= 0) {
		return nil, fmt.Errorf("PIXCODE_RATE_LIMIT and PIXCODE_RATE_LIMIT_WINDOW must be positive")
	}
	if s := cfg.RateLimit.Strategy; s != "sliding" && s != "fixed" {
		return nil, fmt.Errorf("PIXCODE_RATE_LIMIT_STRATEGY must be sliding or fixed, got %q", s)
	}

	return cfg, nil
}

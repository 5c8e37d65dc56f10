package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the whole application configuration, populated from the
// environment (a .env file is loaded by the entry points when present).
type Config struct {
	App       AppConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Razorpay  RazorpayConfig
	Kafka     KafkaConfig
	SMTP      SMTPConfig
	MinIO     MinIOConfig
	Queue     QueueConfig
	RateLimit RateLimitConfig
	Order     OrderConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// =====================================================
// RAZORPAY CONFIGURATION
// =====================================================

type RazorpayConfig struct {
	KeyID     string
	KeySecret string // also the HMAC key for payment signatures
	Currency  string
	Timeout   time.Duration
}

type KafkaConfig struct {
	Enabled      bool
	Brokers      []string
	OrderTopic   string
	BatchTimeout time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // empty disables SMTP auth
	Password string
	From     string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type QueueConfig struct {
	Concurrency        int
	CouponExpiryCron   string
	ShutdownTimeout    time.Duration
	HealthCheckAddress string
}

type RateLimitConfig struct {
	OTPPerMinute int
	OTPBurst     int
}

type OrderConfig struct {
	CODLimit decimal.Decimal
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry: getEnvDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		},
		Razorpay: RazorpayConfig{
			KeyID:     getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
			Currency:  getEnv("RAZORPAY_CURRENCY", "INR"),
			Timeout:   getEnvDuration("RAZORPAY_TIMEOUT", 30*time.Second),
		},
		Kafka: KafkaConfig{
			Enabled:      getEnvBool("KAFKA_ENABLED", false),
			Brokers:      getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			OrderTopic:   getEnv("KAFKA_ORDER_TOPIC", "order-events"),
			BatchTimeout: getEnvDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnvInt("SMTP_PORT", 1025),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "noreply@storefront.dev"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "storefront"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Queue: QueueConfig{
			Concurrency:        getEnvInt("WORKER_CONCURRENCY", 10),
			CouponExpiryCron:   getEnv("COUPON_EXPIRY_CRON", "0 1 * * *"),
			ShutdownTimeout:    getEnvDuration("WORKER_SHUTDOWN_TIMEOUT", 30*time.Second),
			HealthCheckAddress: getEnv("WORKER_HEALTH_ADDR", ":9999"),
		},
		RateLimit: RateLimitConfig{
			OTPPerMinute: getEnvInt("OTP_RATE_PER_MINUTE", 5),
			OTPBurst:     getEnvInt("OTP_RATE_BURST", 3),
		},
		Order: OrderConfig{
			CODLimit: getEnvDecimal("ORDER_COD_LIMIT", decimal.NewFromInt(1000)),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate fails fast on settings that must not fall back to defaults.
func (c *Config) Validate() error {
	if c.Order.CODLimit.IsNegative() {
		return fmt.Errorf("ORDER_COD_LIMIT must not be negative")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS must be set when KAFKA_ENABLED=true")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Razorpay.KeySecret == "" {
			return fmt.Errorf("RAZORPAY_KEY_SECRET must be set in production")
		}
	}

	return nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	value, err := decimal.NewFromString(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DBConfig struct {
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	MaxRetries int
}

type OSSConfig struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Prefix          string
	PresignTTL      time.Duration
}

// Config is built once per process and handed to every component that needs it.
type Config struct {
	Env            string
	HTTP           HTTPConfig
	DB             DBConfig
	RedisAddr      string
	KafkaBroker    string
	KafkaGroupID   string
	JWTSecret      string
	Location       *time.Location
	SweepSchedule  string
	OutboxInterval time.Duration
	ReportCacheTTL time.Duration
	MetricsPort    string
	OSS            OSSConfig
}

const (
	DefaultTimezone      = "Asia/Kolkata"
	DefaultSweepSchedule = "55 23 * * *"
)

// FromEnv reads the process environment. godotenv.Load is expected to have run already.
func FromEnv() (Config, error) {
	tz := getEnv("APP_TIMEZONE", DefaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("load timezone %q: %w", tz, err)
	}

	cfg := Config{
		Env: getEnv("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Port:         getEnv("PORT", "3000"),
			ReadTimeout:  getDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
		DB: DBConfig{
			Host:       getEnv("DB_HOST", "localhost"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   os.Getenv("DB_PASSWORD"),
			Name:       getEnv("DB_NAME", "homecare"),
			Port:       getEnv("DB_PORT", "5432"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			MaxRetries: getInt("DB_MAX_RETRIES", 5),
		},
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		KafkaBroker:    os.Getenv("KAFKA_BROKER"),
		KafkaGroupID:   getEnv("KAFKA_GROUP_ID", "homecare-attendance-cache"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		Location:       loc,
		SweepSchedule:  getEnv("SWEEP_SCHEDULE", DefaultSweepSchedule),
		OutboxInterval: getDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		ReportCacheTTL: getDuration("REPORT_CACHE_TTL", 10*time.Minute),
		MetricsPort:    os.Getenv("WORKER_METRICS_PORT"),
		OSS: OSSConfig{
			Endpoint:        os.Getenv("OSS_ENDPOINT"),
			AccessKeyID:     os.Getenv("OSS_ACCESS_KEY_ID"),
			AccessKeySecret: os.Getenv("OSS_ACCESS_KEY_SECRET"),
			Bucket:          os.Getenv("OSS_BUCKET_NAME"),
			Prefix:          strings.Trim(os.Getenv("OSS_PREFIX"), "/"),
			PresignTTL:      getDuration("OSS_PRESIGN_TTL", time.Hour),
		},
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Location == nil {
		return fmt.Errorf("timezone is required")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

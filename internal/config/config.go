// Package config provides runtime configuration values for the storefront.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds configuration knobs for the HTTP server, the remote product
// service client and the persistence backend.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	RemoteBaseURL string
	RemoteTimeout time.Duration

	ImageConcurrency int

	PersistenceDriver string
	PersistenceFile   string
	DatabaseURL       string
	RedisAddr         string
	RedisChannel      string

	SessionSecret string
	SessionTTL    time.Duration

	AdminUsername     string
	AdminPasswordHash string

	RateLimitRPS   float64
	RateLimitBurst int

	KafkaBrokers []string
	KafkaTopic   string

	LogLevel string
}

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":3000")
	v.SetDefault("http.shutdown_timeout", 15*time.Second)
	v.SetDefault("remote.base_url", "http://localhost:8080/api")
	v.SetDefault("remote.timeout", 10*time.Second)
	v.SetDefault("catalog.image_concurrency", 8)
	v.SetDefault("persistence.driver", DriverFile)
	v.SetDefault("persistence.file_path", "storefront_state.json")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.channel", "storefront:changes")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", 30*24*time.Hour)
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password_hash", "")
	v.SetDefault("ratelimit.rps", 10.0)
	v.SetDefault("ratelimit.burst", 20)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "storefront.notifications")
	v.SetDefault("log.level", "info")
}

// Load collects configuration from an optional config file, a .env file and
// the environment (STOREFRONT_ prefix, dots become underscores).
func Load(configFile string) (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := Config{
		HTTPAddr:          v.GetString("http.addr"),
		ShutdownTimeout:   v.GetDuration("http.shutdown_timeout"),
		RemoteBaseURL:     strings.TrimRight(v.GetString("remote.base_url"), "/"),
		RemoteTimeout:     v.GetDuration("remote.timeout"),
		ImageConcurrency:  v.GetInt("catalog.image_concurrency"),
		PersistenceDriver: strings.ToLower(v.GetString("persistence.driver")),
		PersistenceFile:   v.GetString("persistence.file_path"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisAddr:         v.GetString("redis.addr"),
		RedisChannel:      v.GetString("redis.channel"),
		SessionSecret:     v.GetString("session.secret"),
		SessionTTL:        v.GetDuration("session.ttl"),
		AdminUsername:     v.GetString("admin.username"),
		AdminPasswordHash: v.GetString("admin.password_hash"),
		RateLimitRPS:      v.GetFloat64("ratelimit.rps"),
		RateLimitBurst:    v.GetInt("ratelimit.burst"),
		KafkaBrokers:      splitList(v.GetStringSlice("kafka.brokers")),
		KafkaTopic:        v.GetString("kafka.topic"),
		LogLevel:          v.GetString("log.level"),
	}
	if url := v.GetString("database.url"); url != "" {
		cfg.DatabaseURL = url
	}

	return cfg, cfg.Validate()
}

// splitList accepts both ["a","b"] and a single "a,b" entry, which is what
// viper yields for comma separated environment variables.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	switch c.PersistenceDriver {
	case DriverMemory, DriverRedis:
	case DriverFile:
		if c.PersistenceFile == "" {
			errs = append(errs, errors.New("persistence.file_path is required for the file driver"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown persistence driver %q", c.PersistenceDriver))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("session.secret must be set"))
	}
	if c.ImageConcurrency <= 0 {
		errs = append(errs, errors.New("catalog.image_concurrency must be greater than zero"))
	}
	if c.RemoteBaseURL == "" {
		errs = append(errs, errors.New("remote.base_url must be set"))
	}
	return errors.Join(errs...)
}

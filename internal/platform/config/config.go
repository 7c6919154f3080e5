package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	strutil "givelink/pkg/platform/strings"
)

// Config captures everything the process reads from the environment. Secrets
// live only here and in the components they are handed to; nothing logs them.
type Config struct {
	Addr    string
	BaseURL string

	DatabaseURI   string
	JWTSigningKey string

	RegistryBaseURL string
	RegistryAPIKey  string
	RegistryTimeout time.Duration

	RedisURL string

	KafkaBrokers []string
	KafkaTopic   string

	RateLimitPerMinute int
}

// FromEnv builds the config so main stays lean. The three required variables
// (DATABASE_URI, JWT_SECRET_KEY, CHARITY_API_KEY) are checked together so one
// startup failure names every missing value.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:               getenv("GIVELINK_ADDR", ":8080"),
		DatabaseURI:        os.Getenv("DATABASE_URI"),
		JWTSigningKey:      os.Getenv("JWT_SECRET_KEY"),
		RegistryBaseURL:    getenv("REGISTRY_BASE_URL", "https://api.charityapi.org"),
		RegistryAPIKey:     os.Getenv("CHARITY_API_KEY"),
		RegistryTimeout:    getduration("REGISTRY_TIMEOUT", 3*time.Second),
		RedisURL:           os.Getenv("REDIS_URL"),
		KafkaTopic:         getenv("KAFKA_TOPIC", "givelink.redirects"),
		RateLimitPerMinute: 5,
	}

	cfg.BaseURL = os.Getenv("BASE_URL")
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost" + cfg.Addr
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strutil.DedupeAndTrim(strings.Split(brokers, ","))
	}

	var missing []string
	if cfg.DatabaseURI == "" {
		missing = append(missing, "DATABASE_URI")
	}
	if cfg.JWTSigningKey == "" {
		missing = append(missing, "JWT_SECRET_KEY")
	}
	if cfg.RegistryAPIKey == "" {
		missing = append(missing, "CHARITY_API_KEY")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

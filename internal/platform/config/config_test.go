package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URI", "postgres://localhost/givelink")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("CHARITY_API_KEY", "key")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "https://api.charityapi.org", cfg.RegistryBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RegistryTimeout)
	assert.Equal(t, 5, cfg.RateLimitPerMinute)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestFromEnv_NamesEveryMissingVariable(t *testing.T) {
	t.Setenv("DATABASE_URI", "")
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("CHARITY_API_KEY", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URI")
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
	assert.Contains(t, err.Error(), "CHARITY_API_KEY")
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("GIVELINK_ADDR", ":9090")
	t.Setenv("BASE_URL", "https://give.example.org")
	t.Setenv("REGISTRY_TIMEOUT", "500ms")
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, kafka-2:9092 ,kafka-1:9092")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "https://give.example.org", cfg.BaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.RegistryTimeout)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ESG_DEFAULT_BASELINE", "")
		t.Setenv("KAFKA_BROKERS", "")
		t.Setenv("REDIS_URL", "")
		t.Setenv("API_CLIENTS", "")
		t.Setenv("API_CLIENT_TOKEN_TTL", "")

		cfg := FromEnv()

		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, float64(DefaultBaseline), cfg.ESG.DefaultBaseline)
		assert.Equal(t, 7, cfg.ESG.VerificationLeadDays)
		assert.Empty(t, cfg.Kafka.Brokers)
		assert.Empty(t, cfg.Redis.URL)
		assert.Equal(t, "erp.documents", cfg.Kafka.DocumentsTopic)
		assert.Equal(t, "esg.metric-entries", cfg.Kafka.EntriesTopic)
		assert.Empty(t, cfg.Server.Clients)
		assert.Equal(t, time.Hour, cfg.Server.ClientTokenTTL)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("ESG_ADDR", ":9090")
		t.Setenv("ESG_DEFAULT_BASELINE", "7500.5")
		t.Setenv("ESG_BASELINE_CACHE_TTL", "90s")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,kafka-1:9092")

		cfg := FromEnv()

		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, 7500.5, cfg.ESG.DefaultBaseline)
		assert.Equal(t, 90*time.Second, cfg.ESG.BaselineCacheTTL)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	})

	t.Run("api clients", func(t *testing.T) {
		t.Setenv("API_CLIENTS", "erp-host=$2a$10$abc, broken, =nohash,reporting=$2a$10$def")
		t.Setenv("API_CLIENT_TOKEN_TTL", "15m")

		cfg := FromEnv()

		assert.Equal(t, map[string]string{
			"erp-host":  "$2a$10$abc",
			"reporting": "$2a$10$def",
		}, cfg.Server.Clients)
		assert.Equal(t, 15*time.Minute, cfg.Server.ClientTokenTTL)
	})

	t.Run("non-positive baseline falls back", func(t *testing.T) {
		t.Setenv("ESG_DEFAULT_BASELINE", "-1")
		assert.Equal(t, float64(DefaultBaseline), FromEnv().ESG.DefaultBaseline)
	})
}

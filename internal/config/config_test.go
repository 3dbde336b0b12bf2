package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_BACKEND", "STORAGE_KEY", "NATS_ENABLED", "ELASTICSEARCH_ENABLED", "REQUEST_TIMEOUT_SEC"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, StorageFile, cfg.Storage.Backend)
	assert.Equal(t, "bus_bookings", cfg.Storage.Key)
	assert.False(t, cfg.NATS.Enabled)
	assert.False(t, cfg.Elasticsearch.Enabled)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "Valkey")
	t.Setenv("VALKEY_DB", "3")
	t.Setenv("NATS_ENABLED", "yes")
	t.Setenv("ELASTICSEARCH_TIMEOUT", "5s")
	t.Setenv("REQUEST_TIMEOUT_SEC", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorageValkey, cfg.Storage.Backend)
	assert.Equal(t, 3, cfg.Valkey.DB)
	assert.True(t, cfg.NATS.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Elasticsearch.Timeout)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NASA_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, ":memory:", cfg.Store.Path)
	assert.Empty(t, cfg.NASA.APIKey)
	assert.Equal(t, "https://api.nasa.gov", cfg.NASA.APODBaseURL)
	assert.Equal(t, "https://images-api.nasa.gov", cfg.NASA.ImagesBaseURL)
	assert.Equal(t, 10*time.Second, cfg.NASA.Timeout)
	assert.Equal(t, APODStrategyAPI, cfg.APOD.Strategy)
	assert.Equal(t, "https://apod.nasa.gov", cfg.APOD.PageBaseURL)
	assert.Equal(t, "https://en.wikipedia.org", cfg.Wikipedia.BaseURL)
	assert.Equal(t, time.Second, cfg.Images.RetryBase)
	assert.Equal(t, 3, cfg.Images.MaxAttempts)
	assert.Equal(t, int64(1), cfg.Demo.UserID)
	assert.Equal(t, "stargazer", cfg.Demo.Password)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SKYGUIDE_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("SKYGUIDE_STORE_DRIVER", "sqlite")
	t.Setenv("SKYGUIDE_NASA_TIMEOUT", "3s")
	t.Setenv("SKYGUIDE_APOD_STRATEGY", "scrape")
	t.Setenv("SKYGUIDE_IMAGES_MAXATTEMPTS", "5")
	t.Setenv("SKYGUIDE_DEMO_USERID", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, StoreSQLite, cfg.Store.Driver)
	assert.Equal(t, 3*time.Second, cfg.NASA.Timeout)
	assert.Equal(t, APODStrategyScrape, cfg.APOD.Strategy)
	assert.Equal(t, 5, cfg.Images.MaxAttempts)
	assert.Equal(t, int64(7), cfg.Demo.UserID)
}

func TestLoadNASAKey(t *testing.T) {
	t.Run("plain variable", func(t *testing.T) {
		t.Setenv("SKYGUIDE_NASA_APIKEY", "")
		t.Setenv("NASA_API_KEY", "plain-key")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "plain-key", cfg.NASA.APIKey)
	})

	t.Run("prefixed variable wins", func(t *testing.T) {
		t.Setenv("SKYGUIDE_NASA_APIKEY", "prefixed-key")
		t.Setenv("NASA_API_KEY", "plain-key")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "prefixed-key", cfg.NASA.APIKey)
	})
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"store driver", "SKYGUIDE_STORE_DRIVER", "postgres"},
		{"apod strategy", "SKYGUIDE_APOD_STRATEGY", "rss"},
		{"max attempts", "SKYGUIDE_IMAGES_MAXATTEMPTS", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

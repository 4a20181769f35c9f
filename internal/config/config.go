package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"

	APODStrategyAPI    = "api"
	APODStrategyScrape = "scrape"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Log struct {
		Level string
	}
	Store struct {
		Driver string
		Path   string
	}
	NASA struct {
		APIKey        string
		APODBaseURL   string
		ImagesBaseURL string
		Timeout       time.Duration
	}
	APOD struct {
		Strategy    string
		PageBaseURL string
	}
	Wikipedia struct {
		BaseURL string
	}
	Images struct {
		RetryBase   time.Duration
		MaxAttempts int
	}
	Demo struct {
		UserID   int64
		Password string
	}
}

// Load reads configuration from environment variables and optional config files.
// Variables use the SKYGUIDE_ prefix with dots replaced by underscores, e.g.
// SKYGUIDE_SERVER_ADDR. The NASA key is also read from plain NASA_API_KEY.
func Load() (Config, error) {
	// A missing .env is fine; variables already set in the environment win.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("SKYGUIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("nasa.apikey", "SKYGUIDE_NASA_APIKEY", "NASA_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("bind nasa api key: %w", err)
	}

	v.SetDefault("server.addr", "0.0.0.0:5000")
	v.SetDefault("log.level", "info")
	v.SetDefault("store.driver", StoreMemory)
	v.SetDefault("store.path", ":memory:")
	v.SetDefault("nasa.apikey", "")
	v.SetDefault("nasa.apodbaseurl", "https://api.nasa.gov")
	v.SetDefault("nasa.imagesbaseurl", "https://images-api.nasa.gov")
	v.SetDefault("nasa.timeout", "10s")
	v.SetDefault("apod.strategy", APODStrategyAPI)
	v.SetDefault("apod.pagebaseurl", "https://apod.nasa.gov")
	v.SetDefault("wikipedia.baseurl", "https://en.wikipedia.org")
	v.SetDefault("images.retrybase", "1s")
	v.SetDefault("images.maxattempts", 3)
	v.SetDefault("demo.userid", 1)
	v.SetDefault("demo.password", "stargazer")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects values the server cannot start with.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("unknown store driver %q (want %s or %s)", c.Store.Driver, StoreMemory, StoreSQLite)
	}
	switch c.APOD.Strategy {
	case APODStrategyAPI, APODStrategyScrape:
	default:
		return fmt.Errorf("unknown apod strategy %q (want %s or %s)", c.APOD.Strategy, APODStrategyAPI, APODStrategyScrape)
	}
	if c.Images.MaxAttempts < 1 {
		return fmt.Errorf("images.maxattempts must be at least 1, got %d", c.Images.MaxAttempts)
	}
	if c.Demo.UserID < 1 {
		return fmt.Errorf("demo.userid must be positive, got %d", c.Demo.UserID)
	}
	return nil
}

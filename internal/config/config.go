package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     App     `mapstructure:"app"`
	MLB     MLB     `mapstructure:"mlb"`
	News    News    `mapstructure:"news"`
	Catalog Catalog `mapstructure:"catalog"`
}

// App holds general application configuration
type App struct {
	Debug   bool   `mapstructure:"debug"`
	DataDir string `mapstructure:"data_dir"`
}

// MLB holds MLB StatsAPI client configuration
type MLB struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`
}

// News holds GNews client configuration
type News struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	MaxResults int    `mapstructure:"max_results"`
	RateLimit  string `mapstructure:"rate_limit"`
	Timeout    string `mapstructure:"timeout"`
}

// Catalog holds entity catalog cache configuration.
// Cutoff is the fixed calendar date (YYYY-MM-DD) after which a cached
// catalog counts as fresh; it tracks the season trade deadline rather
// than a rolling TTL.
type Catalog struct {
	File   string `mapstructure:"file"`
	Cutoff string `mapstructure:"cutoff"`

	cutoffDate time.Time
}

// CutoffDate returns the parsed freshness cutoff.
func (c Catalog) CutoffDate() time.Time {
	return c.cutoffDate
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	// Configure viper
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".dugout")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	// Enable automatic environment variable reading
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal into struct
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := postProcessConfig(config); err != nil {
		return nil, fmt.Errorf("error post-processing config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load("")
		if err != nil {
			// Fall back to defaults-only config rather than crashing callers
			fmt.Fprintf(os.Stderr, "Warning: Failed to load config, using defaults: %v\n", err)
			cfg = defaultConfig()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// Reset clears the global configuration (used by tests).
func Reset() {
	globalConfig = nil
	viper.Reset()
}

func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.data_dir", ".dugout-data")

	viper.SetDefault("mlb.base_url", "https://statsapi.mlb.com/api/v1")
	viper.SetDefault("mlb.timeout", "30s")

	viper.SetDefault("news.base_url", "https://gnews.io/api/v4/search")
	viper.SetDefault("news.max_results", 10)
	viper.SetDefault("news.rate_limit", "1s")
	viper.SetDefault("news.timeout", "30s")

	viper.SetDefault("catalog.file", "valid_mlb_entities.json")
	viper.SetDefault("catalog.cutoff", "2024-07-30")
}

func bindEnvironmentVariables() {
	viper.SetEnvPrefix("DUGOUT")
	_ = viper.BindEnv("news.api_key", "GNEWS_API_KEY", "DUGOUT_NEWS_API_KEY")
	_ = viper.BindEnv("app.debug", "DUGOUT_DEBUG")
	_ = viper.BindEnv("app.data_dir", "DUGOUT_DATA_DIR")
	_ = viper.BindEnv("catalog.file", "DUGOUT_CATALOG_FILE")
	_ = viper.BindEnv("catalog.cutoff", "DUGOUT_CATALOG_CUTOFF")
}

func postProcessConfig(config *Config) error {
	cutoff, err := time.Parse("2006-01-02", config.Catalog.Cutoff)
	if err != nil {
		return fmt.Errorf("invalid catalog.cutoff %q: %w", config.Catalog.Cutoff, err)
	}
	config.Catalog.cutoffDate = cutoff
	return nil
}

func validateConfig(config *Config) error {
	if config.MLB.BaseURL == "" {
		return fmt.Errorf("mlb.base_url must not be empty")
	}
	if config.News.BaseURL == "" {
		return fmt.Errorf("news.base_url must not be empty")
	}
	if config.News.MaxResults < 1 {
		return fmt.Errorf("news.max_results must be at least 1")
	}
	for _, d := range []struct {
		name, value string
	}{
		{"mlb.timeout", config.MLB.Timeout},
		{"news.timeout", config.News.Timeout},
		{"news.rate_limit", config.News.RateLimit},
	} {
		if _, err := time.ParseDuration(d.value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.name, d.value, err)
		}
	}
	return nil
}

func defaultConfig() *Config {
	cutoff, _ := time.Parse("2006-01-02", "2024-07-30")
	return &Config{
		App: App{DataDir: ".dugout-data"},
		MLB: MLB{BaseURL: "https://statsapi.mlb.com/api/v1", Timeout: "30s"},
		News: News{
			BaseURL:    "https://gnews.io/api/v4/search",
			MaxResults: 10,
			RateLimit:  "1s",
			Timeout:    "30s",
		},
		Catalog: Catalog{
			File:       "valid_mlb_entities.json",
			Cutoff:     "2024-07-30",
			cutoffDate: cutoff,
		},
	}
}

// Duration parses a duration string with a fallback for bad values.
func Duration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

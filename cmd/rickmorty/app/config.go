package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/BehshadMoeini/rick-and-morty/pkg/query"
)

// Config holds the application configuration loaded from config files,
// environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	Output  string

	// Config file
	ConfigFile string

	// Catalog configuration
	BaseURL       string
	FavoritesPath string

	// Cache tuning (zero values keep the library defaults)
	Cache    query.Config
	Debounce time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.rickmorty.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.SetEnvPrefix("rickmorty")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".rickmorty")
		}
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		Output:  viper.GetString("output"),

		ConfigFile: viper.ConfigFileUsed(),

		BaseURL:       viper.GetString("base_url"),
		FavoritesPath: viper.GetString("favorites_path"),

		Cache: query.Config{
			List: query.Windows{
				Fresh: viper.GetDuration("cache.list_fresh"),
				Idle:  viper.GetDuration("cache.list_idle"),
			},
			Single: query.Windows{
				Fresh: viper.GetDuration("cache.single_fresh"),
				Idle:  viper.GetDuration("cache.single_idle"),
			},
			Batch: query.Windows{
				Fresh: viper.GetDuration("cache.batch_fresh"),
				Idle:  viper.GetDuration("cache.batch_idle"),
			},
			ListRetries:   viper.GetUint64("cache.list_retries"),
			SingleRetries: viper.GetUint64("cache.single_retries"),
			BatchRetries:  viper.GetUint64("cache.batch_retries"),
		},
		Debounce: viper.GetDuration("debounce"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags so flag values take
// precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet bool, output, baseURL string) {
	c.Verbose = verbose
	c.Quiet = quiet
	if output != "" {
		c.Output = output
	}
	if baseURL != "" {
		c.BaseURL = baseURL
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}
	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Nova NovaConfig `mapstructure:"nova"`
	Log  LogConfig  `mapstructure:"log"`
}

// NovaConfig contains Nova API configuration
type NovaConfig struct {
	APIPath   string `mapstructure:"api_path"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Output string `mapstructure:"output"` // console, file, both
}

// Load loads configuration from file and environment variables.
// If configPath is empty, it will search in default locations (./configs, .)
func Load(configPath ...string) (*Config, error) {
	viper.SetConfigType("yaml")

	setDefaults()

	viper.SetEnvPrefix("NOVA")
	viper.AutomaticEnv()

	bindEnvVars()

	if len(configPath) > 0 && configPath[0] != "" {
		viper.SetConfigFile(configPath[0])
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
	}

	// The config file is optional; env vars alone are enough.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Env vars take precedence over config file values.
	if envPath := os.Getenv("NOVA_API_PATH"); envPath != "" {
		cfg.Nova.APIPath = envPath
	}
	if envKey := os.Getenv("NOVA_API_KEY"); envKey != "" {
		cfg.Nova.APIKey = envKey
	}
	if envSecret := os.Getenv("NOVA_API_SECRET"); envSecret != "" {
		cfg.Nova.APISecret = envSecret
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("nova.api_path", "https://api.novacustody.com")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "console")
}

func bindEnvVars() {
	viper.BindEnv("nova.api_path", "NOVA_API_PATH")
	viper.BindEnv("nova.api_key", "NOVA_API_KEY")
	viper.BindEnv("nova.api_secret", "NOVA_API_SECRET")
	viper.BindEnv("log.level", "LOG_LEVEL")
	viper.BindEnv("log.output", "LOG_OUTPUT")
}

func validate(cfg *Config) error {
	if cfg.Nova.APIPath == "" {
		return fmt.Errorf("NOVA_API_PATH is required (set via environment variable or config file)")
	}
	if cfg.Nova.APIKey == "" || cfg.Nova.APIKey == "your_api_key_here" {
		return fmt.Errorf("NOVA_API_KEY is required (set via environment variable or config file)")
	}
	if cfg.Nova.APISecret == "" || cfg.Nova.APISecret == "your_api_secret_here" {
		return fmt.Errorf("NOVA_API_SECRET is required (set via environment variable or config file)")
	}
	return nil
}

package sync

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config represents the sync service configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig contains PostgreSQL database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// AccountConfig represents one account's API credentials
type AccountConfig struct {
	AccountID string `mapstructure:"account_id"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	Enabled   bool   `mapstructure:"enabled"`
}

// SyncConfig contains sync service configuration
type SyncConfig struct {
	IntervalSeconds int             `mapstructure:"interval_seconds"`
	PageSize        int             `mapstructure:"page_size"`
	Currencies      []string        `mapstructure:"currencies"`
	Accounts        []AccountConfig `mapstructure:"accounts"`
	Nova            NovaConfig      `mapstructure:"nova"`
}

// NovaConfig contains Nova API configuration shared by all accounts
type NovaConfig struct {
	APIPath string `mapstructure:"api_path"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Output string `mapstructure:"output"` // console, file, both
}

// Load loads sync service configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigType("yaml")

	setDefaults()

	viper.SetEnvPrefix("SYNC")
	viper.AutomaticEnv()

	bindEnvVars()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("sync_config")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	applyEnvVars(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "nova_ledger")
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("sync.interval_seconds", 60)
	viper.SetDefault("sync.page_size", 100)
	viper.SetDefault("sync.currencies", []string{"BTC"})
	viper.SetDefault("sync.nova.api_path", "https://api.novacustody.com")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "console")
}

func bindEnvVars() {
	viper.BindEnv("database.host", "SYNC_DB_HOST", "DB_HOST", "POSTGRES_HOST")
	viper.BindEnv("database.port", "SYNC_DB_PORT", "DB_PORT", "POSTGRES_PORT")
	viper.BindEnv("database.user", "SYNC_DB_USER", "DB_USER", "POSTGRES_USER")
	viper.BindEnv("database.password", "SYNC_DB_PASSWORD", "DB_PASSWORD", "POSTGRES_PASSWORD")
	viper.BindEnv("database.dbname", "SYNC_DB_NAME", "DB_NAME", "POSTGRES_DB")
	viper.BindEnv("database.sslmode", "SYNC_DB_SSLMODE", "DB_SSLMODE")

	viper.BindEnv("sync.interval_seconds", "SYNC_INTERVAL_SECONDS")
	viper.BindEnv("sync.page_size", "SYNC_PAGE_SIZE")
	viper.BindEnv("sync.nova.api_path", "NOVA_API_PATH")

	viper.BindEnv("log.level", "SYNC_LOG_LEVEL", "LOG_LEVEL")
	viper.BindEnv("log.output", "SYNC_LOG_OUTPUT", "LOG_OUTPUT")
}

func applyEnvVars(cfg *Config) {
	if envHost := os.Getenv("SYNC_DB_HOST"); envHost != "" {
		cfg.Database.Host = envHost
	} else if envHost := os.Getenv("DB_HOST"); envHost != "" {
		cfg.Database.Host = envHost
	}

	if envUser := os.Getenv("SYNC_DB_USER"); envUser != "" {
		cfg.Database.User = envUser
	} else if envUser := os.Getenv("DB_USER"); envUser != "" {
		cfg.Database.User = envUser
	}

	if envPassword := os.Getenv("SYNC_DB_PASSWORD"); envPassword != "" {
		cfg.Database.Password = envPassword
	} else if envPassword := os.Getenv("DB_PASSWORD"); envPassword != "" {
		cfg.Database.Password = envPassword
	}

	if envDBName := os.Getenv("SYNC_DB_NAME"); envDBName != "" {
		cfg.Database.DBName = envDBName
	} else if envDBName := os.Getenv("DB_NAME"); envDBName != "" {
		cfg.Database.DBName = envDBName
	}

	if envPath := os.Getenv("NOVA_API_PATH"); envPath != "" {
		cfg.Sync.Nova.APIPath = envPath
	}

	if envLevel := os.Getenv("SYNC_LOG_LEVEL"); envLevel != "" {
		cfg.Log.Level = envLevel
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}

	if cfg.Sync.IntervalSeconds <= 0 {
		return fmt.Errorf("sync.interval_seconds must be greater than 0")
	}
	if len(cfg.Sync.Currencies) == 0 {
		return fmt.Errorf("sync.currencies cannot be empty")
	}

	if len(cfg.Sync.Accounts) == 0 {
		// No accounts configured is OK as long as credentials come from the
		// environment for a single default account.
		if os.Getenv("NOVA_API_KEY") == "" {
			return fmt.Errorf("either sync.accounts must be configured or NOVA_API_KEY environment variable must be set")
		}
	} else {
		for i, account := range cfg.Sync.Accounts {
			if account.AccountID == "" {
				return fmt.Errorf("sync.accounts[%d].account_id is required", i)
			}
			if account.APIKey == "" {
				return fmt.Errorf("sync.accounts[%d].api_key is required", i)
			}
			if account.APISecret == "" {
				return fmt.Errorf("sync.accounts[%d].api_secret is required", i)
			}
		}
	}

	return nil
}

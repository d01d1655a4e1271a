package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Storage drivers.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"`       // current application environment (local, dev, production etc)
	TelegramAPIToken string    `mapstructure:"-"`         // Telegram API token loaded from environment
	Questions        Questions `mapstructure:"questions"` // question source section
	Storage          Storage   `mapstructure:"storage"`   // preference storage section
	DB               DB        `mapstructure:"database"`  // database configuration section
	Log              Log       `mapstructure:"log"`       // logging section
}

// Questions configures where questions are loaded from. URL wins over Path.
type Questions struct {
	URL         string        `mapstructure:"url"`
	Path        string        `mapstructure:"path"`
	LoadTimeout time.Duration `mapstructure:"load_timeout"`
}

// Storage selects the preference storage backend.
type Storage struct {
	Driver   string `mapstructure:"driver"`    // memory, file or postgres
	FilePath string `mapstructure:"file_path"` // used by the file driver
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Log configures log output.
type Log struct {
	File string `mapstructure:"file"` // optional log file, used by the terminal front end
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Options tune which values Load requires.
type Options struct {
	RequireTelegramToken bool
	DefaultStorage       string
}

// Load reads configuration from .env, config files and environment variables.
func Load(opts Options) (*Config, error) {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	defaultStorage := opts.DefaultStorage
	if defaultStorage == "" {
		defaultStorage = StoragePostgres
	}

	v.SetDefault("env", "local")
	v.SetDefault("questions.url", "")
	v.SetDefault("questions.path", "assets/questions.json")
	v.SetDefault("questions.load_timeout", "10s")
	v.SetDefault("storage.driver", defaultStorage)
	v.SetDefault("storage.file_path", ".quiz-preferences.yaml")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("log.file", "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("questions.url", "QUESTIONS_URL")
	_ = v.BindEnv("questions.path", "QUESTIONS_PATH")
	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if opts.RequireTelegramToken && cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	switch cfg.Storage.Driver {
	case StorageMemory, StorageFile:
	case StoragePostgres:
		cfg.DB.URL = v.GetString("database_url")
		if cfg.DB.URL == "" {
			return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Questions.URL == "" && cfg.Questions.Path == "" {
		return nil, errors.New("either questions.url or questions.path must be set")
	}

	return &cfg, nil
}

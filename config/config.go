package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort           = "8080"
	DefaultDatabasePath   = "campus_admin.db"
	DefaultGeminiModel    = "gemini-2.0-flash"
	DefaultRequestTimeout = 60 * time.Second
)

// Config is the application configuration
type Config struct {
	Server struct {
		Port           string        `yaml:"port"`
		UseHTTPS       bool          `yaml:"use_https"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`

	Auth struct {
		Enabled      bool   `yaml:"enabled"`
		Domain       string `yaml:"domain"`
		ClientID     string `yaml:"client_id"`
		ClientSecret string `yaml:"client_secret"`
		CallbackURL  string `yaml:"callback_url"`
	} `yaml:"auth"`

	Gemini struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`

	// FAQPath replaces the embedded campus facts when set
	FAQPath string `yaml:"faq_path"`
}

// Load reads an optional .env file, an optional YAML file at configPath and
// then the environment. Environment variables win.
func Load(configPath string) (*Config, error) {
	// Missing .env is fine; the environment may already be populated
	_ = godotenv.Load()

	cfg := &Config{}
	setDefaults(cfg)

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Server.Port = DefaultPort
	cfg.Server.RequestTimeout = DefaultRequestTimeout
	cfg.Database.Path = DefaultDatabasePath
	cfg.Logging.Level = "info"
	cfg.Gemini.Model = DefaultGeminiModel
}

func loadFromEnv(cfg *Config) error {
	cfg.Server.Port = GetEnv("PORT", cfg.Server.Port)
	cfg.Server.UseHTTPS = GetEnvAsBool("USE_HTTPS", cfg.Server.UseHTTPS)
	cfg.Database.Path = GetEnv("DATABASE_PATH", cfg.Database.Path)
	cfg.Logging.Level = GetEnv("LOG_LEVEL", cfg.Logging.Level)

	cfg.Auth.Enabled = GetEnvAsBool("AUTH_ENABLED", cfg.Auth.Enabled)
	cfg.Auth.Domain = GetEnv("OIDC_DOMAIN", cfg.Auth.Domain)
	cfg.Auth.ClientID = GetEnv("OIDC_CLIENT_ID", cfg.Auth.ClientID)
	cfg.Auth.ClientSecret = GetEnv("OIDC_CLIENT_SECRET", cfg.Auth.ClientSecret)
	cfg.Auth.CallbackURL = GetEnv("OIDC_CALLBACK_URL", cfg.Auth.CallbackURL)

	cfg.Gemini.APIKey = GetEnv("GEMINI_API_KEY", cfg.Gemini.APIKey)
	cfg.Gemini.Model = GetEnv("GEMINI_MODEL", cfg.Gemini.Model)

	cfg.FAQPath = GetEnv("FAQ_PATH", cfg.FAQPath)

	if raw := GetEnv("REQUEST_TIMEOUT", ""); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", raw, err)
		}
		cfg.Server.RequestTimeout = timeout
	}

	return nil
}

// Validate checks the values Load cannot default
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("server port is required"))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database path is required"))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if c.Auth.Enabled {
		required := []struct{ name, value string }{
			{"OIDC domain", c.Auth.Domain},
			{"OIDC client ID", c.Auth.ClientID},
			{"OIDC client secret", c.Auth.ClientSecret},
			{"OIDC callback URL", c.Auth.CallbackURL},
		}
		for _, field := range required {
			if field.value == "" {
				errs = append(errs, fmt.Errorf("%s is required when auth is enabled", field.name))
			}
		}
	}

	return errors.Join(errs...)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	switch strings.ToLower(GetEnv(key, "")) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}

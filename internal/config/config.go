package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	configFileName    = "eventdesk_config.yaml"
	defaultStaleDays  = 7
	defaultListenAddr = ":8080"
)

// Config represents the application configuration
type Config struct {
	RosterSheetID     string `yaml:"rosterSheetID" validate:"required"`
	RosterTab         string `yaml:"rosterTab" validate:"required"`
	GmailUserID       string `yaml:"gmailUserID" validate:"required"`
	GmailSender       string `yaml:"gmailSender,omitempty"`
	FollowUpRRule     string `yaml:"followUpRRule,omitempty"`
	FollowUpStaleDays int    `yaml:"followUpStaleDays,omitempty" validate:"omitempty,min=1"`
	APIListenAddr     string `yaml:"apiListenAddr,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from eventdesk_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks the follow-up
// cadence rule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.FollowUpRRule != "" {
		if _, err := rrule.StrToRRule(cfg.FollowUpRRule); err != nil {
			return fmt.Errorf("invalid followUpRRule: %w", err)
		}
	}

	return nil
}

// StaleDays returns the configured follow-up staleness window in days
func (c *Config) StaleDays() int {
	if c.FollowUpStaleDays > 0 {
		return c.FollowUpStaleDays
	}
	return defaultStaleDays
}

// ListenAddr returns the API listen address
func (c *Config) ListenAddr() string {
	if c.APIListenAddr != "" {
		return c.APIListenAddr
	}
	return defaultListenAddr
}

// DatabaseURL reads the PostgreSQL connection string from the environment,
// loading a .env file first if one exists
func DatabaseURL() (string, error) {
	// .env is optional; real environment variables win either way
	godotenv.Load()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return "", fmt.Errorf("DATABASE_URL is not set")
	}
	return url, nil
}

// findConfigFile searches for eventdesk_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}

// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg, err := config.LoadOrEnv()
//	key := cfg.Stripe.SecretKey
//	dbPath := cfg.Storage.DatabasePath
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default report window used when no dates are supplied on the command line.
const (
	DefaultStartDate = "11/01/2023"
	DefaultEndDate   = "02/29/2024"
)

// Config represents the entire application configuration
type Config struct {
	Stripe        StripeConfig        `yaml:"stripe"`
	Shipping      ShippingConfig      `yaml:"shipping"`
	Report        ReportConfig        `yaml:"report"`
	Storage       StorageConfig       `yaml:"storage"`
	Upload        UploadConfig        `yaml:"upload"`
	API           APIConfig           `yaml:"api"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// StripeConfig holds payment platform credentials
type StripeConfig struct {
	SecretKey    string `yaml:"secret_key"`
	DashboardURL string `yaml:"dashboard_url"`
}

// ShippingConfig holds the reference shipping rate ids used for labels
type ShippingConfig struct {
	EastieRateID  string `yaml:"eastie_rate_id"`
	OutsideRateID string `yaml:"outside_rate_id"`
}

// ReportConfig holds report window and output settings
type ReportConfig struct {
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
	OutputDir string `yaml:"output_dir"`
	EndOfDay  bool   `yaml:"end_of_day"`
	Timezone  string `yaml:"timezone"` // IANA name; empty = local time
}

// StorageConfig holds database configuration. An empty path disables run history.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// UploadConfig holds optional S3 upload settings. An empty bucket disables upload.
type UploadConfig struct {
	S3Bucket string `yaml:"s3_bucket"`
	S3Prefix string `yaml:"s3_prefix"`
	Region   string `yaml:"region"`
}

// APIConfig holds HTTP API settings
type APIConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${STRIPE_SECRET_KEY})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := &Config{
		Stripe: StripeConfig{
			SecretKey:    os.Getenv("STRIPE_SECRET_KEY"),
			DashboardURL: os.Getenv("STRIPE_DASHBOARD_URL"),
		},
		Shipping: ShippingConfig{
			EastieRateID:  os.Getenv("EASTIE_SHIPPING"),
			OutsideRateID: os.Getenv("OUTSIDE_SHIPPING"),
		},
		Report: ReportConfig{
			StartDate: getEnv("REPORT_START_DATE", DefaultStartDate),
			EndDate:   getEnv("REPORT_END_DATE", DefaultEndDate),
			OutputDir: getEnv("REPORT_OUTPUT_DIR", "."),
			EndOfDay:  getEnvBool("REPORT_END_OF_DAY", false),
			Timezone:  os.Getenv("REPORT_TIMEZONE"),
		},
		Storage: StorageConfig{
			DatabasePath: os.Getenv("REPORT_DB_PATH"),
		},
		Upload: UploadConfig{
			S3Bucket: os.Getenv("REPORT_S3_BUCKET"),
			S3Prefix: getEnv("REPORT_S3_PREFIX", "reports"),
			Region:   getEnv("AWS_REGION", "us-east-1"),
		},
		API: APIConfig{
			Port:           getEnvInt("API_PORT", 8080),
			AllowedOrigins: getEnvList("API_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
	return cfg
}

// LoadOrEnv loads config.yaml from the working directory, falling back to environment variables
func LoadOrEnv() (*Config, error) {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath loads path when it exists and falls back to environment
// variables when it does not. A file that exists but cannot be read or parsed
// is an error.
func LoadOrEnvWithPath(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return LoadFromEnv(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults fills values a YAML file left empty from the environment or defaults
func (c *Config) applyDefaults() {
	c.Stripe.SecretKey = c.GetAPIKey(c.Stripe.SecretKey, "STRIPE_SECRET_KEY")
	if c.Shipping.EastieRateID == "" {
		c.Shipping.EastieRateID = os.Getenv("EASTIE_SHIPPING")
	}
	if c.Shipping.OutsideRateID == "" {
		c.Shipping.OutsideRateID = os.Getenv("OUTSIDE_SHIPPING")
	}
	if c.Report.StartDate == "" && c.Report.EndDate == "" {
		c.Report.StartDate = DefaultStartDate
		c.Report.EndDate = DefaultEndDate
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "."
	}
	if c.Upload.Region == "" {
		c.Upload.Region = getEnv("AWS_REGION", "us-east-1")
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

// getEnvBool retrieves a boolean environment variable with a fallback default
func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return fallback
}

// getEnvList retrieves a comma-separated environment variable
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetAPIKey retrieves an API key from config first, then tries multiple environment variable names
// Usage: GetAPIKey(cfg.Stripe.SecretKey, "STRIPE_SECRET_KEY")
func (c *Config) GetAPIKey(configValue string, envVarNames ...string) string {
	// First, try the config value
	if configValue != "" {
		return configValue
	}

	// Then try each environment variable in order
	for _, envVar := range envVarNames {
		if val := os.Getenv(envVar); val != "" {
			return val
		}
	}

	return ""
}

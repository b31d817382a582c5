package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultUserAgent is a desktop Chrome user agent; some sites serve stripped
// markup to unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Config holds all application configuration
type Config struct {
	// Fetch configuration
	Fetch FetchConfig `mapstructure:"fetch"`

	// Storage configuration
	Storage StorageConfig `mapstructure:"storage"`

	// Keyword counter configuration
	Keywords KeywordsConfig `mapstructure:"keywords"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// FetchConfig holds page fetcher configuration
type FetchConfig struct {
	Timeout            time.Duration `mapstructure:"timeout"`
	UserAgent          string        `mapstructure:"user_agent"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
	DefaultURL         string        `mapstructure:"default_url"`
}

// StorageConfig holds the on-disk layout shared by both pipelines
type StorageConfig struct {
	URLListFile string `mapstructure:"url_list_file"`
	ReportDir   string `mapstructure:"report_dir"`
	IndexDir    string `mapstructure:"index_dir"`
	OutputDir   string `mapstructure:"output_dir"`
}

// KeywordsConfig holds keyword spreadsheet configuration
type KeywordsConfig struct {
	File      string `mapstructure:"file"`
	SheetName string `mapstructure:"sheet_name"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // "console" or "json"
	OutputPath string `mapstructure:"output_path"`
}

// Load reads configuration from file, environment and defaults, in
// increasing order of precedence: defaults, config file, ONPAGE_* env vars.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("onpage")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.onpage")
	}

	setDefaults(v)
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error, we'll use defaults and env
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("fetch.timeout", "15s")
	v.SetDefault("fetch.user_agent", DefaultUserAgent)
	v.SetDefault("fetch.insecure_skip_verify", true)
	v.SetDefault("fetch.default_url", "https://www.google.com/")

	v.SetDefault("storage.url_list_file", "urls.txt")
	v.SetDefault("storage.report_dir", "reports")
	v.SetDefault("storage.index_dir", "index")
	v.SetDefault("storage.output_dir", "outputs")

	v.SetDefault("keywords.file", "keywords.xlsx")
	v.SetDefault("keywords.sheet_name", "Reporte Coincidencias")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output_path", "stderr")
}

func bindEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("ONPAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive")
	}
	if c.Fetch.DefaultURL == "" {
		return fmt.Errorf("fetch.default_url must not be empty")
	}

	dirs := map[string]string{
		"storage.report_dir": c.Storage.ReportDir,
		"storage.index_dir":  c.Storage.IndexDir,
		"storage.output_dir": c.Storage.OutputDir,
	}
	for key, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	}

	if c.Keywords.SheetName == "" {
		return fmt.Errorf("keywords.sheet_name must not be empty")
	}

	return nil
}

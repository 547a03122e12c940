package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Key sources understood by the credential loader
const (
	KeySourceFile    = "file"
	KeySourceEnv     = "env"
	KeySourceKeyring = "keyring"
)

// Config holds all configuration options for the Pexels downloader
type Config struct {
	// Pexels API access
	Pexels PexelsConfig `yaml:"pexels" json:"pexels"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Terminal output
	UI UIConfig `yaml:"ui" json:"ui"`
}

// PexelsConfig holds API-specific configuration
type PexelsConfig struct {
	BaseURL   string        `yaml:"base_url" json:"base_url"`
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
	Referer   string        `yaml:"referer" json:"referer"`
	KeyFile   string        `yaml:"key_file" json:"key_file"`
	KeySource string        `yaml:"key_source" json:"key_source"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	BaseDirectory    string `yaml:"base_directory" json:"base_directory"`
	ArchiveDirectory string `yaml:"archive_directory" json:"archive_directory"`
	SaveMetadata     bool   `yaml:"save_metadata" json:"save_metadata"`
	MetadataFormat   string `yaml:"metadata_format" json:"metadata_format"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// UIConfig holds terminal output preferences
type UIConfig struct {
	ColorEnabled bool `yaml:"color_enabled" json:"color_enabled"`
	Quiet        bool `yaml:"quiet" json:"quiet"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Pexels: PexelsConfig{
			BaseURL:   "https://api.pexels.com/v1/",
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			Referer:   "https://www.pexels.com/",
			KeyFile:   "api.key",
			KeySource: KeySourceFile,
			Timeout:   0, // 0 means no timeout
		},
		Output: OutputConfig{
			BaseDirectory:    "", // empty means current working directory
			ArchiveDirectory: "downloads",
			SaveMetadata:     false,
			MetadataFormat:   "json",
		},
		Logging: LoggingConfig{
			Level: "warn",
			File:  "",
		},
		UI: UIConfig{
			ColorEnabled: true,
			Quiet:        false,
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if baseURL := os.Getenv("PEXELSDL_BASE_URL"); baseURL != "" {
		c.Pexels.BaseURL = baseURL
	}
	if userAgent := os.Getenv("PEXELSDL_USER_AGENT"); userAgent != "" {
		c.Pexels.UserAgent = userAgent
	}
	if keyFile := os.Getenv("PEXELSDL_KEY_FILE"); keyFile != "" {
		c.Pexels.KeyFile = keyFile
	}
	if keySource := os.Getenv("PEXELSDL_KEY_SOURCE"); keySource != "" {
		c.Pexels.KeySource = strings.ToLower(keySource)
	}
	if timeout := os.Getenv("PEXELSDL_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid PEXELSDL_TIMEOUT: %w", err)
		}
		c.Pexels.Timeout = d
	}

	if archiveDir := os.Getenv("PEXELSDL_ARCHIVE_DIR"); archiveDir != "" {
		c.Output.ArchiveDirectory = archiveDir
	}
	if saveMetadata := os.Getenv("PEXELSDL_SAVE_METADATA"); saveMetadata != "" {
		v, err := strconv.ParseBool(saveMetadata)
		if err != nil {
			return fmt.Errorf("invalid PEXELSDL_SAVE_METADATA: %w", err)
		}
		c.Output.SaveMetadata = v
	}

	if logLevel := os.Getenv("PEXELSDL_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv("PEXELSDL_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	// NO_COLOR is honoured as a convention shared with other terminal tools
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.UI.ColorEnabled = false
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".pexelsdl.yaml",
		".pexelsdl.yml",
		filepath.Join(home, ".config", "pexelsdl", "config.yaml"),
		filepath.Join(home, ".config", "pexelsdl", "config.yml"),
		filepath.Join(home, ".pexelsdl.yaml"),
		filepath.Join(home, ".pexelsdl.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Pexels.BaseURL == "" {
		errs = append(errs, errors.New("pexels base URL is required"))
	}
	if c.Pexels.UserAgent == "" {
		errs = append(errs, errors.New("user agent is required"))
	}
	if c.Pexels.Timeout < 0 {
		errs = append(errs, errors.New("timeout cannot be negative"))
	}

	validSources := map[string]bool{
		KeySourceFile: true, KeySourceEnv: true, KeySourceKeyring: true,
	}
	if !validSources[c.Pexels.KeySource] {
		errs = append(errs, fmt.Errorf("invalid key source %q", c.Pexels.KeySource))
	}
	if c.Pexels.KeySource == KeySourceFile && c.Pexels.KeyFile == "" {
		errs = append(errs, errors.New("key file is required when key source is file"))
	}

	if c.Output.ArchiveDirectory == "" {
		errs = append(errs, errors.New("archive directory is required"))
	}
	validFormats := map[string]bool{"json": true, "yaml": true}
	if !validFormats[strings.ToLower(c.Output.MetadataFormat)] {
		errs = append(errs, errors.New("metadata format must be json or yaml"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Only keys present in the map are applied.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if keyFile, ok := flags["key-file"].(string); ok && keyFile != "" {
		c.Pexels.KeyFile = keyFile
	}
	if keySource, ok := flags["key-source"].(string); ok && keySource != "" {
		c.Pexels.KeySource = strings.ToLower(keySource)
	}
	if archiveDir, ok := flags["archive-dir"].(string); ok && archiveDir != "" {
		c.Output.ArchiveDirectory = archiveDir
	}
	if saveMetadata, ok := flags["metadata"].(bool); ok {
		c.Output.SaveMetadata = saveMetadata
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if noColor, ok := flags["no-color"].(bool); ok && noColor {
		c.UI.ColorEnabled = false
	}
	if quiet, ok := flags["quiet"].(bool); ok && quiet {
		c.UI.Quiet = true
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// .env files are optional
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".pexelsdl.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://api.pexels.com/v1/", cfg.Pexels.BaseURL)
	assert.Contains(t, cfg.Pexels.UserAgent, "Mozilla/5.0")
	assert.Equal(t, "https://www.pexels.com/", cfg.Pexels.Referer)
	assert.Equal(t, "api.key", cfg.Pexels.KeyFile)
	assert.Equal(t, KeySourceFile, cfg.Pexels.KeySource)
	assert.Equal(t, time.Duration(0), cfg.Pexels.Timeout)

	assert.Empty(t, cfg.Output.BaseDirectory)
	assert.Equal(t, "downloads", cfg.Output.ArchiveDirectory)
	assert.False(t, cfg.Output.SaveMetadata)
	assert.Equal(t, "json", cfg.Output.MetadataFormat)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.UI.ColorEnabled)

	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PEXELSDL_BASE_URL", "http://localhost:9999/v1/")
	t.Setenv("PEXELSDL_KEY_FILE", "/tmp/other.key")
	t.Setenv("PEXELSDL_KEY_SOURCE", "ENV")
	t.Setenv("PEXELSDL_TIMEOUT", "45s")
	t.Setenv("PEXELSDL_ARCHIVE_DIR", "/tmp/archives")
	t.Setenv("PEXELSDL_SAVE_METADATA", "true")
	t.Setenv("PEXELSDL_LOG_LEVEL", "debug")
	t.Setenv("NO_COLOR", "1")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "http://localhost:9999/v1/", cfg.Pexels.BaseURL)
	assert.Equal(t, "/tmp/other.key", cfg.Pexels.KeyFile)
	assert.Equal(t, KeySourceEnv, cfg.Pexels.KeySource)
	assert.Equal(t, 45*time.Second, cfg.Pexels.Timeout)
	assert.Equal(t, "/tmp/archives", cfg.Output.ArchiveDirectory)
	assert.True(t, cfg.Output.SaveMetadata)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.UI.ColorEnabled)
}

func TestLoadFromEnvInvalidValues(t *testing.T) {
	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv("PEXELSDL_TIMEOUT", "soon")
		assert.Error(t, DefaultConfig().LoadFromEnv())
	})

	t.Run("bad bool", func(t *testing.T) {
		t.Setenv("PEXELSDL_SAVE_METADATA", "maybe")
		assert.Error(t, DefaultConfig().LoadFromEnv())
	})
}

func TestLoadFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	content := `
pexels:
  key_file: secrets/pexels.key
  timeout: 10s
output:
  archive_directory: /srv/zips
  save_metadata: true
  metadata_format: yaml
logging:
  level: info
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(configPath))

	assert.Equal(t, "secrets/pexels.key", cfg.Pexels.KeyFile)
	assert.Equal(t, 10*time.Second, cfg.Pexels.Timeout)
	assert.Equal(t, "/srv/zips", cfg.Output.ArchiveDirectory)
	assert.True(t, cfg.Output.SaveMetadata)
	assert.Equal(t, "yaml", cfg.Output.MetadataFormat)
	assert.Equal(t, "info", cfg.Logging.Level)

	// Untouched sections keep their defaults
	assert.Equal(t, "https://api.pexels.com/v1/", cfg.Pexels.BaseURL)
}

func TestLoadFromFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg := DefaultConfig()
		err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("pexels: [unclosed"), 0644))
		assert.Error(t, DefaultConfig().LoadFromFile(path))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"missing base URL", func(c *Config) { c.Pexels.BaseURL = "" }, true},
		{"missing user agent", func(c *Config) { c.Pexels.UserAgent = "" }, true},
		{"negative timeout", func(c *Config) { c.Pexels.Timeout = -time.Second }, true},
		{"unknown key source", func(c *Config) { c.Pexels.KeySource = "vault" }, true},
		{"file source without path", func(c *Config) { c.Pexels.KeyFile = "" }, true},
		{"env source without path", func(c *Config) {
			c.Pexels.KeySource = KeySourceEnv
			c.Pexels.KeyFile = ""
		}, false},
		{"missing archive dir", func(c *Config) { c.Output.ArchiveDirectory = "" }, true},
		{"bad metadata format", func(c *Config) { c.Output.MetadataFormat = "xml" }, true},
		{"invalid log level", func(c *Config) { c.Logging.Level = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeCommandLineFlags(map[string]interface{}{
		"key-file":    "custom.key",
		"key-source":  "Keyring",
		"archive-dir": "zips",
		"metadata":    true,
		"log-level":   "debug",
		"no-color":    true,
		"quiet":       true,
	})

	assert.Equal(t, "custom.key", cfg.Pexels.KeyFile)
	assert.Equal(t, KeySourceKeyring, cfg.Pexels.KeySource)
	assert.Equal(t, "zips", cfg.Output.ArchiveDirectory)
	assert.True(t, cfg.Output.SaveMetadata)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.UI.ColorEnabled)
	assert.True(t, cfg.UI.Quiet)

	// Empty map leaves everything alone
	other := DefaultConfig()
	other.MergeCommandLineFlags(nil)
	assert.Equal(t, DefaultConfig(), other)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Output.ArchiveDirectory = "saved-archives"
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Config
	require.NoError(t, yaml.Unmarshal(data, &loaded))
	assert.Equal(t, "saved-archives", loaded.Output.ArchiveDirectory)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadPrecedence(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	content := `
output:
  archive_directory: from-file
logging:
  level: info
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	t.Setenv("PEXELSDL_LOG_LEVEL", "error")

	cfg, err := Load(configPath, map[string]interface{}{"archive-dir": "from-flag"})
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.Output.ArchiveDirectory)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("{}\n"), 0644))

	t.Setenv("PEXELSDL_KEY_SOURCE", "vault")
	_, err := Load(configPath, nil)
	assert.ErrorContains(t, err, "configuration validation failed")
}

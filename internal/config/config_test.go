package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/spf13/viper"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return &cfg
}

func TestDefault(t *testing.T) {
	cfg := defaultConfig(t)

	assert.Equal(t, 15*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, DefaultUserAgent, cfg.Fetch.UserAgent)
	assert.True(t, cfg.Fetch.InsecureSkipVerify)
	assert.Equal(t, "https://www.google.com/", cfg.Fetch.DefaultURL)
	assert.Equal(t, "urls.txt", cfg.Storage.URLListFile)
	assert.Equal(t, "reports", cfg.Storage.ReportDir)
	assert.Equal(t, "index", cfg.Storage.IndexDir)
	assert.Equal(t, "outputs", cfg.Storage.OutputDir)
	assert.Equal(t, "keywords.xlsx", cfg.Keywords.File)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onpage.yaml")
	content := `
fetch:
  timeout: 5s
  default_url: https://example.org/
storage:
  report_dir: out/reports
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "https://example.org/", cfg.Fetch.DefaultURL)
	assert.Equal(t, "out/reports", cfg.Storage.ReportDir)
	assert.Equal(t, "index", cfg.Storage.IndexDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onpage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  index_dir: pages\n"), 0644))
	t.Setenv("ONPAGE_STORAGE_INDEX_DIR", "html")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "html", cfg.Storage.IndexDir)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onpage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fetch: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero timeout", mutate: func(c *Config) { c.Fetch.Timeout = 0 }, wantErr: true},
		{name: "empty default url", mutate: func(c *Config) { c.Fetch.DefaultURL = "" }, wantErr: true},
		{name: "blank report dir", mutate: func(c *Config) { c.Storage.ReportDir = "  " }, wantErr: true},
		{name: "empty sheet name", mutate: func(c *Config) { c.Keywords.SheetName = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

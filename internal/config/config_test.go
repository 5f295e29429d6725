package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	assert.Equal(t, DefaultStorageHashFile, cfg.StorageConfig.HashFile)
	assert.Equal(t, DefaultReporterOutputFile, cfg.ReporterConfig.OutputFile)
	assert.Equal(t, DefaultMonitorHTTPTimeoutSecs, cfg.MonitorConfig.HTTPTimeoutSeconds)
	assert.Equal(t, DefaultMonitorDelaySecs, cfg.MonitorConfig.DelaySeconds)
	assert.Equal(t, DefaultLogLevel, cfg.LogConfig.LogLevel)
	assert.Empty(t, cfg.MonitorConfig.Targets)
}

func TestLoadGlobalConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
monitor_config:
  http_timeout_seconds: 30
  delay_seconds: 2
  targets:
    - name: Example Homepage
      url: https://example.com
    - name: Example Press
      url: https://example.com/press
storage_config:
  hash_file: state/hashes.json
reporter_config:
  output_file: out/report.xml
log_config:
  log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadGlobalConfig(path, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.MonitorConfig.HTTPTimeoutSeconds)
	assert.Equal(t, 2, cfg.MonitorConfig.DelaySeconds)
	require.Len(t, cfg.MonitorConfig.Targets, 2)
	assert.Equal(t, "Example Homepage", cfg.MonitorConfig.Targets[0].Name)
	assert.Equal(t, "https://example.com/press", cfg.MonitorConfig.Targets[1].URL)
	assert.Equal(t, "state/hashes.json", cfg.StorageConfig.HashFile)
	assert.Equal(t, "out/report.xml", cfg.ReporterConfig.OutputFile)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)

	// Unset sections keep their defaults.
	assert.Equal(t, DefaultMonitorMaxContentSize, cfg.MonitorConfig.MaxContentSize)
}

func TestLoadGlobalConfig_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	content := `{"monitor_config":{"targets":[{"name":"A","url":"https://a.example.com"}]}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadGlobalConfig(path, zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, cfg.MonitorConfig.Targets, 1)
	assert.Equal(t, "A", cfg.MonitorConfig.Targets[0].Name)
}

func TestLoadGlobalConfig_ExplicitPathMissing(t *testing.T) {
	_, err := LoadGlobalConfig(filepath.Join(t.TempDir(), "nope.yaml"), zerolog.Nop())

	assert.Error(t, err)
}

func TestLoadGlobalConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":: not yaml ::"), 0644))

	_, err := LoadGlobalConfig(path, zerolog.Nop())

	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	validTargets := []TargetConfig{{Name: "A", URL: "https://a.example.com"}}

	tests := []struct {
		name      string
		mutate    func(*GlobalConfig)
		expectErr bool
	}{
		{
			name:      "valid config",
			mutate:    func(cfg *GlobalConfig) { cfg.MonitorConfig.Targets = validTargets },
			expectErr: false,
		},
		{
			name:      "no targets",
			mutate:    func(cfg *GlobalConfig) {},
			expectErr: true,
		},
		{
			name: "target missing name",
			mutate: func(cfg *GlobalConfig) {
				cfg.MonitorConfig.Targets = []TargetConfig{{URL: "https://a.example.com"}}
			},
			expectErr: true,
		},
		{
			name: "target with invalid url",
			mutate: func(cfg *GlobalConfig) {
				cfg.MonitorConfig.Targets = []TargetConfig{{Name: "A", URL: "not a url"}}
			},
			expectErr: true,
		},
		{
			name: "duplicate target names",
			mutate: func(cfg *GlobalConfig) {
				cfg.MonitorConfig.Targets = []TargetConfig{
					{Name: "A", URL: "https://a.example.com"},
					{Name: "A", URL: "https://b.example.com"},
				}
			},
			expectErr: true,
		},
		{
			name: "invalid log level",
			mutate: func(cfg *GlobalConfig) {
				cfg.MonitorConfig.Targets = validTargets
				cfg.LogConfig.LogLevel = "verbose"
			},
			expectErr: true,
		},
		{
			name: "invalid log format",
			mutate: func(cfg *GlobalConfig) {
				cfg.MonitorConfig.Targets = validTargets
				cfg.LogConfig.LogFormat = "xml"
			},
			expectErr: true,
		},
		{
			name: "negative delay",
			mutate: func(cfg *GlobalConfig) {
				cfg.MonitorConfig.Targets = validTargets
				cfg.MonitorConfig.DelaySeconds = -1
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultGlobalConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetConfigPath_EnvVariable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "from-env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	t.Setenv("WEBWATCH_CONFIG_PATH", path)

	assert.Equal(t, path, GetConfigPath(""))
}

func TestGetConfigPath_FlagWins(t *testing.T) {
	dir := t.TempDir()
	flagPath := filepath.Join(dir, "flag.yaml")
	envPath := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(flagPath, []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(envPath, []byte("{}"), 0644))
	t.Setenv("WEBWATCH_CONFIG_PATH", envPath)

	assert.Equal(t, flagPath, GetConfigPath(flagPath))
}

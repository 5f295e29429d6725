package config

import (
	"encoding/json"
	"path/filepath"

	"github.com/aleister1102/webwatch/internal/common"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	// Monitor Defaults
	DefaultMonitorHTTPTimeoutSecs = 15
	DefaultMonitorDelaySecs       = 1
	DefaultMonitorMaxContentSize  = 10 * 1024 * 1024 // 10MB
	DefaultMonitorUserAgent       = "webwatch/1.0"

	// Storage Defaults
	DefaultStorageHashFile = "url_hashes.json"

	// Reporter Defaults
	DefaultReporterOutputFile = "monitoring_report.xml"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)

type GlobalConfig struct {
	LogConfig      LogConfig      `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	MonitorConfig  MonitorConfig  `json:"monitor_config,omitempty" yaml:"monitor_config,omitempty"`
	ReporterConfig ReporterConfig `json:"reporter_config,omitempty" yaml:"reporter_config,omitempty"`
	StorageConfig  StorageConfig  `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
}

func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:      NewDefaultLogConfig(),
		MonitorConfig:  NewDefaultMonitorConfig(),
		ReporterConfig: NewDefaultReporterConfig(),
		StorageConfig:  NewDefaultStorageConfig(),
	}
}

// TargetConfig is one monitored (name, url) pair. Targets are checked in the
// order they are declared and the name is the key under which the last-known
// digest is persisted.
type TargetConfig struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	URL  string `json:"url" yaml:"url" validate:"required,url"`
}

type MonitorConfig struct {
	DelaySeconds       int            `json:"delay_seconds,omitempty" yaml:"delay_seconds,omitempty" validate:"omitempty,min=0"`
	HTTPTimeoutSeconds int            `json:"http_timeout_seconds,omitempty" yaml:"http_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	InsecureSkipVerify bool           `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	MaxContentSize     int            `json:"max_content_size,omitempty" yaml:"max_content_size,omitempty" validate:"omitempty,min=1"` // Max content size in bytes
	Targets            []TargetConfig `json:"targets,omitempty" yaml:"targets,omitempty" validate:"required,min=1,dive"`
	UserAgent          string         `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		DelaySeconds:       DefaultMonitorDelaySecs,
		HTTPTimeoutSeconds: DefaultMonitorHTTPTimeoutSecs,
		InsecureSkipVerify: false,
		MaxContentSize:     DefaultMonitorMaxContentSize,
		Targets:            []TargetConfig{},
		UserAgent:          DefaultMonitorUserAgent,
	}
}

type StorageConfig struct {
	HashFile string `json:"hash_file,omitempty" yaml:"hash_file,omitempty"`
}

func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		HashFile: DefaultStorageHashFile,
	}
}

type ReporterConfig struct {
	OutputFile string `json:"output_file,omitempty" yaml:"output_file,omitempty"`
}

func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		OutputFile: DefaultReporterOutputFile,
	}
}

type LogConfig struct {
	LogFile       string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	LogFormat     string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,logformat"`
	LogLevel      string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,loglevel"`
	MaxLogBackups int    `json:"max_log_backups,omitempty" yaml:"max_log_backups,omitempty"`
	MaxLogSizeMB  int    `json:"max_log_size_mb,omitempty" yaml:"max_log_size_mb,omitempty"`
}

func NewDefaultLogConfig() LogConfig {
	return LogConfig{
		LogFile:       DefaultLogFile,
		LogFormat:     DefaultLogFormat,
		LogLevel:      DefaultLogLevel,
		MaxLogBackups: DefaultMaxLogBackups,
		MaxLogSizeMB:  DefaultMaxLogSizeMB,
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath and supports both
// JSON and YAML formats. YAML is preferred if the extension is .yaml or .yml.
// When no config file can be found anywhere, defaults are returned; the
// target list is then empty and validation will reject it.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	fileManager := common.NewFileManager(logger)
	if providedPath != "" && !fileManager.FileExists(providedPath) {
		return nil, common.NewValidationError("config_file", providedPath, "config file does not exist")
	}

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return cfg, nil
	}

	data, err := fileManager.ReadFile(filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	return cfg, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if isYAMLFile(ext) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

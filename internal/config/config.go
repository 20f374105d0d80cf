// Package config loads server configuration from a YAML file and the
// environment. Every field has a working default, so the server runs with no
// config file at all.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/tensorpool/tensorpool-mcp/internal/errors"
)

const (
	// ConfigFileName is the project-local config file name.
	ConfigFileName = "tensorpool-mcp.yaml"
	// GlobalConfigDir is the directory for global config, under the home directory.
	GlobalConfigDir = ".config/tensorpool-mcp"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"

	// EnvPrefix is the prefix for environment overrides (TPMCP_TRANSPORT etc).
	EnvPrefix = "TPMCP"
)

// Transport names accepted in the config file and on the command line.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds the server settings.
type Config struct {
	// TPBinary is the name or path of the TensorPool CLI executable.
	TPBinary string `yaml:"tp_binary" mapstructure:"tp_binary"`

	// TimeoutSeconds bounds each tp invocation. Cluster and job operations
	// can legitimately take minutes, so the default is generous.
	TimeoutSeconds int `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`

	// Transport selects how the MCP server is exposed: stdio or http.
	Transport string `yaml:"transport" mapstructure:"transport"`

	// HTTPAddr is the listen address for the http transport.
	HTTPAddr string `yaml:"http_addr" mapstructure:"http_addr"`
}

// Timeout returns the per-invocation timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default returns a config populated with default values.
func Default() *Config {
	return &Config{
		TPBinary:       "tp",
		TimeoutSeconds: 600,
		Transport:      TransportStdio,
		HTTPAddr:       "127.0.0.1:8080",
	}
}

// LoadDotenv loads a .env file from the current directory into the process
// environment without overriding variables that are already set. Missing
// files are not an error. This matters for TENSORPOOL_API_KEY in local
// development.
func LoadDotenv() {
	_ = gotenv.Load()
}

// Load reads config from the given path, or from the standard search
// locations when path is empty. Environment variables with the TPMCP_ prefix
// override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("tp_binary", defaults.TPBinary)
	v.SetDefault("timeout_seconds", defaults.TimeoutSeconds)
	v.SetDefault("transport", defaults.Transport)
	v.SetDefault("http_addr", defaults.HTTPAddr)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolved := path
	if resolved == "" {
		resolved = find()
	} else if _, err := os.Stat(resolved); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Specified config file not found: "+resolved,
			"Check the path is correct")
	}

	if resolved != "" {
		v.SetConfigFile(resolved)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file: "+resolved,
				"Check the file is valid YAML, or run 'tensorpool-mcp init' to regenerate it")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to parse config file: "+resolved,
			"Check field names and types against 'tensorpool-mcp init' output")
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// find locates the config file: ./tensorpool-mcp.yaml first, then
// ~/.config/tensorpool-mcp/config.yaml. Returns empty string if neither exists.
func find() string {
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if home, err := os.UserHomeDir(); err == nil {
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(global); err == nil {
			return global
		}
	}
	return ""
}

// GlobalConfigPath returns the path where 'init' writes the global config.
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine home directory",
			"Set HOME, or pass --config with an explicit path")
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile), nil
}

// Validate checks that the config values are usable.
func Validate(cfg *Config) error {
	if cfg.TPBinary == "" {
		return errors.New(errors.ErrConfig,
			"tp_binary must not be empty",
			"Set tp_binary to 'tp' or an absolute path to the TensorPool CLI")
	}
	if cfg.TimeoutSeconds <= 0 {
		return errors.New(errors.ErrConfig,
			"timeout_seconds must be positive",
			"Use a value like 600 (cluster operations can take minutes)")
	}
	switch cfg.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return errors.New(errors.ErrConfig,
			"Unknown transport: "+cfg.Transport,
			"Use 'stdio' or 'http'")
	}
	if cfg.Transport == TransportHTTP && cfg.HTTPAddr == "" {
		return errors.New(errors.ErrConfig,
			"http_addr must be set for the http transport",
			"Use an address like 127.0.0.1:8080")
	}
	return nil
}

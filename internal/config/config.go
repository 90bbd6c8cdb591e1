package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// defaultUpstreamTimeout applies when upstream.timeout is empty or unparseable.
const defaultUpstreamTimeout = 15 * time.Second

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Upstream UpstreamConfig `toml:"upstream"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ServerConfig contains MCP server identity and HTTP transport settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// Addr returns the listen address for the streamable HTTP transport.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UpstreamConfig contains the third-party endpoints queried by the tools.
type UpstreamConfig struct {
	PriceURL  string `toml:"price_url"`
	HeightURL string `toml:"height_url"`
	FeesURL   string `toml:"fees_url"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the upstream request timeout.
func (c UpstreamConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultUpstreamTimeout
	}
	return d
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
// A missing file is not an error; the server runs on defaults.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies BITCOIN_MCP_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if port := os.Getenv("BITCOIN_MCP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if u := os.Getenv("BITCOIN_MCP_PRICE_URL"); u != "" {
		config.Upstream.PriceURL = u
	}
	if u := os.Getenv("BITCOIN_MCP_HEIGHT_URL"); u != "" {
		config.Upstream.HeightURL = u
	}
	if u := os.Getenv("BITCOIN_MCP_FEES_URL"); u != "" {
		config.Upstream.FeesURL = u
	}
	if timeout := os.Getenv("BITCOIN_MCP_UPSTREAM_TIMEOUT"); timeout != "" {
		config.Upstream.Timeout = timeout
	}
	if level := os.Getenv("BITCOIN_MCP_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int) {
	if port > 0 {
		config.Server.Port = port
	}
}

package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "Bitcoin MCP",
			Port: 4250,
			Host: "localhost",
		},
		Upstream: UpstreamConfig{
			PriceURL:  "https://api.coingecko.com/api/v3/simple/price",
			HeightURL: "https://mempool.space/api/blocks/tip/height",
			FeesURL:   "https://mempool.space/api/v1/fees/recommended",
			Timeout:   "15s",
		},
		Logging: LoggingConfig{
			Level:   "info",
			Outputs: []string{"console"},
		},
	}
}

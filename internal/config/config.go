package config

// Config holds runtime configuration for the server.
type Config struct {
	Port    string
	Logging LoggingConfig
	Storage StorageConfig
	Metrics MetricsConfig
}

// LoggingConfig selects the slog handler and level.
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port: envOrDefault(envPort, defaultPort),
		Logging: LoggingConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Storage: loadStorage(),
		Metrics: loadMetrics(),
	}
}

package config

import "time"

// Default values for configuration.
const (
	// Server defaults
	DefaultServerHost      = "0.0.0.0"
	DefaultServerPort      = 8080
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxUploadSizeMB = 10

	// Processing defaults
	DefaultTaskTimeout     = 600 * time.Second
	DefaultCacheTTL        = 60 * time.Minute
	DefaultCleanupInterval = 1 * time.Hour

	// Normalizer defaults, 0 disables the depth limit
	DefaultMaxDepth = 0

	// Bot defaults
	DefaultBotAPIEndpoint      = "https://api.telegram.org/bot%s/%s"
	DefaultPollTimeoutSeconds  = 30
	DefaultHealthCheckInterval = 30 * time.Second

	// Export defaults
	DefaultExportFormat = "console"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

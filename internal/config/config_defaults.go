package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 3)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.useSystemPrompts", true)

	// AI Configuration - Parse operation defaults
	v.SetDefault("ai.parse.provider", "gemini")
	v.SetDefault("ai.parse.model", "")
	v.SetDefault("ai.parse.timeout", 90*time.Second) // Extraction reads whole documents
	v.SetDefault("ai.parse.apiKey", "")
	v.SetDefault("ai.parse.maxRetries", 2)
	v.SetDefault("ai.parse.temperature", 0.2) // Low temperature for faithful extraction
	v.SetDefault("ai.parse.useSystemPrompts", true)

	// AI Configuration - Score operation defaults
	v.SetDefault("ai.score.provider", "gemini")
	v.SetDefault("ai.score.model", "")
	v.SetDefault("ai.score.timeout", 60*time.Second)
	v.SetDefault("ai.score.apiKey", "")
	v.SetDefault("ai.score.maxRetries", 3)
	v.SetDefault("ai.score.temperature", 0.1) // Very low temperature for stable scoring
	v.SetDefault("ai.score.useSystemPrompts", true)

	// Circuit Breaker Configuration defaults for all operations
	v.SetDefault("ai.parse.circuitBreaker.enabled", true)
	v.SetDefault("ai.parse.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.parse.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.parse.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.parse.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.parse.circuitBreaker.failureThreshold", 0.6)

	v.SetDefault("ai.score.circuitBreaker.enabled", true)
	v.SetDefault("ai.score.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.score.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.score.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.score.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.score.circuitBreaker.failureThreshold", 0.6)

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	// API Authentication defaults
	v.SetDefault("server.apiKeys", []string{})
	v.SetDefault("server.users", map[string]string{})
	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// Storage Configuration
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", "resumes.json")
	v.SetDefault("storage.databaseURL", "")
	v.SetDefault("storage.userID", "local")
	v.SetDefault("storage.watch", false)
	v.SetDefault("storage.debounceDelay", time.Second)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.defaultTemplate", "classic")
	v.SetDefault("app.maxInputSize", 1024*1024) // 1MB

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.geminiKey", "")
	v.SetDefault("vault.secrets.databaseURL", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "resumeforge")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Custom Metrics Configuration
	v.SetDefault("observability.customMetrics.aiOperations.enabled", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackDuration", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackTokenUsage", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackModelInfo", true)
	v.SetDefault("observability.customMetrics.businessMetrics.enabled", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackSuccessRates", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackContentSizes", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackStorageOps", true)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})

	// Health Check Configuration
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
	v.SetDefault("observability.healthCheck.aiModelCheckTimeout", 10*time.Second)
}

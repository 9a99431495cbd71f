package config

import "github.com/angelmondragon/pulse-analytics/pkg/enums"

const (
	EnvPrefix = "PULSE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	SourceSample = string(enums.AnalyticsSourceSample)
	SourceModel  = string(enums.AnalyticsSourceModel)
)

const (
	EnvAppEnv    = "PULSE_APP_ENV"
	EnvPort      = "PULSE_APP_PORT"
	EnvLogLevel  = "PULSE_LOG_LEVEL"
	EnvLogFormat = "PULSE_LOG_FORMAT"

	EnvAnalyticsSource        = "PULSE_ANALYTICS_SOURCE"
	EnvAnalyticsModelTimeout  = "PULSE_ANALYTICS_MODEL_TIMEOUT"
	EnvAnalyticsStrictPayload = "PULSE_ANALYTICS_STRICT_PAYLOAD"

	EnvGeminiAPIKey   = "PULSE_GEMINI_API_KEY"
	EnvGeminiModel    = "PULSE_GEMINI_MODEL"
	EnvGeminiJSONMode = "PULSE_GEMINI_JSON_MODE"

	EnvRedisURL = "PULSE_REDIS_URL"

	EnvRateLimitWindow     = "PULSE_RATE_LIMIT_WINDOW"
	EnvRateLimitLimit      = "PULSE_RATE_LIMIT_LIMIT"
	EnvRateLimitTrustProxy = "PULSE_RATE_LIMIT_TRUST_PROXY"

	EnvCORSAllowedOrigins = "PULSE_CORS_ALLOWED_ORIGINS"
)

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/angelmondragon/pulse-analytics/pkg/enums"
)

type Config struct {
	App       AppConfig
	Analytics AnalyticsConfig
	Gemini    GeminiConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Analytics.validate(cfg.Gemini); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PULSE_APP_ENV" required:"true"`
	Port         string `envconfig:"PULSE_APP_PORT" default:"3001"`
	LogLevel     string `envconfig:"PULSE_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"PULSE_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"PULSE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type AnalyticsConfig struct {
	// DefaultSource is used when a request does not name one.
	DefaultSource string        `envconfig:"PULSE_ANALYTICS_SOURCE" default:"sample"`
	ModelTimeout  time.Duration `envconfig:"PULSE_ANALYTICS_MODEL_TIMEOUT" default:"30s"`
	StrictPayload bool          `envconfig:"PULSE_ANALYTICS_STRICT_PAYLOAD" default:"false"`
}

// Source returns the normalized default source.
func (a AnalyticsConfig) Source() string {
	return strings.ToLower(strings.TrimSpace(a.DefaultSource))
}

func (a AnalyticsConfig) validate(gemini GeminiConfig) error {
	source, err := enums.ParseAnalyticsSource(a.DefaultSource)
	if err != nil {
		return fmt.Errorf("%s must be %q or %q, got %q", EnvAnalyticsSource, SourceSample, SourceModel, a.DefaultSource)
	}
	if source == enums.AnalyticsSourceModel && !gemini.Enabled() {
		return fmt.Errorf("%s=%s requires %s", EnvAnalyticsSource, SourceModel, EnvGeminiAPIKey)
	}
	if a.ModelTimeout < 0 {
		return fmt.Errorf("%s must not be negative", EnvAnalyticsModelTimeout)
	}
	return nil
}

type GeminiConfig struct {
	APIKey   string `envconfig:"PULSE_GEMINI_API_KEY"`
	Model    string `envconfig:"PULSE_GEMINI_MODEL" default:"gemini-2.0-flash"`
	JSONMode bool   `envconfig:"PULSE_GEMINI_JSON_MODE" default:"false"`
}

// Enabled reports whether a model collaborator can be built.
func (g GeminiConfig) Enabled() bool {
	return strings.TrimSpace(g.APIKey) != ""
}

type RedisConfig struct {
	URL          string        `envconfig:"PULSE_REDIS_URL"`
	Address      string        `envconfig:"PULSE_REDIS_ADDR"`
	Password     string        `envconfig:"PULSE_REDIS_PASSWORD"`
	DB           int           `envconfig:"PULSE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PULSE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PULSE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PULSE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PULSE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PULSE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether redis-backed features should be wired.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type RateLimitConfig struct {
	Window time.Duration `envconfig:"PULSE_RATE_LIMIT_WINDOW" default:"1m"`
	Limit  int           `envconfig:"PULSE_RATE_LIMIT_LIMIT" default:"30"`
	// TrustProxy keys clients by X-Forwarded-For; set only behind a proxy that rewrites it.
	TrustProxy bool `envconfig:"PULSE_RATE_LIMIT_TRUST_PROXY" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PULSE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

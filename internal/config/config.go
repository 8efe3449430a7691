package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Credits   CreditsConfig   `yaml:"credits"`
	Cache     CacheConfig     `yaml:"cache"`
	Generator GeneratorConfig `yaml:"generator"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// StatementTimeout is sent as the session statement_timeout; 0 leaves the
	// server default.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"5s"`
	ApplicationName  string        `yaml:"application_name"  env:"DATABASE_APPLICATION_NAME"  env-default:"ideascore"`
}

// RedisConfig holds Redis connection settings. Only used when cache.driver is "redis".
type RedisConfig struct {
	Addr      string `yaml:"addr"       env:"REDIS_ADDR"       env-default:"localhost:6379"`
	Password  string `yaml:"password"   env:"REDIS_PASSWORD"`
	DB        int    `yaml:"db"         env:"REDIS_DB"         env-default:"0"`
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"ideascore:"`
}

// AuthConfig holds bearer-token settings. The server only verifies tokens;
// TokenTTL applies to tokens minted by cmd/issue-token.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"ideascore"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL"  env-default:"24h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CreditsConfig holds metering settings.
type CreditsConfig struct {
	DefaultBalance int `yaml:"default_balance" env:"CREDITS_DEFAULT_BALANCE" env-default:"3"`
	GenerationCost int `yaml:"generation_cost" env:"CREDITS_GENERATION_COST" env-default:"1"`
	// Unmetered switches every balance and eligibility check to the fixed
	// admin sentinel and disables debit/refund bookkeeping.
	Unmetered bool `yaml:"unmetered" env:"CREDITS_UNMETERED" env-default:"false"`
	// MaxBalanceRetries bounds compare-and-set retries on concurrent balance writes.
	MaxBalanceRetries int `yaml:"max_balance_retries" env:"CREDITS_MAX_BALANCE_RETRIES" env-default:"3"`
}

// CacheConfig holds balance cache settings.
type CacheConfig struct {
	Driver     string        `yaml:"driver"      env:"CACHE_DRIVER"      env-default:"memory"`
	BalanceTTL time.Duration `yaml:"balance_ttl" env:"CACHE_BALANCE_TTL" env-default:"30s"`
	// MaxEntries bounds the memory driver; zero means unbounded.
	MaxEntries uint64 `yaml:"max_entries" env:"CACHE_MAX_ENTRIES" env-default:"100000"`
}

// GeneratorConfig holds external generator settings.
type GeneratorConfig struct {
	Provider   string        `yaml:"provider"    env:"GENERATOR_PROVIDER"    env-default:"stub"`
	APIKey     string        `yaml:"api_key"     env:"GENERATOR_API_KEY"`
	BaseURL    string        `yaml:"base_url"    env:"GENERATOR_BASE_URL"`
	Model      string        `yaml:"model"       env:"GENERATOR_MODEL"       env-default:"claude-sonnet-4-5"`
	MaxTokens  int64         `yaml:"max_tokens"  env:"GENERATOR_MAX_TOKENS"  env-default:"2048"`
	MaxRetries int           `yaml:"max_retries" env:"GENERATOR_MAX_RETRIES" env-default:"1"`
	Timeout    time.Duration `yaml:"timeout"     env:"GENERATOR_TIMEOUT"     env-default:"60s"`
	// CompensationTimeout bounds the refund path, which runs detached from the
	// caller's cancellation.
	CompensationTimeout time.Duration `yaml:"compensation_timeout" env:"GENERATOR_COMPENSATION_TIMEOUT" env-default:"10s"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATELIMIT_REQUESTS_PER_MINUTE" env-default:"60"`
	Burst             int           `yaml:"burst"               env:"RATELIMIT_BURST"               env-default:"10"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATELIMIT_CLEANUP_INTERVAL"    env-default:"5m"`
}

const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"

	GeneratorProviderStub      = "stub"
	GeneratorProviderAnthropic = "anthropic"
)

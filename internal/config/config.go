package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Delegation DelegationConfig `yaml:"delegation"`
	Draft      DraftConfig      `yaml:"draft"`
	KillSwitch KillSwitchConfig `yaml:"killswitch"`
	Binding    BindingConfig    `yaml:"binding"`
	Promotion  PromotionConfig  `yaml:"promotion"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// TokenEndpointRPM is the per-IP rate limit on POST /delegated-token,
	// independent of the per-client issuance window.
	TokenEndpointRPM int `yaml:"token_endpoint_rpm" env:"SERVER_TOKEN_ENDPOINT_RPM" env-default:"60"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"false"`
}

// DelegationConfig holds token issuance settings.
type DelegationConfig struct {
	JWTSecret   string        `yaml:"jwt_secret"   env:"DELEGATION_JWT_SECRET"   env-required:"true"`
	JWTIssuer   string        `yaml:"jwt_issuer"   env:"DELEGATION_JWT_ISSUER"   env-default:"clinicore-delegation"`
	JWTAudience string        `yaml:"jwt_audience" env:"DELEGATION_JWT_AUDIENCE" env-default:"clinicore-actions"`
	MaxTokenTTL time.Duration `yaml:"max_token_ttl" env:"DELEGATION_MAX_TOKEN_TTL" env-default:"10m"`
	// SecretHashCost is the bcrypt cost for delegate client secrets.
	SecretHashCost int `yaml:"secret_hash_cost" env:"DELEGATION_SECRET_HASH_COST" env-default:"10"`
	// DefaultRateLimitPerHour applies to clients created without an explicit
	// per-client threshold.
	DefaultRateLimitPerHour int `yaml:"default_rate_limit_per_hour" env:"DELEGATION_DEFAULT_RATE_LIMIT" env-default:"100"`
}

// DraftConfig holds draft lifecycle settings.
type DraftConfig struct {
	TTL time.Duration `yaml:"ttl" env:"DRAFT_TTL" env-default:"36h"`
}

// KillSwitchConfig holds kill-switch cache settings.
type KillSwitchConfig struct {
	// CacheTTL bounds how stale a cached kill-switch read may be. Mutations
	// invalidate the cache immediately; this bound covers other processes.
	CacheTTL time.Duration `yaml:"cache_ttl" env:"KILLSWITCH_CACHE_TTL" env-default:"30s"`
}

// BindingConfig holds identity-binding verification settings.
type BindingConfig struct {
	VerificationTTL time.Duration `yaml:"verification_ttl" env:"BINDING_VERIFICATION_TTL" env-default:"15m"`
}

// PromotionConfig holds draft promotion policy.
type PromotionConfig struct {
	// RestrictToDelegator, when true, only lets the clinician who delegated
	// the draft promote it. Any authorship-eligible clinician otherwise.
	RestrictToDelegator bool `yaml:"restrict_to_delegator" env:"PROMOTION_RESTRICT_TO_DELEGATOR" env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "rewear"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names shared with tests and deploy tooling.
const (
	EnvAppEnv                 = "REWEAR_APP_ENV"
	EnvPort                   = "REWEAR_APP_PORT"
	EnvDBDSN                  = "REWEAR_DB_DSN"
	EnvRedisURL               = "REWEAR_REDIS_URL"
	EnvJWTSecret              = "REWEAR_JWT_SECRET"
	EnvJWTIssuer              = "REWEAR_JWT_ISSUER"
	EnvJWTExpMins             = "REWEAR_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "REWEAR_REFRESH_TOKEN_TTL_MINUTES"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Exchange      ExchangeConfig
	Valuation     ValuationConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"REWEAR_APP_ENV" required:"true"`
	Port         string `envconfig:"REWEAR_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"REWEAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"REWEAR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"REWEAR_DB_DSN"`
	Driver string `envconfig:"REWEAR_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"REWEAR_DB_HOST"`
	Port     int    `envconfig:"REWEAR_DB_PORT" default:"5432"`
	User     string `envconfig:"REWEAR_DB_USER"`
	Password string `envconfig:"REWEAR_DB_PASSWORD"`
	Name     string `envconfig:"REWEAR_DB_NAME"`
	SSLMode  string `envconfig:"REWEAR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"REWEAR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"REWEAR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"REWEAR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"REWEAR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN assembles a DSN from the discrete host/user fields when one was not
// provided directly.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either REWEAR_DB_DSN or REWEAR_DB_HOST/USER/NAME must be set")
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	} else {
		u.User = url.User(d.User)
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"REWEAR_REDIS_URL" required:"true"`
	Address      string        `envconfig:"REWEAR_REDIS_ADDR"`
	Password     string        `envconfig:"REWEAR_REDIS_PASSWORD"`
	DB           int           `envconfig:"REWEAR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REWEAR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REWEAR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"REWEAR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REWEAR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"REWEAR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"REWEAR_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"REWEAR_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"REWEAR_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"REWEAR_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"REWEAR_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"REWEAR_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"REWEAR_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"REWEAR_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"REWEAR_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"REWEAR_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"REWEAR_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"REWEAR_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"REWEAR_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"REWEAR_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"REWEAR_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type ExchangeConfig struct {
	// StartingBalance is the point grant issued when an account is created.
	StartingBalance int `envconfig:"REWEAR_EXCHANGE_STARTING_BALANCE" default:"1000"`
	// MaxTxAttempts bounds automatic retries of exchange transactions that hit
	// a storage-level write conflict.
	MaxTxAttempts int `envconfig:"REWEAR_EXCHANGE_MAX_TX_ATTEMPTS" default:"3"`
}

type ValuationConfig struct {
	Enabled   bool `envconfig:"REWEAR_VALUATION_ENABLED" default:"true"`
	MinPoints int  `envconfig:"REWEAR_VALUATION_MIN_POINTS" default:"50"`
	MaxPoints int  `envconfig:"REWEAR_VALUATION_MAX_POINTS" default:"10000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"REWEAR_AUTO_MIGRATE" default:"false"`
}

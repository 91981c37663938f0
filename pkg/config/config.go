package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "cardapio"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Admin        AdminConfig
	Cart         CartConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"CARDAPIO_APP_ENV" default:"dev"`
	Port         string `envconfig:"CARDAPIO_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CARDAPIO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARDAPIO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"CARDAPIO_DB_DSN"`

	Host     string `envconfig:"CARDAPIO_DB_HOST"`
	Port     int    `envconfig:"CARDAPIO_DB_PORT" default:"5432"`
	User     string `envconfig:"CARDAPIO_DB_USER"`
	Password string `envconfig:"CARDAPIO_DB_PASSWORD"`
	Name     string `envconfig:"CARDAPIO_DB_NAME"`
	SSLMode  string `envconfig:"CARDAPIO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CARDAPIO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CARDAPIO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CARDAPIO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CARDAPIO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either CARDAPIO_DB_DSN or host/user/name parts are required")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"CARDAPIO_REDIS_URL"`
	Address      string        `envconfig:"CARDAPIO_REDIS_ADDR"`
	Password     string        `envconfig:"CARDAPIO_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARDAPIO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CARDAPIO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CARDAPIO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CARDAPIO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARDAPIO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CARDAPIO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CARDAPIO_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CARDAPIO_JWT_ISSUER" default:"cardapio"`
	ExpirationMinutes int    `envconfig:"CARDAPIO_JWT_EXPIRATION_MINUTES" default:"720"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CARDAPIO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CARDAPIO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CARDAPIO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CARDAPIO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CARDAPIO_ARGON_KEY_LEN" default:"32"`
}

type AdminConfig struct {
	Email    string `envconfig:"CARDAPIO_ADMIN_EMAIL"`
	Password string `envconfig:"CARDAPIO_ADMIN_PASSWORD"`
}

type CartConfig struct {
	SessionCookie string        `envconfig:"CARDAPIO_CART_SESSION_COOKIE" default:"cart_session"`
	SnapshotTTL   time.Duration `envconfig:"CARDAPIO_CART_SNAPSHOT_TTL" default:"72h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CARDAPIO_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:8081"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CARDAPIO_AUTO_MIGRATE" default:"false"`
}

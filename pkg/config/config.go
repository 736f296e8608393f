package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Audit    AuditConfig
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
	Env          string `envconfig:"PICKNPLAY_APP_ENV" required:"true"`
	Port         string `envconfig:"PICKNPLAY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PICKNPLAY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PICKNPLAY_LOG_WARN_STACK" default:"false"`

	// AutoMigrate runs pending schema migrations at startup in dev.
	AutoMigrate bool `envconfig:"PICKNPLAY_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PICKNPLAY_DB_DSN"`
	Driver string `envconfig:"PICKNPLAY_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"PICKNPLAY_DB_HOST"`
	Port     int    `envconfig:"PICKNPLAY_DB_PORT" default:"5432"`
	User     string `envconfig:"PICKNPLAY_DB_USER"`
	Password string `envconfig:"PICKNPLAY_DB_PASSWORD"`
	Name     string `envconfig:"PICKNPLAY_DB_NAME"`
	SSLMode  string `envconfig:"PICKNPLAY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PICKNPLAY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PICKNPLAY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PICKNPLAY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PICKNPLAY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either PICKNPLAY_DB_DSN or host/user/name settings are required")
	}
	d.DSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"PICKNPLAY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PICKNPLAY_REDIS_ADDR"`
	Password     string        `envconfig:"PICKNPLAY_REDIS_PASSWORD"`
	DB           int           `envconfig:"PICKNPLAY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PICKNPLAY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PICKNPLAY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PICKNPLAY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PICKNPLAY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PICKNPLAY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PICKNPLAY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PICKNPLAY_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PICKNPLAY_JWT_EXPIRATION_MINUTES" default:"60"`
	SessionTTLMinutes int    `envconfig:"PICKNPLAY_SESSION_TTL_MINUTES" default:"480"`
}

// SessionTTL returns the redis session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PICKNPLAY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PICKNPLAY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PICKNPLAY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PICKNPLAY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PICKNPLAY_ARGON_KEY_LEN" default:"32"`
}

type AuditConfig struct {
	// Window bounds how many recent entries the summary report scans.
	Window      int `envconfig:"PICKNPLAY_AUDIT_WINDOW" default:"200"`
	RecentCount int `envconfig:"PICKNPLAY_AUDIT_RECENT_COUNT" default:"10"`
}

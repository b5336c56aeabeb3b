package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Idempotency  IdempotencyConfig
	Metrics      MetricsConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DBDriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BULKDISCOUNT_APP_ENV" required:"true"`
	Port         string `envconfig:"BULKDISCOUNT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BULKDISCOUNT_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"BULKDISCOUNT_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"BULKDISCOUNT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BULKDISCOUNT_DB_DSN"`
	Driver string `envconfig:"BULKDISCOUNT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BULKDISCOUNT_DB_HOST"`
	LegacyPort     int    `envconfig:"BULKDISCOUNT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BULKDISCOUNT_DB_USER"`
	LegacyPassword string `envconfig:"BULKDISCOUNT_DB_PASSWORD"`
	LegacyName     string `envconfig:"BULKDISCOUNT_DB_NAME"`
	LegacySSLMode  string `envconfig:"BULKDISCOUNT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BULKDISCOUNT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BULKDISCOUNT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BULKDISCOUNT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BULKDISCOUNT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"BULKDISCOUNT_REDIS_URL"`
	Address      string        `envconfig:"BULKDISCOUNT_REDIS_ADDR"`
	Password     string        `envconfig:"BULKDISCOUNT_REDIS_PASSWORD"`
	DB           int           `envconfig:"BULKDISCOUNT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BULKDISCOUNT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BULKDISCOUNT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BULKDISCOUNT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BULKDISCOUNT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BULKDISCOUNT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BULKDISCOUNT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"BULKDISCOUNT_AUTO_MIGRATE" default:"false"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"BULKDISCOUNT_IDEMPOTENCY_TTL" default:"24h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"BULKDISCOUNT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"BULKDISCOUNT_METRICS_ENABLED" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = DefaultSQLiteDSN
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

package config

const (
	EnvPrefix = "BULKDISCOUNT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
	DefaultSQLiteDSN = "file:bulkdiscount.db?cache=shared"

	EnvAppEnv   = "BULKDISCOUNT_APP_ENV"
	EnvPort     = "BULKDISCOUNT_APP_PORT"
	EnvLogLevel = "BULKDISCOUNT_LOG_LEVEL"
	EnvLogFmt   = "BULKDISCOUNT_LOG_FORMAT"

	EnvDBDSN      = "BULKDISCOUNT_DB_DSN"
	EnvDBDriver   = "BULKDISCOUNT_DB_DRIVER"
	EnvDBHost     = "BULKDISCOUNT_DB_HOST"
	EnvDBPort     = "BULKDISCOUNT_DB_PORT"
	EnvDBUser     = "BULKDISCOUNT_DB_USER"
	EnvDBPassword = "BULKDISCOUNT_DB_PASSWORD"
	EnvDBName     = "BULKDISCOUNT_DB_NAME"

	EnvRedisURL = "BULKDISCOUNT_REDIS_URL"

	EnvUseSQLite      = "BULKDISCOUNT_USE_SQLITE"
	EnvAutoMigrate    = "BULKDISCOUNT_AUTO_MIGRATE"
	EnvIdempotencyTTL = "BULKDISCOUNT_IDEMPOTENCY_TTL"
	EnvCORSOrigins    = "BULKDISCOUNT_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package config

const EnvPrefix = "MOBISHOP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "MOBISHOP_APP_ENV"
	EnvPort     = "MOBISHOP_APP_PORT"
	EnvLogLevel = "MOBISHOP_LOG_LEVEL"

	EnvDBDSN  = "MOBISHOP_DB_DSN"
	EnvDBHost = "MOBISHOP_DB_HOST"
	EnvDBUser = "MOBISHOP_DB_USER"
	EnvDBName = "MOBISHOP_DB_NAME"

	EnvRedisURL = "MOBISHOP_REDIS_URL"

	EnvUseSQLite  = "MOBISHOP_USE_SQLITE"
	EnvSQLitePath = "MOBISHOP_SQLITE_PATH"

	EnvDataAPIURL     = "MOBISHOP_DATA_API_URL"
	EnvDataAPITimeout = "MOBISHOP_DATA_API_TIMEOUT"

	EnvStripeAPIKey = "MOBISHOP_STRIPE_API_KEY"
	EnvStripeEnv    = "MOBISHOP_STRIPE_ENV"

	EnvMediaDir = "MOBISHOP_MEDIA_DIR"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package config

// EnvPrefix is applied by envconfig when processing the environment.
const EnvPrefix = "WWA"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names, kept in one place so tests and deploy docs
// reference the same strings as the envconfig tags.
const (
	EnvAppEnv       = "WWA_APP_ENV"
	EnvPort         = "WWA_APP_PORT"
	EnvLogLevel     = "WWA_LOG_LEVEL"
	EnvRecordsKey   = "WWA_RECORDS_API_KEY"
	EnvRecordsBase  = "WWA_RECORDS_BASE_ID"
	EnvRecordsTable = "WWA_RECORDS_TABLE"
	EnvRedisURL     = "WWA_REDIS_URL"
	EnvEmailKey     = "WWA_EMAIL_PUBLIC_KEY"
)

package config

const (
	EnvPrefix = "TANKSTORE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	StorageDriverLocal = "local"
	StorageDriverMinIO = "minio"
)

const (
	EnvAppEnv   = "TANKSTORE_APP_ENV"
	EnvPort     = "TANKSTORE_APP_PORT"
	EnvLogLevel = "TANKSTORE_LOG_LEVEL"

	EnvDBDSN    = "TANKSTORE_DB_DSN"
	EnvDBDriver = "TANKSTORE_DB_DRIVER"
	EnvDBHost   = "TANKSTORE_DB_HOST"
	EnvDBUser   = "TANKSTORE_DB_USER"
	EnvDBName   = "TANKSTORE_DB_NAME"

	EnvRedisURL = "TANKSTORE_REDIS_URL"

	EnvJWTSecret  = "TANKSTORE_JWT_SECRET"
	EnvJWTIssuer  = "TANKSTORE_JWT_ISSUER"
	EnvJWTExpMins = "TANKSTORE_JWT_EXPIRATION_MINUTES"

	EnvStorageDriver    = "TANKSTORE_STORAGE_DRIVER"
	EnvStorageLocalRoot = "TANKSTORE_STORAGE_LOCAL_ROOT"
	EnvMinIOEndpoint    = "TANKSTORE_MINIO_ENDPOINT"
	EnvMinIOAccessKey   = "TANKSTORE_MINIO_ACCESS_KEY"
	EnvMinIOSecretKey   = "TANKSTORE_MINIO_SECRET_KEY"

	EnvSweepGracePeriod = "TANKSTORE_SWEEP_GRACE_PERIOD"
	EnvAuthRequired     = "TANKSTORE_AUTH_REQUIRED"
	EnvCORSOrigins      = "TANKSTORE_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

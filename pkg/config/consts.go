package config

const (
	// EnvPrefix namespaces every environment variable read by envconfig.
	EnvPrefix = "SOLSTICE"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "SOLSTICE_APP_ENV"
	EnvPort   = "SOLSTICE_APP_PORT"

	EnvDBDSN  = "SOLSTICE_DB_DSN"
	EnvDBHost = "SOLSTICE_DB_HOST"
	EnvDBUser = "SOLSTICE_DB_USER"
	EnvDBName = "SOLSTICE_DB_NAME"

	EnvRedisURL  = "SOLSTICE_REDIS_URL"
	EnvJWTSecret = "SOLSTICE_JWT_SECRET"
	EnvJWTIssuer = "SOLSTICE_JWT_ISSUER"
)

// legacyDBEnvVars are the discrete connection vars accepted when a DSN is
// not provided.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package config

// EnvPrefix scopes every envconfig lookup for this service.
const EnvPrefix = "FARMSTAND"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "FARMSTAND_APP_ENV"
	EnvPort                   = "FARMSTAND_APP_PORT"
	EnvDBDSN                  = "FARMSTAND_DB_DSN"
	EnvDBHost                 = "FARMSTAND_DB_HOST"
	EnvDBUser                 = "FARMSTAND_DB_USER"
	EnvDBName                 = "FARMSTAND_DB_NAME"
	EnvRedisURL               = "FARMSTAND_REDIS_URL"
	EnvJWTSecret              = "FARMSTAND_JWT_SECRET"
	EnvJWTIssuer              = "FARMSTAND_JWT_ISSUER"
	EnvJWTExpMins             = "FARMSTAND_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "FARMSTAND_REFRESH_TOKEN_TTL_MINUTES"
	EnvGeminiAPIKey           = "FARMSTAND_GEMINI_API_KEY"
	EnvMediaBaseURL           = "FARMSTAND_MEDIA_BASE_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

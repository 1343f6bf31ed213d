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
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	RateLimit    RateLimitConfig
	Media        MediaConfig
	Gemini       GeminiConfig
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
	Env          string   `envconfig:"FARMSTAND_APP_ENV" required:"true"`
	Port         string   `envconfig:"FARMSTAND_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"FARMSTAND_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"FARMSTAND_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"FARMSTAND_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FARMSTAND_DB_DSN"`
	Driver string `envconfig:"FARMSTAND_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FARMSTAND_DB_HOST"`
	LegacyPort     int    `envconfig:"FARMSTAND_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FARMSTAND_DB_USER"`
	LegacyPassword string `envconfig:"FARMSTAND_DB_PASSWORD"`
	LegacyName     string `envconfig:"FARMSTAND_DB_NAME"`
	LegacySSLMode  string `envconfig:"FARMSTAND_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FARMSTAND_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FARMSTAND_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FARMSTAND_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FARMSTAND_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FARMSTAND_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FARMSTAND_REDIS_ADDR"`
	Password     string        `envconfig:"FARMSTAND_REDIS_PASSWORD"`
	DB           int           `envconfig:"FARMSTAND_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FARMSTAND_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FARMSTAND_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FARMSTAND_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FARMSTAND_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FARMSTAND_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"FARMSTAND_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"FARMSTAND_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"FARMSTAND_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"FARMSTAND_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FARMSTAND_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FARMSTAND_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FARMSTAND_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FARMSTAND_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FARMSTAND_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"FARMSTAND_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"FARMSTAND_AUTO_MIGRATE" default:"false"`
}

type RateLimitConfig struct {
	ExtractLimit  int64         `envconfig:"FARMSTAND_EXTRACT_RATE_LIMIT" default:"10"`
	ExtractWindow time.Duration `envconfig:"FARMSTAND_EXTRACT_RATE_WINDOW" default:"1m"`
}

type MediaConfig struct {
	// BaseURL prefixes stored image keys when building public URLs.
	BaseURL     string `envconfig:"FARMSTAND_MEDIA_BASE_URL"`
	MaxUploadMB int    `envconfig:"FARMSTAND_MAX_UPLOAD_MB" default:"5"`
}

type GeminiConfig struct {
	// APIKey has no default on purpose: the extraction endpoint stays
	// disabled unless a key is injected from the environment.
	APIKey        string `envconfig:"FARMSTAND_GEMINI_API_KEY"`
	PrimaryModel  string `envconfig:"FARMSTAND_GEMINI_PRIMARY_MODEL" default:"gemini-1.5-flash"`
	FallbackModel string `envconfig:"FARMSTAND_GEMINI_FALLBACK_MODEL" default:"gemini-1.5-pro"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
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

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	GCS           GCSConfig
	Media         MediaConfig
	PubSub        PubSubConfig
	Storefront    StorefrontConfig
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
	Env          string `envconfig:"SOLSTICE_APP_ENV" required:"true"`
	Port         string `envconfig:"SOLSTICE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SOLSTICE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SOLSTICE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SOLSTICE_DB_DSN"`
	Driver string `envconfig:"SOLSTICE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SOLSTICE_DB_HOST"`
	LegacyPort     int    `envconfig:"SOLSTICE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SOLSTICE_DB_USER"`
	LegacyPassword string `envconfig:"SOLSTICE_DB_PASSWORD"`
	LegacyName     string `envconfig:"SOLSTICE_DB_NAME"`
	LegacySSLMode  string `envconfig:"SOLSTICE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SOLSTICE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SOLSTICE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SOLSTICE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SOLSTICE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SOLSTICE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SOLSTICE_REDIS_ADDR"`
	Password     string        `envconfig:"SOLSTICE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SOLSTICE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SOLSTICE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SOLSTICE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SOLSTICE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SOLSTICE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SOLSTICE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SOLSTICE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SOLSTICE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"SOLSTICE_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SOLSTICE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SOLSTICE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SOLSTICE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SOLSTICE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SOLSTICE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"SOLSTICE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"SOLSTICE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"SOLSTICE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate   bool   `envconfig:"SOLSTICE_AUTO_MIGRATE" default:"false"`
	GCSAccessMode string `envconfig:"SOLSTICE_GCS_ACCESS_MODE" default:"public"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"SOLSTICE_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"SOLSTICE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"SOLSTICE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName        string        `envconfig:"SOLSTICE_GCS_BUCKET_NAME"`
	DownloadURLExpiry time.Duration `envconfig:"SOLSTICE_GCS_DOWNLOAD_URL_EXPIRY" default:"1h"`
}

type MediaConfig struct {
	MaxUploadMB      int `envconfig:"SOLSTICE_MAX_UPLOAD_MB" default:"10"`
	MaxImagesPerItem int `envconfig:"SOLSTICE_MEDIA_MAX_IMAGES_PER_ITEM" default:"8"`
}

type PubSubConfig struct {
	CatalogTopic string `envconfig:"SOLSTICE_PUBSUB_CATALOG_TOPIC" default:"catalog-events"`
}

// StorefrontConfig points browse sessions at a catalog API origin.
type StorefrontConfig struct {
	APIBaseURL     string        `envconfig:"SOLSTICE_STOREFRONT_API_BASE_URL" default:"http://localhost:8080"`
	RequestTimeout time.Duration `envconfig:"SOLSTICE_STOREFRONT_REQUEST_TIMEOUT" default:"10s"`
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

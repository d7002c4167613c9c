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
	Storage       StorageConfig
	Sweep         SweepConfig
	FeatureFlags  FeatureFlagsConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TANKSTORE_APP_ENV" required:"true"`
	Port         string `envconfig:"TANKSTORE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"TANKSTORE_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"TANKSTORE_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"TANKSTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TANKSTORE_DB_DSN"`
	Driver string `envconfig:"TANKSTORE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TANKSTORE_DB_HOST"`
	LegacyPort     int    `envconfig:"TANKSTORE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TANKSTORE_DB_USER"`
	LegacyPassword string `envconfig:"TANKSTORE_DB_PASSWORD"`
	LegacyName     string `envconfig:"TANKSTORE_DB_NAME"`
	LegacySSLMode  string `envconfig:"TANKSTORE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TANKSTORE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TANKSTORE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TANKSTORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TANKSTORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

// RedisConfig is optional; an empty URL disables login rate limiting and the cron lock.
type RedisConfig struct {
	URL          string        `envconfig:"TANKSTORE_REDIS_URL"`
	Address      string        `envconfig:"TANKSTORE_REDIS_ADDR"`
	Password     string        `envconfig:"TANKSTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"TANKSTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TANKSTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TANKSTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TANKSTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TANKSTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TANKSTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"TANKSTORE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TANKSTORE_JWT_ISSUER" default:"tankstore"`
	ExpirationMinutes int    `envconfig:"TANKSTORE_JWT_EXPIRATION_MINUTES" default:"720"`
}

func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TANKSTORE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TANKSTORE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TANKSTORE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TANKSTORE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TANKSTORE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"TANKSTORE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"TANKSTORE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"TANKSTORE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type StorageConfig struct {
	Driver       string `envconfig:"TANKSTORE_STORAGE_DRIVER" default:"local"`
	LocalRoot    string `envconfig:"TANKSTORE_STORAGE_LOCAL_ROOT" default:"./public"`
	PublicPrefix string `envconfig:"TANKSTORE_STORAGE_PUBLIC_PREFIX" default:"/uploads"`
	MaxUploadMB  int    `envconfig:"TANKSTORE_MAX_UPLOAD_MB" default:"20"`

	MinIOEndpoint  string `envconfig:"TANKSTORE_MINIO_ENDPOINT"`
	MinIOAccessKey string `envconfig:"TANKSTORE_MINIO_ACCESS_KEY"`
	MinIOSecretKey string `envconfig:"TANKSTORE_MINIO_SECRET_KEY"`
	MinIOBucket    string `envconfig:"TANKSTORE_MINIO_BUCKET" default:"tankstore"`
	MinIOUseSSL    bool   `envconfig:"TANKSTORE_MINIO_USE_SSL" default:"false"`
	MinIORegion    string `envconfig:"TANKSTORE_MINIO_REGION"`
}

// MaxUploadBytes bounds the multipart body accepted by upload endpoints.
func (s StorageConfig) MaxUploadBytes() int64 {
	if s.MaxUploadMB <= 0 {
		return 20 << 20
	}
	return int64(s.MaxUploadMB) << 20
}

func (s StorageConfig) IsMinIO() bool {
	return strings.EqualFold(s.Driver, StorageDriverMinIO)
}

func (s StorageConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Driver)) {
	case StorageDriverLocal:
		if strings.TrimSpace(s.LocalRoot) == "" {
			return fmt.Errorf("%s is required for the local storage driver", EnvStorageLocalRoot)
		}
	case StorageDriverMinIO:
		missing := []string{}
		if s.MinIOEndpoint == "" {
			missing = append(missing, EnvMinIOEndpoint)
		}
		if s.MinIOAccessKey == "" {
			missing = append(missing, EnvMinIOAccessKey)
		}
		if s.MinIOSecretKey == "" {
			missing = append(missing, EnvMinIOSecretKey)
		}
		if len(missing) > 0 {
			return fmt.Errorf("minio storage requires %s", strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", s.Driver)
	}
	return nil
}

type SweepConfig struct {
	GracePeriod time.Duration `envconfig:"TANKSTORE_SWEEP_GRACE_PERIOD" default:"24h"`
	Interval    time.Duration `envconfig:"TANKSTORE_SWEEP_INTERVAL" default:"1h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate  bool `envconfig:"TANKSTORE_AUTO_MIGRATE" default:"false"`
	AuthRequired bool `envconfig:"TANKSTORE_AUTH_REQUIRED" default:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"TANKSTORE_CORS_ALLOWED_ORIGINS" default:"*"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = "file:tankstore.db?_foreign_keys=on"
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

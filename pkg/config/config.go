package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Media        MediaConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WARDROBE_APP_ENV" default:"dev"`
	Port         string `envconfig:"WARDROBE_APP_PORT" default:"4000"`
	LogLevel     string `envconfig:"WARDROBE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WARDROBE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"WARDROBE_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"WARDROBE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WARDROBE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WARDROBE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WARDROBE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// JWTConfig carries the signing material for both token classes. The secret
// defaults are insecure placeholders kept for parity with local development;
// production deployments must override them.
type JWTConfig struct {
	AccessSecret      string `envconfig:"WARDROBE_JWT_SECRET" default:"default-secret"`
	RefreshSecret     string `envconfig:"WARDROBE_JWT_REFRESH_SECRET" default:"default-refresh-secret"`
	Issuer            string `envconfig:"WARDROBE_JWT_ISSUER" default:"wardrobe-api"`
	AccessTTLMinutes  int    `envconfig:"WARDROBE_JWT_EXPIRATION_MINUTES" default:"15"`
	RefreshTTLMinutes int    `envconfig:"WARDROBE_REFRESH_TOKEN_TTL_MINUTES" default:"10080"`
}

// AccessTTL returns the access token lifetime.
func (j JWTConfig) AccessTTL() time.Duration {
	if j.AccessTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.AccessTTLMinutes) * time.Minute
}

// RefreshTTL returns the refresh token lifetime.
func (j JWTConfig) RefreshTTL() time.Duration {
	if j.RefreshTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"WARDROBE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"WARDROBE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"WARDROBE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"WARDROBE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"WARDROBE_ARGON_KEY_LEN" default:"32"`
}

type MediaConfig struct {
	Dir            string `envconfig:"WARDROBE_MEDIA_DIR" default:"./uploads"`
	PublicPath     string `envconfig:"WARDROBE_MEDIA_PUBLIC_PATH" default:"/uploads"`
	MaxUploadBytes int64  `envconfig:"WARDROBE_MEDIA_MAX_UPLOAD_BYTES" default:"5242880"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"WARDROBE_CORS_ALLOWED_ORIGINS" default:"*"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"WARDROBE_AUTO_MIGRATE" default:"false"`
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

var (
	errMissingTokenSecrets = errors.New("api.access_token_secret and api.refresh_token_secret are required")
	errSameTokenSecrets    = errors.New("api.access_token_secret and api.refresh_token_secret must differ")
	errUnknownDriver       = errors.New("database.driver must be postgres or sqlite")
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Database *DatabaseConfig `mapstructure:"database"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Storage  *StorageConfig  `mapstructure:"storage"`

	v *viper.Viper
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	AccessTokenSecret  string        `mapstructure:"access_token_secret"`
	RefreshTokenSecret string        `mapstructure:"refresh_token_secret"`
	AccessTokenTTL     time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL    time.Duration `mapstructure:"refresh_token_ttl"`
}

// SecureCookies reports whether auth cookies must carry the Secure flag.
func (c *APIConfig) SecureCookies() bool {
	return c.Environment == EnvProduction
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"`
	URL        string `mapstructure:"url"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}

type StorageConfig struct {
	ImagesDir      string `mapstructure:"images_dir"`
	PublicPath     string `mapstructure:"public_path"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", EnvDevelopment)
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("api.access_token_secret", "")
	v.SetDefault("api.refresh_token_secret", "")
	v.SetDefault("api.access_token_ttl", 24*time.Hour)
	v.SetDefault("api.refresh_token_ttl", 7*24*time.Hour)

	v.SetDefault("gin.mode", "debug")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "")
	v.SetDefault("database.sqlite_path", "clubhouse.db")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.db", "clubhouse")
	v.SetDefault("postgres.ssl_mode", "disable")

	v.SetDefault("storage.images_dir", "./uploads/images")
	v.SetDefault("storage.public_path", "/uploads/images")
	v.SetDefault("storage.max_upload_bytes", 5<<20)
}

// Load reads the YAML file at path, when it exists, and overlays environment
// variables named after the keys (api.port -> API_PORT). DATABASE_URL maps to
// database.url.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("database.url", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("v.BindEnv -> %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err = v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
			}
		}
	}

	conf, err := decode(v)
	if err != nil {
		return nil, err
	}
	conf.v = v

	return conf, nil
}

func decode(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *AppConfig) validate() error {
	if c.API.AccessTokenSecret == "" || c.API.RefreshTokenSecret == "" {
		return errMissingTokenSecrets
	}
	if c.API.AccessTokenSecret == c.API.RefreshTokenSecret {
		return errSameTokenSecrets
	}

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return errUnknownDriver
	}

	return nil
}

// Watch re-reads the config file on every change and hands the new values to
// onChange. Invalid edits are logged and ignored.
func (c *AppConfig) Watch(onChange func(*AppConfig)) {
	if c.v == nil || c.v.ConfigFileUsed() == "" {
		return
	}

	c.v.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("config file changed", zap.String("file", e.Name), zap.String("op", e.Op.String()))

		next, err := decode(c.v)
		if err != nil {
			zap.L().Warn("ignoring invalid config change", zap.Error(err))
			return
		}
		onChange(next)
	})
	c.v.WatchConfig()
}

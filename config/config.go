package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	MailDriverLocal = "local"
	MailDriverRedis = "redis"
)

type Config struct {
	Mode   string `mapstructure:"mode" validate:"required,oneof=development production test"`
	Server struct {
		HTTPPort        string        `mapstructure:"httpPort" validate:"required,numeric"`
		Timeout         time.Duration `mapstructure:"httpTimeout" validate:"required"`
		ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
		RateLimit       int           `mapstructure:"rateLimit" validate:"gte=0"`
		AllowedOrigins  []string      `mapstructure:"allowedOrigins"`
	} `mapstructure:"server"`
	Store struct {
		Driver string `mapstructure:"driver" validate:"required,oneof=postgres memory"`
	} `mapstructure:"store"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			Password string `mapstructure:"password"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslMode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
			MaxConns int32  `mapstructure:"maxConns" validate:"gte=0"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Cache struct {
		CityTTL time.Duration `mapstructure:"cityTTL"`
	} `mapstructure:"cache"`
	Mail struct {
		Driver   string `mapstructure:"driver" validate:"required,oneof=local redis"`
		MailTo   string `mapstructure:"mailTo" validate:"required,email"`
		MailFrom string `mapstructure:"mailFrom" validate:"required,email"`
		Redis    struct {
			Addr     string `mapstructure:"addr"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
			Channel  string `mapstructure:"channel"`
		} `mapstructure:"redis"`
	} `mapstructure:"mail"`
	Metrics struct {
		Enabled bool   `mapstructure:"enabled"`
		Port    string `mapstructure:"port" validate:"required_if=Enabled true"`
	} `mapstructure:"metrics"`
}

// IsDevelopment reports whether the service runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Mode == "development"
}

func InitConfig() (Config, error) {
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// CITYINFO_STORE_DRIVER overrides store.driver, and so on.
	v.SetEnvPrefix("CITYINFO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		slog.Warn("File-based config not found, falling back to embedded config", slog.Any("error", err))
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	return load(v)
}

// Load reads configuration from raw YAML, applying the same validation as InitConfig.
func Load(raw []byte) (Config, error) {
	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Store.Driver == StoreDriverPostgres && cfg.Repositories.Postgres.Host == "" {
		return Config{}, fmt.Errorf("invalid config: repositories.postgres.host is required for the %s store", StoreDriverPostgres)
	}
	if cfg.Mail.Driver == MailDriverRedis && cfg.Mail.Redis.Addr == "" {
		return Config{}, fmt.Errorf("invalid config: mail.redis.addr is required for the %s mail driver", MailDriverRedis)
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	return cfg, nil
}

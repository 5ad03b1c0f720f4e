package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/comitanigiacomo/kanso-dashboard/internal/core/domain"
)

const (
	StorageMemory   = "memory"
	StorageLocal    = "local"
	StoragePostgres = "postgres"
)

type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type Config struct {
	Port    string
	Storage string
	DB      DBConfig
	Redis   RedisConfig

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration
	LocalUser string

	LocalPath string
	Location  *time.Location

	MissionTotalDays     int
	MissionStartDate     domain.DayKey
	LearningLookbackDays int

	LogLevel   string
	RateLimit  int
	RateWindow time.Duration
	QueueSize  int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("storage", StorageLocal)

	v.SetDefault("db_driver", "pgx")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "kanso_user")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "kanso_db")
	v.SetDefault("db_sslmode", "disable")

	v.SetDefault("redis_enabled", false)
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_ttl", "30m")

	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_issuer", "kanso-dashboard")
	v.SetDefault("token_ttl", "72h")
	v.SetDefault("local_user", "local")

	v.SetDefault("local_path", "~/.kanso")
	v.SetDefault("timezone", "Local")

	v.SetDefault("mission_total_days", domain.DefaultMissionDays)
	v.SetDefault("mission_start_date", "")
	v.SetDefault("learning_lookback_days", 365)

	v.SetDefault("log_level", "info")
	v.SetDefault("rate_limit", 100)
	v.SetDefault("rate_window", "1m")
	v.SetDefault("queue_size", 100)
}

// Option overrides a key after every other source has been read.
type Option func(v *viper.Viper)

// WithStorage forces STORAGE, as the CLI --storage flag does. Empty keeps
// the configured value.
func WithStorage(storage string) Option {
	return func(v *viper.Viper) {
		if storage != "" {
			v.Set("storage", storage)
		}
	}
}

// Load reads envFile (if present), then an optional .kanso config file, then
// the process environment. Environment variables win over files and opts
// win over both.
func Load(envFile string, opts ...Option) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(".kanso")
	v.AddConfigPath(".")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	for _, opt := range opts {
		opt(v)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:    v.GetString("port"),
		Storage: strings.ToLower(v.GetString("storage")),
		DB: DBConfig{
			Driver:   v.GetString("db_driver"),
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis_enabled"),
			Host:     v.GetString("redis_host"),
			Port:     v.GetString("redis_port"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
			CacheTTL: v.GetDuration("cache_ttl"),
		},
		JWTSecret:            v.GetString("jwt_secret"),
		JWTIssuer:            v.GetString("jwt_issuer"),
		TokenTTL:             v.GetDuration("token_ttl"),
		LocalUser:            v.GetString("local_user"),
		MissionTotalDays:     v.GetInt("mission_total_days"),
		LearningLookbackDays: v.GetInt("learning_lookback_days"),
		LogLevel:             v.GetString("log_level"),
		RateLimit:            v.GetInt("rate_limit"),
		RateWindow:           v.GetDuration("rate_window"),
		QueueSize:            v.GetInt("queue_size"),
	}

	switch cfg.Storage {
	case StorageMemory, StorageLocal, StoragePostgres:
	default:
		return nil, fmt.Errorf("invalid STORAGE %q (memory, local or postgres)", cfg.Storage)
	}

	path, err := homedir.Expand(v.GetString("local_path"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOCAL_PATH: %w", err)
	}
	cfg.LocalPath = path

	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.MissionTotalDays <= 0 {
		return nil, fmt.Errorf("invalid MISSION_TOTAL_DAYS: %w", domain.ErrMissionInvalidDays)
	}
	if s := v.GetString("mission_start_date"); s != "" {
		day, err := domain.ParseDayKey(s)
		if err != nil {
			return nil, fmt.Errorf("invalid MISSION_START_DATE: %w", err)
		}
		cfg.MissionStartDate = day
	}

	if cfg.LocalUser == "" {
		cfg.LocalUser = "local"
	}

	if err := cfg.checkStorageUsers(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ErrLocalStorageMultiUser is returned when bearer tokens are enabled on top
// of the local blob store, which holds a single user's data.
var ErrLocalStorageMultiUser = errors.New("STORAGE=local holds a single user and cannot be combined with JWT_SECRET, use postgres or memory")

func (c *Config) checkStorageUsers() error {
	if c.Storage == StorageLocal && c.AuthEnabled() {
		return ErrLocalStorageMultiUser
	}
	return nil
}

// Validate repeats the cross-field checks of Load for configs built by hand.
func (c *Config) Validate() error {
	return c.checkStorageUsers()
}

// AuthEnabled reports whether requests must carry a bearer token. Without a
// secret every request is attributed to LocalUser.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

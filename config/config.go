package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Session SessionConfig
	Limit   LimitConfig
}

type AppConfig struct {
	Port     string
	Env      string
	Timezone string
	LogLevel string
}

// APIConfig points at the clinic REST API the pages talk to.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type CacheConfig struct {
	ReferenceTTL time.Duration
	PageTTL      time.Duration
	// SyncInterval is how often reference dictionaries are refreshed in
	// the background. Zero disables the refresher.
	SyncInterval time.Duration
}

type SessionConfig struct {
	CookieName string
	Secret     string
}

// LimitConfig throttles login and page mounts per client address. A zero
// rate disables throttling.
type LimitConfig struct {
	Rate  float64
	Burst int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_TIMEZONE", "Europe/Moscow")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("API_BASE_URL", "http://localhost:8000")
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("SESSION_COOKIE", "access_token")
	viper.SetDefault("RATE_LIMIT", 5)
	viper.SetDefault("RATE_BURST", 20)

	// The .env file is optional, environment variables are enough in containers.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:     viper.GetString("APP_PORT"),
			Env:      viper.GetString("APP_ENV"),
			Timezone: viper.GetString("APP_TIMEZONE"),
			LogLevel: viper.GetString("LOG_LEVEL"),
		},
		API: APIConfig{
			BaseURL: viper.GetString("API_BASE_URL"),
			Timeout: parseDuration("API_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			ReferenceTTL: parseDuration("CACHE_TTL", 10*time.Minute),
			PageTTL:      parseDuration("PAGE_TTL", 30*time.Minute),
			SyncInterval: parseDuration("REFERENCE_SYNC_INTERVAL", 5*time.Minute),
		},
		Session: SessionConfig{
			CookieName: viper.GetString("SESSION_COOKIE"),
			Secret:     viper.GetString("SESSION_SECRET"),
		},
		Limit: LimitConfig{
			Rate:  viper.GetFloat64("RATE_LIMIT"),
			Burst: viper.GetInt("RATE_BURST"),
		},
	}

	return config, nil
}

// Location resolves the clinic time zone, falling back to UTC.
func (c AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}

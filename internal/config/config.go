package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Port      string `mapstructure:"PORT"`
	DBPath    string `mapstructure:"DB_PATH"`
	JWTSecret string `mapstructure:"JWT_SECRET"`
	Env       string `mapstructure:"ENV"`

	// RedisURL is optional; an empty value disables the analysis cache
	RedisURL string        `mapstructure:"REDIS_URL"`
	CacheTTL time.Duration `mapstructure:"CACHE_TTL"`

	DefaultPaceLimit float64 `mapstructure:"DEFAULT_PACE_LIMIT"`
	LocalTZ          string  `mapstructure:"LOCAL_TZ"`
	HRSampleSeconds  float64 `mapstructure:"HR_SAMPLE_SECONDS"`

	MaxUploadBytes int64         `mapstructure:"MAX_UPLOAD_BYTES"`
	RateLimit      int           `mapstructure:"RATE_LIMIT"`
	RateWindow     time.Duration `mapstructure:"RATE_WINDOW"`
}

// Load 加载配置. A value that cannot be decoded into its field is an error.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", ":8080")
	v.SetDefault("DB_PATH", "./data/runs.db")
	v.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	v.SetDefault("ENV", "development")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_TTL", 24*time.Hour)
	v.SetDefault("DEFAULT_PACE_LIMIT", 10.0)
	v.SetDefault("LOCAL_TZ", "Local")
	v.SetDefault("HR_SAMPLE_SECONDS", 1.0)
	v.SetDefault("MAX_UPLOAD_BYTES", int64(32<<20))
	v.SetDefault("RATE_LIMIT", 30)
	v.SetDefault("RATE_WINDOW", time.Minute)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Location resolves LOCAL_TZ, the zone trackpoint times are converted to
func (c *Config) Location() (*time.Location, error) {
	if c.LocalTZ == "" || c.LocalTZ == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.LocalTZ)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", c.LocalTZ, err)
	}
	return loc, nil
}

// SampleInterval is the time credited to a heart-rate sample without a successor
func (c *Config) SampleInterval() time.Duration {
	if c.HRSampleSeconds <= 0 {
		return time.Second
	}
	return time.Duration(c.HRSampleSeconds * float64(time.Second))
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	defaultSimThreshold      = 0.85
	defaultMaxRecent         = 15
	defaultTemplateCooldown  = 7 * 24 * 3600 * 1000
	defaultExactComboDays    = 30
	defaultMaxAttempts       = 3
	defaultSeedCacheSize     = 4096
	defaultRequestsPerMinute = 60
	defaultBurstSize         = 10
)

// Config holds the application's configuration
type Config struct {
	Port                    int           `mapstructure:"PORT"`
	LogLevel                string        `mapstructure:"LOG_LEVEL"`
	SimhashSimThreshold     float64       `mapstructure:"SIMHASH_SIM_THRESHOLD"`
	MaxRecent               int           `mapstructure:"MAX_RECENT"`
	TemplateCooldownMS      int64         `mapstructure:"TEMPLATE_COOLDOWN_MS"`
	ExactComboBlockDays     int           `mapstructure:"EXACT_COMBO_BLOCK_DAYS"`
	MaxAttempts             int           `mapstructure:"MAX_ATTEMPTS"`
	SymbolsPath             string        `mapstructure:"SYMBOLS_PATH"`
	CultureNotesPath        string        `mapstructure:"CULTURE_NOTES_PATH"`
	CleanupEnabled          bool          `mapstructure:"CLEANUP_ENABLED"`
	CleanupIntervalMinutes  int           `mapstructure:"CLEANUP_INTERVAL"`
	CleanupInterval         time.Duration `mapstructure:"-"`
	RateLimitRequestsPerMin int           `mapstructure:"RATE_LIMIT_REQUESTS_PER_MIN"`
	RateLimitBurstSize      int           `mapstructure:"RATE_LIMIT_BURST_SIZE"`
	SeedCacheSize           int           `mapstructure:"SEED_CACHE_SIZE"`
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	return &Config{
		Port:                    3000,
		LogLevel:                "info",
		SimhashSimThreshold:     defaultSimThreshold,
		MaxRecent:               defaultMaxRecent,
		TemplateCooldownMS:      defaultTemplateCooldown,
		ExactComboBlockDays:     defaultExactComboDays,
		MaxAttempts:             defaultMaxAttempts,
		SymbolsPath:             "./data/symbols.json",
		CultureNotesPath:        "./data/culture_notes.json",
		CleanupEnabled:          true,
		CleanupIntervalMinutes:  60,
		CleanupInterval:         time.Hour,
		RateLimitRequestsPerMin: defaultRequestsPerMinute,
		RateLimitBurstSize:      defaultBurstSize,
		SeedCacheSize:           defaultSeedCacheSize,
	}
}

// TemplateCooldown is TEMPLATE_COOLDOWN_MS as a duration.
func (c *Config) TemplateCooldown() time.Duration {
	return time.Duration(c.TemplateCooldownMS) * time.Millisecond
}

// ExactComboWindow is EXACT_COMBO_BLOCK_DAYS as a duration.
func (c *Config) ExactComboWindow() time.Duration {
	return time.Duration(c.ExactComboBlockDays) * 24 * time.Hour
}

func Load(logger *zap.Logger) *Config {
	if err := godotenv.Load(); err != nil && logger != nil {
		logger.Debug("No .env file found, falling back to system environment variables")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")        // For running locally
	v.AddConfigPath("../")      // For running from docker subdir
	v.AddConfigPath("./config") // Common config folder
	v.AutomaticEnv()

	setDefaults(v, Default())

	if err := v.ReadInConfig(); err != nil {
		if logger != nil {
			logger.Warn("Could not read config file, using defaults/env vars", zap.Error(err))
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		// Config unmarshaling is critical - fail fast during bootstrap
		if logger != nil {
			logger.Fatal("Unable to decode config into struct", zap.Error(err))
		} else {
			fmt.Fprintf(os.Stderr, "FATAL: Unable to decode config into struct: %v\n", err)
			os.Exit(1)
		}
	}

	// CLEANUP_INTERVAL is configured in minutes
	config.CleanupInterval = time.Duration(config.CleanupIntervalMinutes) * time.Minute

	config.sanitize(logger)
	return &config
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("PORT", d.Port)
	v.SetDefault("LOG_LEVEL", d.LogLevel)
	v.SetDefault("SIMHASH_SIM_THRESHOLD", d.SimhashSimThreshold)
	v.SetDefault("MAX_RECENT", d.MaxRecent)
	v.SetDefault("TEMPLATE_COOLDOWN_MS", d.TemplateCooldownMS)
	v.SetDefault("EXACT_COMBO_BLOCK_DAYS", d.ExactComboBlockDays)
	v.SetDefault("MAX_ATTEMPTS", d.MaxAttempts)
	v.SetDefault("SYMBOLS_PATH", d.SymbolsPath)
	v.SetDefault("CULTURE_NOTES_PATH", d.CultureNotesPath)
	v.SetDefault("CLEANUP_ENABLED", d.CleanupEnabled)
	v.SetDefault("CLEANUP_INTERVAL", d.CleanupIntervalMinutes)
	v.SetDefault("RATE_LIMIT_REQUESTS_PER_MIN", d.RateLimitRequestsPerMin)
	v.SetDefault("RATE_LIMIT_BURST_SIZE", d.RateLimitBurstSize)
	v.SetDefault("SEED_CACHE_SIZE", d.SeedCacheSize)
}

// sanitize replaces out-of-range values with their defaults.
func (c *Config) sanitize(logger *zap.Logger) {
	warn := func(key string, got interface{}, want interface{}) {
		if logger != nil {
			logger.Warn("Invalid config value, using default",
				zap.String("key", key),
				zap.Any("value", got),
				zap.Any("default", want))
		}
	}

	if c.SimhashSimThreshold < 0 || c.SimhashSimThreshold > 1 {
		warn("SIMHASH_SIM_THRESHOLD", c.SimhashSimThreshold, defaultSimThreshold)
		c.SimhashSimThreshold = defaultSimThreshold
	}
	if c.MaxRecent < 0 {
		warn("MAX_RECENT", c.MaxRecent, defaultMaxRecent)
		c.MaxRecent = defaultMaxRecent
	}
	if c.TemplateCooldownMS < 0 {
		warn("TEMPLATE_COOLDOWN_MS", c.TemplateCooldownMS, defaultTemplateCooldown)
		c.TemplateCooldownMS = defaultTemplateCooldown
	}
	if c.ExactComboBlockDays < 0 {
		warn("EXACT_COMBO_BLOCK_DAYS", c.ExactComboBlockDays, defaultExactComboDays)
		c.ExactComboBlockDays = defaultExactComboDays
	}
	// Zero attempts is allowed and means every request takes the fallback path.
	if c.MaxAttempts < 0 {
		warn("MAX_ATTEMPTS", c.MaxAttempts, defaultMaxAttempts)
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.SeedCacheSize <= 0 {
		warn("SEED_CACHE_SIZE", c.SeedCacheSize, defaultSeedCacheSize)
		c.SeedCacheSize = defaultSeedCacheSize
	}
	if c.RateLimitRequestsPerMin <= 0 {
		warn("RATE_LIMIT_REQUESTS_PER_MIN", c.RateLimitRequestsPerMin, defaultRequestsPerMinute)
		c.RateLimitRequestsPerMin = defaultRequestsPerMinute
	}
	if c.RateLimitBurstSize <= 0 {
		warn("RATE_LIMIT_BURST_SIZE", c.RateLimitBurstSize, defaultBurstSize)
		c.RateLimitBurstSize = defaultBurstSize
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = time.Hour
	}
}

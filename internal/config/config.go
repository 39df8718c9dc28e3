package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	CORS     CORSConfig     `yaml:"cors"`
	Reaction ReactionConfig `yaml:"reaction"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port            int    `yaml:"port" validate:"min=1,max=65535"`
	Mode            string `yaml:"mode" validate:"omitempty,oneof=debug release test"`
	ShutdownTimeout int    `yaml:"shutdown_timeout" validate:"min=0"` // seconds
}

// DatabaseConfig database connection settings
type DatabaseConfig struct {
	Driver          string `yaml:"driver" validate:"oneof=mysql postgres"`
	DSN             string `yaml:"dsn" validate:"required"`
	MaxIdleConns    int    `yaml:"max_idle_conns" validate:"min=0"`
	MaxOpenConns    int    `yaml:"max_open_conns" validate:"min=0"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" validate:"min=0"` // seconds
	LogLevel        string `yaml:"log_level" validate:"omitempty,oneof=silent error warn info"`
}

// RedisConfig redis connection settings. Empty Addr disables caching.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"min=0"`
	PoolSize int    `yaml:"pool_size" validate:"min=0"`
}

// JWTConfig token verification settings
type JWTConfig struct {
	Secret string `yaml:"secret" validate:"required"`
}

// CORSConfig allowed origins
type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins" validate:"required,min=1,dive,required"`
}

// ReactionConfig point constants, cache TTL and write limit of the reaction engines
type ReactionConfig struct {
	EntryPoints        int `yaml:"entry_points" validate:"min=0"`
	AnswerPoints       int `yaml:"answer_points" validate:"min=0"`
	QuestionLikePoints int `yaml:"question_like_points" validate:"min=0"`
	TallyCacheTTL      int `yaml:"tally_cache_ttl" validate:"min=0"`  // seconds
	WriteRateLimit     int `yaml:"write_rate_limit" validate:"min=0"` // per member per minute, 0 disables
}

// LogConfig logger settings
type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the configuration used when a field is absent from the file
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, Mode: "release", ShutdownTimeout: 10},
		Database: DatabaseConfig{
			Driver:          "postgres",
			MaxIdleConns:    10,
			MaxOpenConns:    50,
			ConnMaxLifetime: 300,
			LogLevel:        "warn",
		},
		Redis: RedisConfig{PoolSize: 10},
		CORS:  CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
		Reaction: ReactionConfig{
			EntryPoints:        2,
			AnswerPoints:       5,
			QuestionLikePoints: 5,
			TallyCacheTTL:      60,
			WriteRateLimit:     60,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path on top of Default, applies environment overrides and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides secrets and endpoints from the environment
func applyEnv(cfg *Config) error {
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	return nil
}

// Validate checks struct constraints on the loaded configuration
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// TallyTTL returns the tally cache TTL as a duration
func (c ReactionConfig) TallyTTL() time.Duration {
	return time.Duration(c.TallyCacheTTL) * time.Second
}

// LogResolved logs the effective configuration without secrets
func LogResolved(log *zerolog.Logger, cfg *Config) {
	log.Info().
		Int("port", cfg.Server.Port).
		Str("db_driver", cfg.Database.Driver).
		Bool("redis", cfg.Redis.Addr != "").
		Int("entry_points", cfg.Reaction.EntryPoints).
		Int("answer_points", cfg.Reaction.AnswerPoints).
		Int("question_like_points", cfg.Reaction.QuestionLikePoints).
		Msg("config resolved")
}

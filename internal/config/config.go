// Package config loads proofreader settings from an optional YAML file,
// a .env file and PROOFREADER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/valpere/proofreader/internal/dictionary"
	"github.com/valpere/proofreader/internal/provider"
)

// EnvPrefix prefixes every environment variable read by Load, e.g.
// PROOFREADER_LLM_MODEL for llm.model.
const EnvPrefix = "PROOFREADER"

// Config holds all runtime configuration.
type Config struct {
	Provider   string                 `mapstructure:"provider"`
	Workers    int                    `mapstructure:"workers"`
	LLM        provider.ServiceConfig `mapstructure:"llm"`
	Dictionary dictionary.Config      `mapstructure:"dictionary"`
	Server     ServerConfig           `mapstructure:"server"`
	Log        LogConfig              `mapstructure:"log"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// MaxBodyBytes caps the size of an HTTP request body.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text or json
}

// SetDefaults registers the default value of every key on v. Keys need a
// default for AutomaticEnv to see them during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("provider", provider.NameMock)
	v.SetDefault("workers", 4)

	v.SetDefault("llm.backend", "openrouter")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.temperature", 0.1)
	v.SetDefault("llm.max_tokens", 800)
	v.SetDefault("llm.requests_per_second", 1.0)
	v.SetDefault("llm.language", "")
	v.SetDefault("llm.protect_markup", true)
	v.SetDefault("llm.guard_language", false)

	v.SetDefault("dictionary.backend", "sqlite")
	v.SetDefault("dictionary.path", "./data/proofreader.db")
	v.SetDefault("dictionary.redis_addr", "localhost:6379")
	v.SetDefault("dictionary.redis_password", "")
	v.SetDefault("dictionary.redis_db", 0)
	v.SetDefault("dictionary.redis_key", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 5*time.Minute)
	v.SetDefault("server.max_body_bytes", 1<<20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// New returns a viper instance with defaults and environment binding set up.
// When path is non-empty the YAML (or any viper-supported) file is read;
// otherwise ./proofreader.yaml is used if present. A .env file in the
// working directory is loaded first, best-effort.
func New(path string) (*viper.Viper, error) {
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("proofreader")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// Decode unmarshals v into a Config, fills the API key from the bare
// OPENROUTER_API_KEY / ANTHROPIC_API_KEY variables when unset, and validates
// the result.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		switch strings.ToLower(cfg.LLM.Backend) {
		case "", "openrouter":
			cfg.LLM.APIKey = strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY"))
		case "anthropic":
			cfg.LLM.APIKey = strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load is New followed by Decode.
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Provider) {
	case provider.NameMock, provider.NameLLM:
	default:
		return fmt.Errorf("invalid provider %q: want mock or llm", c.Provider)
	}
	switch strings.ToLower(c.LLM.Backend) {
	case "openrouter", "ollama", "anthropic":
	default:
		return fmt.Errorf("invalid llm.backend %q: want openrouter, ollama or anthropic", c.LLM.Backend)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// NewLogger builds the slog logger described by c, writing to w.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log.level %q: %w", s, err)
	}
	return level, nil
}

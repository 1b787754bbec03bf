// Package dictionary stores protected words: names, acronyms and jargon that
// correction providers must leave untouched.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyWord is returned when adding a blank word.
var ErrEmptyWord = errors.New("word is empty")

// Store is a set of protected words.
type Store interface {
	Add(ctx context.Context, word string) error
	Remove(ctx context.Context, word string) error
	Words(ctx context.Context) ([]string, error)
	Close() error
}

// Config selects and configures a Store backend.
type Config struct {
	Backend string `mapstructure:"backend" json:"backend"` // sqlite, redis or none
	Path    string `mapstructure:"path" json:"path"`

	RedisAddr     string `mapstructure:"redis_addr" json:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password" json:"-"`
	RedisDB       int    `mapstructure:"redis_db" json:"redis_db"`
	RedisKey      string `mapstructure:"redis_key" json:"redis_key"`
}

// Open returns the configured Store. Backend "none" (or empty) yields a nil
// Store and no error; callers treat that as an empty dictionary.
func Open(cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "none":
		return nil, nil
	case "sqlite":
		return NewSQLite(cfg.Path)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return NewRedis(client, cfg.RedisKey), nil
	default:
		return nil, fmt.Errorf("unknown dictionary backend %q", cfg.Backend)
	}
}

// Load returns the words of s, or nil for a nil Store.
func Load(ctx context.Context, s Store) ([]string, error) {
	if s == nil {
		return nil, nil
	}
	return s.Words(ctx)
}

// normalizeWord trims whitespace and applies Unicode NFC normalization so
// that visually identical words share one entry.
func normalizeWord(word string) string {
	return norm.NFC.String(strings.TrimSpace(word))
}

package dictionary

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"
)

const defaultRedisKey = "proofreader:protected_words"

// Redis keeps protected words in a Redis set so several instances can share
// one dictionary.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis wraps client. An empty key uses the default set name.
func NewRedis(client *redis.Client, key string) *Redis {
	if key == "" {
		key = defaultRedisKey
	}
	return &Redis{client: client, key: key}
}

func (r *Redis) Add(ctx context.Context, word string) error {
	word = normalizeWord(word)
	if word == "" {
		return ErrEmptyWord
	}
	return r.client.SAdd(ctx, r.key, word).Err()
}

func (r *Redis) Remove(ctx context.Context, word string) error {
	return r.client.SRem(ctx, r.key, normalizeWord(word)).Err()
}

// Words returns the set members sorted alphabetically.
func (r *Redis) Words(ctx context.Context) ([]string, error) {
	words, err := r.client.SMembers(ctx, r.key).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(words)
	return words, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

package dictionary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/redis/go-redis/v9"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "dict.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_New_InvalidPath(t *testing.T) {
	if _, err := NewSQLite("/nonexistent/path/dict.db"); err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestSQLite_AddAndWords(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	for _, w := range []string{"Kyiv", "  OpenRouter ", "LaTeX", "Kyiv"} {
		if err := s.Add(ctx, w); err != nil {
			t.Fatalf("Add(%q): %v", w, err)
		}
	}

	words, err := s.Words(ctx)
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	want := []string{"Kyiv", "LaTeX", "OpenRouter"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("Words = %q, want %q", words, want)
	}
}

func TestSQLite_AddEmpty(t *testing.T) {
	s := newTestSQLite(t)
	if err := s.Add(context.Background(), "   "); !errors.Is(err, ErrEmptyWord) {
		t.Errorf("expected ErrEmptyWord, got %v", err)
	}
}

func TestSQLite_NormalizesUnicode(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	// "é" precomposed and decomposed collapse into one entry.
	if err := s.Add(ctx, "caf\u00e9"); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(ctx, "cafe\u0301"); err != nil {
		t.Fatal(err)
	}
	words, _ := s.Words(ctx)
	if len(words) != 1 {
		t.Errorf("expected 1 normalized entry, got %q", words)
	}
}

func TestSQLite_Remove(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	s.Add(ctx, "alpha")
	s.Add(ctx, "beta")

	if err := s.Remove(ctx, "alpha"); err != nil {
		t.Fatalf("Remove by word: %v", err)
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Word != "beta" {
		t.Fatalf("unexpected entries %+v", entries)
	}

	if err := s.Remove(ctx, entries[0].ID); err != nil {
		t.Fatalf("Remove by ID: %v", err)
	}
	words, _ := s.Words(ctx)
	if len(words) != 0 {
		t.Errorf("expected empty dictionary, got %q", words)
	}
}

func TestOpen(t *testing.T) {
	s, err := Open(Config{Backend: "none"})
	if err != nil || s != nil {
		t.Errorf("Open(none) = %v, %v; want nil, nil", s, err)
	}

	if _, err := Open(Config{Backend: "postgres"}); err == nil {
		t.Error("expected error for unknown backend")
	}

	s, err = Open(Config{Backend: "sqlite", Path: filepath.Join(t.TempDir(), "d.db")})
	if err != nil {
		t.Fatalf("Open(sqlite): %v", err)
	}
	defer s.Close()
	if _, ok := s.(*SQLite); !ok {
		t.Errorf("expected *SQLite, got %T", s)
	}
}

func TestLoad_NilStore(t *testing.T) {
	words, err := Load(context.Background(), nil)
	if err != nil || words != nil {
		t.Errorf("Load(nil) = %v, %v", words, err)
	}
}

func TestRedis_RoundTrip(t *testing.T) {
	addr := os.Getenv("PROOFREADER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("PROOFREADER_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	key := "proofreader:test:" + t.Name()
	r := NewRedis(redis.NewClient(&redis.Options{Addr: addr}), key)
	defer r.Close()
	defer r.client.Del(ctx, key)

	if err := r.Add(ctx, "zeta"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Add(ctx, "alpha"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Remove(ctx, "zeta"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	words, err := r.Words(ctx)
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	if !reflect.DeepEqual(words, []string{"alpha"}) {
		t.Errorf("Words = %q", words)
	}
}

func TestNewRedis_DefaultKey(t *testing.T) {
	r := NewRedis(redis.NewClient(&redis.Options{Addr: "localhost:0"}), "")
	defer r.Close()
	if r.key != defaultRedisKey {
		t.Errorf("expected default key, got %q", r.key)
	}
}

// Package provider defines the correction capability used by the
// proofreading pipeline and its implementations: a deterministic rule-based
// mock and LLM-backed correctors (OpenRouter, Ollama, Anthropic).
package provider

import (
	"context"
	"errors"
	"net"
	"time"
)

// Provider maps one sentence to its corrected form.
type Provider interface {
	Name() string
	Correct(ctx context.Context, sentence string) (string, error)
}

// Func adapts a plain function to Provider.
type Func func(ctx context.Context, sentence string) (string, error)

func (f Func) Name() string { return "func" }

func (f Func) Correct(ctx context.Context, sentence string) (string, error) {
	return f(ctx, sentence)
}

var (
	// ErrUnavailable covers network, authentication and protocol failures.
	ErrUnavailable = errors.New("provider unavailable")
	// ErrTimeout means the provider's own deadline expired.
	ErrTimeout = errors.New("provider timeout")
	// ErrRejected means a correction came back but failed a sanity check.
	ErrRejected = errors.New("correction rejected")
	// ErrUnknownProvider is returned by New for an unsupported name.
	ErrUnknownProvider = errors.New("unknown provider")
)

// Kind is the failure class of a provider error, used for logging.
type Kind string

const (
	KindUnavailable Kind = "unavailable"
	KindTimeout     Kind = "timeout"
	KindRejected    Kind = "rejected"
	KindCanceled    Kind = "canceled"
)

// Classify maps err onto a Kind. Errors that match no sentinel count as
// unavailable.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrRejected):
		return KindRejected
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return KindTimeout
	}
	return KindUnavailable
}

// ServiceConfig configures the LLM-backed providers.
type ServiceConfig struct {
	Backend     string        `mapstructure:"backend" json:"backend"`
	APIKey      string        `mapstructure:"api_key" json:"-"`
	Model       string        `mapstructure:"model" json:"model"`
	BaseURL     string        `mapstructure:"base_url" json:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout"`
	Temperature float64       `mapstructure:"temperature" json:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens" json:"max_tokens"`
	// RequestsPerSecond paces calls to the backend; zero or less disables it.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" json:"requests_per_second"`
	// Language is a BCP 47 tag naming the language of the text, if known.
	Language      string `mapstructure:"language" json:"language"`
	ProtectMarkup bool   `mapstructure:"protect_markup" json:"protect_markup"`
	GuardLanguage bool   `mapstructure:"guard_language" json:"guard_language"`
}

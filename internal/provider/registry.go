package provider

import (
	"fmt"
	"strings"

	"github.com/valpere/proofreader/internal/validator"
)

const (
	NameMock = "mock"
	NameLLM  = "llm"
)

// New builds the provider called name. "llm" picks its backend from
// cfg.Backend (openrouter when empty) and applies the guards cfg asks for.
func New(name string, cfg ServiceConfig, protected []string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameMock, "":
		return NewMock(protected), nil
	case NameLLM:
		c, err := NewCompleter(cfg)
		if err != nil {
			return nil, err
		}
		l, err := NewLLM(c, cfg, protected)
		if err != nil {
			return nil, err
		}
		var p Provider = l
		if cfg.ProtectMarkup {
			p = WithPlaceholders(p)
		}
		if cfg.GuardLanguage {
			p = WithLanguageGuard(p, validator.New(nil))
		}
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
}

// NewCompleter returns the chat backend named by cfg.Backend.
func NewCompleter(cfg ServiceConfig) (Completer, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "openrouter":
		return NewOpenRouter(cfg), nil
	case "ollama":
		return NewOllama(cfg), nil
	case "anthropic":
		return NewAnthropic(cfg), nil
	}
	return nil, fmt.Errorf("%w: llm backend %q", ErrUnknownProvider, cfg.Backend)
}

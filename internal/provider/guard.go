package provider

import (
	"context"
	"fmt"

	"github.com/valpere/proofreader/internal/placeholder"
	"github.com/valpere/proofreader/internal/validator"
)

type placeholderGuard struct {
	next Provider
}

// WithPlaceholders swaps markup for [PHn] markers before calling p and puts
// it back afterwards. A correction that drops a marker is rejected.
func WithPlaceholders(p Provider) Provider {
	return &placeholderGuard{next: p}
}

func (g *placeholderGuard) Name() string { return g.next.Name() }

func (g *placeholderGuard) Correct(ctx context.Context, sentence string) (string, error) {
	protected, markers := placeholder.Protect(sentence)
	if len(markers) == 0 {
		return g.next.Correct(ctx, sentence)
	}

	corrected, err := g.next.Correct(ctx, protected)
	if err != nil {
		return "", err
	}
	if missing := placeholder.Validate(corrected, markers); len(missing) > 0 {
		return "", fmt.Errorf("%w: %d protected markup span(s) dropped", ErrRejected, len(missing))
	}
	return placeholder.Restore(corrected, markers), nil
}

type languageGuard struct {
	next      Provider
	validator *validator.Validator
}

// WithLanguageGuard rejects corrections whose detected language differs
// from the original sentence.
func WithLanguageGuard(p Provider, v *validator.Validator) Provider {
	if v == nil {
		v = validator.New(nil)
	}
	return &languageGuard{next: p, validator: v}
}

func (g *languageGuard) Name() string { return g.next.Name() }

func (g *languageGuard) Correct(ctx context.Context, sentence string) (string, error) {
	corrected, err := g.next.Correct(ctx, sentence)
	if err != nil {
		return "", err
	}
	if err := g.validator.SameLanguage(sentence, corrected); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRejected, err)
	}
	return corrected, nil
}

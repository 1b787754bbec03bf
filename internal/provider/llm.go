package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/time/rate"

	"github.com/valpere/proofreader/internal/placeholder"
	"github.com/valpere/proofreader/internal/postprocess"
)

// Prompt is a single-turn chat request.
type Prompt struct {
	System string
	User   string
}

// Completer sends a prompt to a chat model and returns its raw reply.
type Completer interface {
	Name() string
	Complete(ctx context.Context, p Prompt) (string, error)
}

// LLM turns a Completer into a Provider. It paces calls, bounds each call
// with its own timeout, builds the proofreading prompt and strips chatter
// from the reply.
type LLM struct {
	completer Completer
	limiter   *rate.Limiter
	timeout   time.Duration
	language  string
	protected []string
	markup    bool
}

// NewLLM wraps c. An invalid cfg.Language tag is an error.
func NewLLM(c Completer, cfg ServiceConfig, protected []string) (*LLM, error) {
	l := &LLM{
		completer: c,
		timeout:   cfg.Timeout,
		protected: protected,
		markup:    cfg.ProtectMarkup,
	}
	if cfg.RequestsPerSecond > 0 {
		l.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	if cfg.Language != "" {
		name, err := languageName(cfg.Language)
		if err != nil {
			return nil, err
		}
		l.language = name
	}
	return l, nil
}

func (l *LLM) Name() string { return l.completer.Name() }

func (l *LLM) Correct(ctx context.Context, sentence string) (string, error) {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", fmt.Errorf("%w: %s: %v", ErrTimeout, l.Name(), err)
		}
	}

	callCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	raw, err := l.completer.Complete(callCtx, l.prompt(sentence))
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) || Classify(err) == KindTimeout {
			return "", fmt.Errorf("%w: %s: %v", ErrTimeout, l.Name(), err)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrUnavailable, l.Name(), err)
	}

	corrected := postprocess.Clean(raw)
	if corrected == "" {
		return "", fmt.Errorf("%w: %s: empty response", ErrUnavailable, l.Name())
	}
	return corrected, nil
}

func (l *LLM) prompt(sentence string) Prompt {
	return Prompt{System: buildSystemPrompt(l.language, l.protected, l.markup), User: sentence}
}

// buildSystemPrompt constructs the proofreading instructions, optionally
// naming the text language, the words that must not change and the marker
// rule for protected markup.
func buildSystemPrompt(lang string, protected []string, markup bool) string {
	var sb strings.Builder

	sb.WriteString("You are a professional proofreader and editor.\n")
	if lang != "" {
		sb.WriteString(fmt.Sprintf("The sentence is written in %s. Keep it in %s.\n", lang, lang))
	}
	sb.WriteString("Correct grammar, spelling and punctuation in the sentence only.\n")
	sb.WriteString("Preserve the meaning and tone. Keep it a single sentence where possible.\n")
	sb.WriteString("Do not modify LaTeX commands or math such as \\cite{}, \\ref{} or $...$.\n")
	sb.WriteString("If no corrections are needed, return the sentence exactly as given.\n")
	sb.WriteString("Only respond with the corrected sentence, nothing else. No explanations, no quotes.")

	if len(protected) > 0 {
		sb.WriteString("\n\nPROTECTED WORDS (never change these):\n")
		for _, w := range protected {
			sb.WriteString(fmt.Sprintf("  %s\n", w))
		}
	}

	if markup {
		sb.WriteString("\n")
		sb.WriteString(placeholder.InstructionHint())
	}

	return sb.String()
}

// languageName resolves a BCP 47 tag to its English display name.
func languageName(tag string) (string, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("invalid language %q: %w", tag, err)
	}
	name := display.English.Tags().Name(t)
	if name == "" {
		return tag, nil
	}
	return name, nil
}

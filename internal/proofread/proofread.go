// Package proofread runs the proofreading pipeline: it segments text into
// sentences, corrects each one through a provider, diffs every
// original/corrected pair and rebuilds the final text.
package proofread

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/valpere/proofreader/internal/diff"
	"github.com/valpere/proofreader/internal/provider"
	"github.com/valpere/proofreader/internal/segment"
)

// ErrEmptyInput is returned by callers that reject blank text before
// running the pipeline.
var ErrEmptyInput = errors.New("input text is empty")

const DefaultWorkers = 4

// SentenceDiff is the correction of one sentence.
type SentenceDiff struct {
	Original      string        `json:"original"`
	Corrected     string        `json:"corrected"`
	Changes       []diff.Change `json:"changes"`
	SentenceIndex int           `json:"sentence_index"`
	// Separator is the whitespace that followed the sentence in the input.
	// It is empty for the last sentence.
	Separator string `json:"separator,omitempty"`
	Verbatim  bool   `json:"verbatim,omitempty"`
	Provider  string `json:"provider,omitempty"`
	// Error describes a provider failure; Corrected equals Original then.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of proofreading one text.
type Result struct {
	SentenceDiffs []SentenceDiff `json:"sentence_diffs"`
	FinalText     string         `json:"final_text"`
	// TotalChanges counts non-equal changes, so a replaced word counts twice.
	TotalChanges int `json:"total_changes"`
	Failed       int `json:"failed"`
}

// Assembler drives a Provider over every sentence of a text.
type Assembler struct {
	provider provider.Provider
	workers  int
	log      *slog.Logger
}

type Option func(*Assembler)

// WithWorkers bounds the number of concurrent provider calls.
func WithWorkers(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.workers = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.log = l
		}
	}
}

func New(p provider.Provider, opts ...Option) *Assembler {
	a := &Assembler{
		provider: p,
		workers:  DefaultWorkers,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble proofreads text. A failing provider call leaves its sentence
// unchanged and is counted in Result.Failed. Cancelling ctx abandons the
// run and returns ctx.Err() with no partial result.
func (a *Assembler) Assemble(ctx context.Context, text string) (*Result, error) {
	start := time.Now()

	spans := segment.Segment(text)
	if err := segment.Verify(text, spans); err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}
	gaps := segment.Gaps(text, spans)

	diffs := make([]SentenceDiff, len(spans))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, span := range spans {
		sep := ""
		if i < len(spans)-1 {
			sep = gaps[i+1]
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			diffs[i] = a.correct(gctx, span, sep)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{SentenceDiffs: diffs}
	for _, d := range diffs {
		res.TotalChanges += diff.CountChanges(d.Changes)
		if d.Error != "" {
			res.Failed++
		}
	}
	res.FinalText = Reconstruct(diffs, nil)

	a.log.Info("proofread complete",
		"provider", a.provider.Name(),
		"sentences", len(diffs),
		"changes", res.TotalChanges,
		"failed", res.Failed,
		"duration", time.Since(start),
	)
	return res, nil
}

func (a *Assembler) correct(ctx context.Context, span segment.Span, sep string) SentenceDiff {
	sd := SentenceDiff{
		Original:      span.Text,
		Corrected:     span.Text,
		SentenceIndex: span.Index,
		Separator:     sep,
		Verbatim:      span.Verbatim,
	}

	if !span.Verbatim {
		sd.Provider = a.provider.Name()
		corrected, err := a.provider.Correct(ctx, span.Text)
		if err != nil {
			if ctx.Err() == nil {
				a.log.Warn("correction failed, keeping original",
					"sentence", span.Index,
					"provider", sd.Provider,
					"kind", provider.Classify(err),
					"error", err,
				)
			}
			sd.Error = err.Error()
		} else {
			sd.Corrected = corrected
		}
	}

	sd.Changes = diff.Diff(sd.Original, sd.Corrected)
	a.log.Debug("sentence corrected",
		"sentence", span.Index,
		"changes", diff.CountChanges(sd.Changes),
	)
	return sd
}

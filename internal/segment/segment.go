// Package segment splits free-form text into sentence spans that can be
// corrected independently and stitched back together without losing the
// whitespace between them.
package segment

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvariantViolation is returned by Verify when spans no longer reproduce
// the text they were cut from. It signals a programming error, not bad input.
var ErrInvariantViolation = errors.New("segmentation invariant violation")

// Span is one sentence of the input. Start and End are byte offsets into the
// segmented text, so Text == text[Start:End].
type Span struct {
	Text  string `json:"text"`
	Start int    `json:"start_offset"`
	End   int    `json:"end_offset"`
	Index int    `json:"sentence_index"`
	// Verbatim spans (LaTeX figure and table environments) are never sent to
	// a correction provider.
	Verbatim bool `json:"verbatim,omitempty"`
}

// reVerbatimEnv matches LaTeX figure/table environments. Each variant is
// listed explicitly because RE2 has no backreferences.
var reVerbatimEnv = regexp.MustCompile(
	`(?s)\\begin\{figure\}.*?\\end\{figure\}|\\begin\{figure\*\}.*?\\end\{figure\*\}|\\begin\{table\}.*?\\end\{table\}|\\begin\{table\*\}.*?\\end\{table\*\}`,
)

// abbreviations never end a sentence. Keys are lower-case and include the
// trailing period.
var abbreviations = map[string]bool{
	"mr.": true, "mrs.": true, "ms.": true, "dr.": true, "prof.": true,
	"sr.": true, "jr.": true, "st.": true, "vs.": true, "e.g.": true,
	"i.e.": true, "cf.": true, "fig.": true, "eq.": true, "no.": true,
}

// Segment splits text into sentences. A sentence ends after a run of one or
// more '.', '!' or '?' (optionally followed by closing quotes or brackets)
// when the run is followed by whitespace or the end of the text, and at
// paragraph breaks. The whitespace after a sentence is a separator and
// belongs to no span.
//
// Empty or whitespace-only text yields an empty slice.
func Segment(text string) []Span {
	spans := make([]Span, 0)
	last := 0
	for _, loc := range reVerbatimEnv.FindAllStringIndex(text, -1) {
		spans = appendSentences(spans, text, last, loc[0])
		spans = appendSpan(spans, text, loc[0], loc[1], true)
		last = loc[1]
	}
	return appendSentences(spans, text, last, len(text))
}

func appendSentences(spans []Span, text string, from, to int) []Span {
	start := -1 // -1 while between sentences
	tail := from

	for i := from; i < to; {
		r, size := utf8.DecodeRuneInString(text[i:to])

		if unicode.IsSpace(r) {
			j, newlines := skipSpace(text, i, to)
			if start >= 0 && newlines >= 2 {
				spans = appendSpan(spans, text, start, tail, false)
				start = -1
			}
			i = j
			continue
		}

		if start < 0 {
			start = i
		}
		tail = i + size
		if !isTerminal(r) {
			i += size
			continue
		}

		end := i + size
		for end < to {
			next, n := utf8.DecodeRuneInString(text[end:to])
			if !isTerminal(next) && !isCloser(next) {
				break
			}
			end += n
		}
		tail = end

		if end < to {
			if next, _ := utf8.DecodeRuneInString(text[end:to]); !unicode.IsSpace(next) {
				i = end
				continue
			}
		}
		if r == '.' && end == i+1 && isAbbreviation(text[start:end], text[end:to]) {
			i = end
			continue
		}

		spans = appendSpan(spans, text, start, end, false)
		start = -1
		i = end
	}

	if start >= 0 {
		spans = appendSpan(spans, text, start, tail, false)
	}
	return spans
}

func appendSpan(spans []Span, text string, start, end int, verbatim bool) []Span {
	return append(spans, Span{
		Text:     text[start:end],
		Start:    start,
		End:      end,
		Index:    len(spans),
		Verbatim: verbatim,
	})
}

// skipSpace returns the end of the whitespace run starting at i and the
// number of newlines it contains.
func skipSpace(text string, i, to int) (int, int) {
	newlines := 0
	for i < to {
		r, size := utf8.DecodeRuneInString(text[i:to])
		if !unicode.IsSpace(r) {
			break
		}
		if r == '\n' {
			newlines++
		}
		i += size
	}
	return i, newlines
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’', '»':
		return true
	}
	return false
}

const openers = "(\"'“‘«["

// isAbbreviation reports whether the last word of sentence (which ends with a
// period) is a known abbreviation or an initial such as "J.". A capital
// letter only counts as an initial when the next word is capitalized and the
// letter opens the sentence or follows a capitalized word, so "vitamin C."
// and the pronoun "I." still end a sentence.
func isAbbreviation(sentence, rest string) bool {
	word, before := lastWord(sentence)
	if abbreviations[strings.ToLower(word)] {
		return true
	}
	runes := []rune(word)
	if len(runes) != 2 || !unicode.IsUpper(runes[0]) || runes[0] == 'I' {
		return false
	}
	if prev, _ := lastWord(before); prev != "" && !startsUpper(prev) {
		return false
	}
	return startsUpper(strings.TrimLeftFunc(rest, unicode.IsSpace))
}

// lastWord splits s into its last whitespace-separated word, stripped of
// opening quotes and brackets, and the text before it.
func lastWord(s string) (string, string) {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	idx := strings.LastIndexFunc(s, unicode.IsSpace)
	return strings.TrimLeft(s[idx+1:], openers), s[:max(idx, 0)]
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(strings.TrimLeft(s, openers))
	return unicode.IsUpper(r)
}

// Gaps returns the separators around spans: the text before the first span,
// the text between consecutive spans, and the text after the last one. The
// result always has len(spans)+1 elements.
func Gaps(text string, spans []Span) []string {
	gaps := make([]string, 0, len(spans)+1)
	prev := 0
	for _, s := range spans {
		gaps = append(gaps, text[prev:s.Start])
		prev = s.End
	}
	return append(gaps, text[prev:])
}

// Join interleaves gaps and spans. Join(spans, Gaps(text, spans)) reproduces
// text byte for byte.
func Join(spans []Span, gaps []string) string {
	var sb strings.Builder
	for i, s := range spans {
		if i < len(gaps) {
			sb.WriteString(gaps[i])
		}
		sb.WriteString(s.Text)
	}
	if len(gaps) > len(spans) {
		sb.WriteString(gaps[len(spans)])
	}
	return sb.String()
}

// Verify checks that spans are ordered, non-overlapping, consistently
// indexed and that they reassemble into text.
func Verify(text string, spans []Span) error {
	prev := 0
	for i, s := range spans {
		if s.Index != i {
			return fmt.Errorf("%w: span %d has index %d", ErrInvariantViolation, i, s.Index)
		}
		if s.Start < prev || s.End < s.Start || s.End > len(text) {
			return fmt.Errorf("%w: span %d has offsets [%d,%d)", ErrInvariantViolation, i, s.Start, s.End)
		}
		if text[s.Start:s.End] != s.Text {
			return fmt.Errorf("%w: span %d text does not match offsets", ErrInvariantViolation, i)
		}
		prev = s.End
	}
	if Join(spans, Gaps(text, spans)) != text {
		return fmt.Errorf("%w: reassembled text differs from input", ErrInvariantViolation)
	}
	return nil
}

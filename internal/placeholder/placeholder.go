// Package placeholder shields markup that a correction model must not touch
// (LaTeX commands and inline math, code spans, HTML tags) by swapping it for
// numbered markers ([PH0], [PH1], …) before the sentence is sent out.
// Restore puts the originals back once the corrected sentence returns.
package placeholder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// fenced code blocks: ```...``` (non-greedy, may span lines)
	reFencedCode = regexp.MustCompile("(?s)```.*?```")

	// inline code spans: `...`
	reInlineCode = regexp.MustCompile("`[^`]+`")

	// inline math: $...$ and \(...\)
	reInlineMath = regexp.MustCompile(`\$[^$\n]+\$|\\\(.*?\\\)`)

	// LaTeX commands with an optional [..] argument and any number of {..}
	// arguments: \cite{a}, \ref{fig:x}, \textbf{word}, \\, \item
	reLatexCommand = regexp.MustCompile(`\\[a-zA-Z]+\*?(?:\[[^\]]*\])?(?:\{[^{}]*\})*`)

	// HTML/XML tags: opening, closing, and self-closing
	reHTMLTag = regexp.MustCompile(`<[a-zA-Z/!][^>]*>`)

	// placeholder reference in corrected text
	rePlaceholder = regexp.MustCompile(`\[PH(\d+)\]`)
)

// Protect replaces protected markup with numbered placeholders [PH0], [PH1],
// … and returns the modified text together with the captured originals so
// Restore can put them back.
func Protect(text string) (string, []string) {
	var markers []string

	replace := func(match string) string {
		id := fmt.Sprintf("[PH%d]", len(markers))
		markers = append(markers, match)
		return id
	}

	// Order matters: fenced first (longest match), then inline code so that
	// backslashes inside code are left alone, then math, commands and tags.
	text = reFencedCode.ReplaceAllStringFunc(text, replace)
	text = reInlineCode.ReplaceAllStringFunc(text, replace)
	text = reInlineMath.ReplaceAllStringFunc(text, replace)
	text = reLatexCommand.ReplaceAllStringFunc(text, replace)
	text = reHTMLTag.ReplaceAllStringFunc(text, replace)

	return text, markers
}

// Restore substitutes [PHn] markers in text with the originals captured by
// Protect. Unknown indices leave the marker as-is.
func Restore(text string, markers []string) string {
	return rePlaceholder.ReplaceAllStringFunc(text, func(match string) string {
		sub := rePlaceholder.FindStringSubmatch(match)
		idx, err := strconv.Atoi(sub[1])
		if err != nil || idx < 0 || idx >= len(markers) {
			return match
		}
		return markers[idx]
	})
}

// InstructionHint is appended to LLM prompts so the model leaves markers
// intact.
func InstructionHint() string {
	return "Keep every [PHn] marker exactly as it appears: do not translate, move, or remove it."
}

// Validate returns the indices of markers created by Protect that are no
// longer present in text.
func Validate(text string, markers []string) []int {
	var missing []int
	for i := range markers {
		if !strings.Contains(text, fmt.Sprintf("[PH%d]", i)) {
			missing = append(missing, i)
		}
	}
	return missing
}

// Package postprocess strips common LLM artifacts from a corrected sentence.
//
// It runs on the raw text returned by every LLM-backed provider before the
// result is diffed against the original sentence.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean removes LLM artifacts from text in four phases and returns the
// trimmed result:
//  1. Thinking / reasoning block removal
//  2. Markdown code fence removal
//  3. Instruction echo removal (prompt leakage)
//  4. Quote wrapping removal
func Clean(text string) string {
	text = removeThinkingBlocks(text)
	text = removeCodeFence(text)
	text = removeInstructionEchoes(text)
	text = removeQuoteWrapping(text)
	return strings.TrimSpace(text)
}

// --- Phase 1: thinking blocks ---

// thinkingBlockRe matches complete <thinking>…</thinking> style blocks.
// Each tag variant is listed explicitly because Go's RE2 engine does not
// support backreferences.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>|<reflection>.*?</reflection>`,
)

// truncatedThinkingRe matches an opened thinking tag whose closing tag is
// missing (the model was cut off mid-thought).
var truncatedThinkingRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>|<reflection>).*$`,
)

func removeThinkingBlocks(text string) string {
	text = thinkingBlockRe.ReplaceAllString(text, "")
	text = truncatedThinkingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// --- Phase 2: code fences ---

var codeFenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\\n(.*?)\\n?```$")

func removeCodeFence(text string) string {
	if m := codeFenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// --- Phase 3: instruction echoes ---

// echoPatterns match introductory phrases that models prepend even when told
// not to. Each is anchored at the start and requires a colon.
var echoPatterns = []*regexp.Regexp{
	// "Certainly / Sure / Of course[,] here is [the] corrected sentence:"
	regexp.MustCompile(`(?i)^(?:certainly|sure|of course)[,.!]? here(?:'s| is)(?: the| your)? (?:corrected |revised |proofread |fixed )?(?:sentence|text|version|paragraph)\s*:`),
	// "Here is / Here's [the] [corrected] sentence:"
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the| your)? (?:corrected |revised |proofread |fixed )?(?:sentence|text|version|paragraph)\s*:`),
	// "[The] corrected [sentence|text]:" and the bare "Corrected P2:" label
	regexp.MustCompile(`(?i)^(?:the )?(?:corrected|revised|proofread) (?:sentence|text|version|paragraph|p2)\s*:`),
	regexp.MustCompile(`(?i)^(?:corrected|correction|output)\s*:`),
}

func removeInstructionEchoes(text string) string {
	for _, re := range echoPatterns {
		if loc := re.FindStringIndex(text); loc != nil && loc[0] == 0 {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

// --- Phase 4: quote wrapping ---

// removeQuoteWrapping strips a matching pair of outer quotes when the entire
// text is wrapped in them and no other quote of the same kind appears inside.
// Supported pairs:
//
//	"…"  '…'  «…»  "…"  '…'
func removeQuoteWrapping(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	first, last := runes[0], runes[n-1]
	if !((first == '"' && last == '"') ||
		(first == '\'' && last == '\'') ||
		(first == '«' && last == '»') ||
		(first == '“' && last == '”') ||
		(first == '‘' && last == '’')) {
		return text
	}
	inner := string(runes[1 : n-1])
	if strings.ContainsRune(inner, first) || strings.ContainsRune(inner, last) {
		return text
	}
	return strings.TrimSpace(inner)
}

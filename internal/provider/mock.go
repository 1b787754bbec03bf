package provider

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// misspellings maps common misspellings (lower case) to their fix.
var misspellings = map[string]string{
	"accomodate":  "accommodate",
	"adress":      "address",
	"alot":        "a lot",
	"arguement":   "argument",
	"becuase":     "because",
	"begining":    "beginning",
	"beleive":     "believe",
	"calender":    "calendar",
	"concious":    "conscious",
	"definately":  "definitely",
	"embarass":    "embarrass",
	"enviroment":  "environment",
	"eror":        "error",
	"erors":       "errors",
	"existance":   "existence",
	"goverment":   "government",
	"grammer":     "grammar",
	"independant": "independent",
	"occured":     "occurred",
	"occurence":   "occurrence",
	"publically":  "publicly",
	"recieve":     "receive",
	"refered":     "referred",
	"sentance":    "sentence",
	"seperate":    "separate",
	"speling":     "spelling",
	"succesful":   "successful",
	"teh":         "the",
	"thier":       "their",
	"tommorow":    "tomorrow",
	"truely":      "truly",
	"untill":      "until",
	"wich":        "which",
	"wierd":       "weird",
	"writting":    "writing",
}

// Mock is a deterministic rule-based corrector. It fixes a fixed table of
// misspellings, normalizes spacing, upper-cases a standalone "i" and the
// first letter of the sentence. It never fails.
type Mock struct {
	protected map[string]bool
}

// NewMock returns a Mock that leaves the protected words untouched.
func NewMock(protected []string) *Mock {
	m := &Mock{protected: make(map[string]bool, len(protected))}
	for _, w := range protected {
		m.protected[strings.ToLower(w)] = true
	}
	return m
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Correct(_ context.Context, sentence string) (string, error) {
	tokens := attachPunctuation(strings.Fields(sentence))

	for i, tok := range tokens {
		lead, core, trail := splitToken(tok)
		if core == "" || m.protected[strings.ToLower(core)] {
			continue
		}
		if core == "i" {
			core = "I"
		} else if fixed, ok := misspellings[strings.ToLower(core)]; ok {
			core = matchCase(core, fixed)
		}
		tokens[i] = lead + core + trail
	}

	if len(tokens) > 0 {
		if _, core, _ := splitToken(tokens[0]); !m.protected[strings.ToLower(core)] {
			tokens[0] = capitalizeFirstLetter(tokens[0])
		}
	}
	return strings.Join(tokens, " "), nil
}

// attachPunctuation glues tokens made only of , . ; : ! ? onto the previous
// token, turning "word ," into "word,".
func attachPunctuation(tokens []string) []string {
	out := tokens[:0]
	for _, tok := range tokens {
		if len(out) > 0 && strings.Trim(tok, ",.;:!?") == "" {
			out[len(out)-1] += tok
			continue
		}
		out = append(out, tok)
	}
	return out
}

// splitToken separates leading and trailing non-alphanumeric runes from the
// word in the middle.
func splitToken(tok string) (lead, core, trail string) {
	isWord := func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }
	start := strings.IndexFunc(tok, isWord)
	if start < 0 {
		return tok, "", ""
	}
	end := strings.LastIndexFunc(tok, isWord)
	_, size := utf8.DecodeRuneInString(tok[end:])
	return tok[:start], tok[start : end+size], tok[end+size:]
}

// matchCase gives fixed the capitalization pattern of orig.
func matchCase(orig, fixed string) string {
	if utf8.RuneCountInString(orig) > 1 && strings.ToUpper(orig) == orig {
		return strings.ToUpper(fixed)
	}
	if r, _ := utf8.DecodeRuneInString(orig); unicode.IsUpper(r) {
		return capitalizeFirstLetter(fixed)
	}
	return fixed
}

func capitalizeFirstLetter(s string) string {
	for i, r := range s {
		if unicode.IsLetter(r) {
			if unicode.IsUpper(r) {
				return s
			}
			return s[:i] + string(unicode.ToUpper(r)) + s[i+utf8.RuneLen(r):]
		}
		if unicode.IsDigit(r) {
			return s
		}
	}
	return s
}

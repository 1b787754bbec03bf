// Package detector wraps lingua-go language detection.
package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// Detector is expensive to build; create one and share it. It is safe for
// concurrent use.
type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector over every language lingua knows.
func New() *Detector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()

	return &Detector{detector: detector}
}

// NewFor builds a detector restricted to languages. Fewer candidate
// languages load faster and misclassify short sentences less often.
func NewFor(languages ...lingua.Language) *Detector {
	if len(languages) < 2 {
		return New()
	}
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		Build()

	return &Detector{detector: detector}
}

func (d *Detector) Detect(text string) (lingua.Language, bool) {
	if text == "" {
		return lingua.Unknown, false
	}
	return d.detector.DetectLanguageOf(text)
}

// DetectTag returns the detected language as a lower-case ISO 639-1 code,
// usable as a BCP 47 tag ("en", "uk").
func (d *Detector) DetectTag(text string) (string, bool) {
	lang, ok := d.Detect(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}

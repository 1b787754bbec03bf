// Package validator checks that a corrected sentence is still written in the
// language of the original one.
package validator

import (
	"fmt"
	"strings"

	"github.com/valpere/proofreader/internal/detector"
)

// minValidationLength is the minimum rune count required to attempt language
// detection. Shorter texts produce unreliable results and pass unchecked.
const minValidationLength = 20

// Validator compares the detected language of two texts.
type Validator struct {
	det *detector.Detector
}

// New creates a Validator backed by det. A nil det builds a detector over all
// languages, which takes a while; reuse the Validator.
func New(det *detector.Detector) *Validator {
	if det == nil {
		det = detector.New()
	}
	return &Validator{det: det}
}

// SameLanguage returns an error when corrected appears to be written in a
// different language than original.
//
// Short texts and texts whose language cannot be determined pass. An empty
// corrected text is an error.
func (v *Validator) SameLanguage(original, corrected string) error {
	corrected = strings.TrimSpace(corrected)
	if corrected == "" {
		return fmt.Errorf("corrected text is empty")
	}

	original = strings.TrimSpace(original)
	if len([]rune(original)) < minValidationLength || len([]rune(corrected)) < minValidationLength {
		return nil
	}

	want, ok := v.det.DetectTag(original)
	if !ok {
		return nil
	}
	got, ok := v.det.DetectTag(corrected)
	if !ok {
		return nil
	}

	if !strings.EqualFold(want, got) {
		return fmt.Errorf("expected %s but detected %s", want, got)
	}
	return nil
}

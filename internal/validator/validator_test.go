package validator

import (
	"testing"

	lingua "github.com/pemistahl/lingua-go"

	"github.com/valpere/proofreader/internal/detector"
)

func newValidator() *Validator {
	return New(detector.NewFor(lingua.English, lingua.French, lingua.German, lingua.Ukrainian))
}

func TestSameLanguage_EmptyCorrection(t *testing.T) {
	v := newValidator()

	if err := v.SameLanguage("Some original sentence here.", ""); err == nil {
		t.Error("expected error for empty correction")
	}
	if err := v.SameLanguage("Some original sentence here.", "   "); err == nil {
		t.Error("expected error for whitespace-only correction")
	}
}

func TestSameLanguage_ShortText(t *testing.T) {
	v := newValidator()

	if err := v.SameLanguage("Hi", "Bonjour"); err != nil {
		t.Errorf("short texts should pass, got %v", err)
	}
}

func TestSameLanguage_Match(t *testing.T) {
	v := newValidator()

	err := v.SameLanguage(
		"This is a sample text with some common erors.",
		"This is a sample text with some common errors.",
	)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSameLanguage_Mismatch(t *testing.T) {
	v := newValidator()

	err := v.SameLanguage(
		"The weather is very nice today and we are going outside.",
		"Le temps est très beau aujourd'hui et nous allons dehors.",
	)
	if err == nil {
		t.Error("expected error when correction switched language")
	}
}

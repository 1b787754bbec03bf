package detector

import (
	"testing"

	lingua "github.com/pemistahl/lingua-go"
)

func TestDetector_Detect(t *testing.T) {
	d := New()

	tests := []struct {
		name     string
		text     string
		wantLang string
		wantOK   bool
	}{
		{"empty text", "", "", false},
		{"english text", "Hello, this is a test in English.", "English", true},
		{"ukrainian text", "Привіт, це тест українською мовою.", "Ukrainian", true},
		{"german text", "Hallo, das ist ein Test auf Deutsch.", "German", true},
		{"french text", "Bonjour, ceci est un test en français.", "French", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, ok := d.Detect(tt.text)
			if ok != tt.wantOK {
				t.Errorf("Detect(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
				return
			}
			if tt.wantOK && lang.String() != tt.wantLang {
				t.Errorf("Detect(%q) = %v, want %v", tt.text, lang, tt.wantLang)
			}
		})
	}
}

func TestDetector_DetectTag(t *testing.T) {
	d := New()

	iso, ok := d.DetectTag("This sentence is clearly written in English.")
	if !ok || iso != "en" {
		t.Errorf("DetectTag = %q, %v; want en, true", iso, ok)
	}

	if _, ok := d.DetectTag(""); ok {
		t.Error("expected ok=false for empty text")
	}
}

func TestNewFor(t *testing.T) {
	d := NewFor(lingua.English, lingua.German)

	lang, ok := d.Detect("Das ist ein einfacher Satz auf Deutsch.")
	if !ok || lang != lingua.German {
		t.Errorf("Detect = %v, %v; want German, true", lang, ok)
	}
}

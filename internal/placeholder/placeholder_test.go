package placeholder_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/valpere/proofreader/internal/placeholder"
)

func TestProtect_NoMarkup(t *testing.T) {
	text := "Hello, world!"
	got, markers := placeholder.Protect(text)
	if got != text {
		t.Errorf("expected unchanged text, got %q", got)
	}
	if len(markers) != 0 {
		t.Errorf("expected 0 markers, got %d", len(markers))
	}
}

func TestProtect_LatexCommands(t *testing.T) {
	text := `As shown in \cite{smith2020} and Fig.~\ref{fig:arch}, the \textbf{model} works.`
	got, markers := placeholder.Protect(text)

	want := []string{`\cite{smith2020}`, `\ref{fig:arch}`, `\textbf{model}`}
	if !reflect.DeepEqual(markers, want) {
		t.Fatalf("markers = %q, want %q", markers, want)
	}
	if strings.Contains(got, `\`) {
		t.Errorf("backslash commands left in %q", got)
	}
}

func TestProtect_InlineMath(t *testing.T) {
	text := `The loss $L = \sum_i x_i$ and \(y^2\) decrease.`
	got, markers := placeholder.Protect(text)

	if len(markers) != 2 {
		t.Fatalf("expected 2 markers, got %d: %q", len(markers), markers)
	}
	if got != "The loss [PH0] and [PH1] decrease." {
		t.Errorf("unexpected protected text %q", got)
	}
}

func TestProtect_CodeBeforeCommands(t *testing.T) {
	text := "Run `\\make all` now."
	got, markers := placeholder.Protect(text)
	if len(markers) != 1 || markers[0] != "`\\make all`" {
		t.Fatalf("expected inline code captured whole, got %q", markers)
	}
	if got != "Run [PH0] now." {
		t.Errorf("unexpected protected text %q", got)
	}
}

func TestProtect_HTMLTags(t *testing.T) {
	text := "<p>Hello <b>world</b></p>"
	got, markers := placeholder.Protect(text)

	if len(markers) != 4 {
		t.Fatalf("expected 4 markers, got %d: %v", len(markers), markers)
	}
	for _, tag := range []string{"<p>", "<b>", "</b>", "</p>"} {
		if strings.Contains(got, tag) {
			t.Errorf("expected tag %q to be replaced, still present in %q", tag, got)
		}
	}
}

func TestProtect_LessThanIsNotATag(t *testing.T) {
	text := "When x < 3 and y > 2 we stop."
	got, markers := placeholder.Protect(text)
	if len(markers) != 0 || got != text {
		t.Errorf("comparison operators should not be protected: %q %q", got, markers)
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	originals := []string{
		"<p>Hello <b>world</b></p>",
		"Before\n```go\nfmt.Println(\"hi\")\n```\nAfter",
		`See \cite[p.~4]{knuth} and $a+b$ in \emph{this} work.`,
	}
	for _, original := range originals {
		protected, markers := placeholder.Protect(original)
		if restored := placeholder.Restore(protected, markers); restored != original {
			t.Errorf("round-trip failed:\n  original: %q\n  restored: %q", original, restored)
		}
	}
}

func TestRestore_OutOfRangeIndexIgnored(t *testing.T) {
	restored := placeholder.Restore("[PH99] some text", []string{`\cite{a}`})
	if !strings.Contains(restored, "[PH99]") {
		t.Errorf("expected [PH99] to remain, got %q", restored)
	}
}

func TestValidate(t *testing.T) {
	markers := []string{`\cite{a}`, `\ref{b}`, "$x$"}

	if missing := placeholder.Validate("[PH0] some [PH1] text [PH2]", markers); len(missing) != 0 {
		t.Errorf("expected no missing, got %v", missing)
	}

	missing := placeholder.Validate("[PH0] some text", markers)
	if !reflect.DeepEqual(missing, []int{1, 2}) {
		t.Errorf("expected missing [1 2], got %v", missing)
	}
}

func TestInstructionHint_NotEmpty(t *testing.T) {
	if placeholder.InstructionHint() == "" {
		t.Error("InstructionHint should not return empty string")
	}
}

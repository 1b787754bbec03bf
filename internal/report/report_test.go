package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/valpere/proofreader/internal/diff"
	"github.com/valpere/proofreader/internal/proofread"
)

func sampleResult() *proofread.Result {
	o, c := "This is a sample text with some common erors.", "This is a sample text with some common errors."
	changes := diff.Diff(o, c)
	return &proofread.Result{
		SentenceDiffs: []proofread.SentenceDiff{
			{Original: o, Corrected: c, Changes: changes, SentenceIndex: 0, Separator: " ", Provider: "mock"},
			{Original: "Broken one.", Corrected: "Broken one.", Changes: diff.Diff("Broken one.", "Broken one."), SentenceIndex: 1, Error: "provider timeout"},
		},
		FinalText:    c + " Broken one.",
		TotalChanges: diff.CountChanges(changes),
		Failed:       1,
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "json": FormatJSON, "md": FormatMarkdown, "html": FormatHTML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleResult(), FormatText); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "This is a sample text with some common errors. Broken one." {
		t.Errorf("got %q", buf.String())
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleResult(), FormatJSON); err != nil {
		t.Fatal(err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"sentence_diffs", "final_text", "total_changes", "failed"} {
		if _, ok := got[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if !strings.Contains(buf.String(), `"type": "delete"`) {
		t.Errorf("changes not rendered by name: %s", buf.String())
	}
}

func TestMarkdown(t *testing.T) {
	md := string(Markdown(sampleResult()))

	for _, want := range []string{
		"# Proofreading report",
		"Sentences: 2, changes: 2, failed: 1",
		"## Sentence 1",
		"~~erors.~~ **errors.**",
		"`erors.` → `errors.`",
		"## Sentence 2",
		"Not corrected: provider timeout",
		"## Final text",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdown_SkipsUnchanged(t *testing.T) {
	res := &proofread.Result{
		SentenceDiffs: []proofread.SentenceDiff{
			{Original: "Fine.", Corrected: "Fine.", Changes: diff.Diff("Fine.", "Fine.")},
		},
		FinalText: "Fine.",
	}
	if strings.Contains(string(Markdown(res)), "## Sentence") {
		t.Error("unchanged sentence should not get a section")
	}
}

func TestWrite_HTML(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleResult(), FormatHTML); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Error("expected full HTML document")
	}
	if !strings.Contains(out, "<del>erors.</del>") || !strings.Contains(out, "<strong>errors.</strong>") {
		t.Errorf("diff markup missing:\n%s", out)
	}
}

func TestCharDiff(t *testing.T) {
	got := CharDiff("erors", "errors")
	if !strings.Contains(got, "{+r+}") || strings.Contains(got, "[-") {
		t.Errorf("CharDiff = %q", got)
	}
	if CharDiff("same", "same") != "same" {
		t.Error("identical words should have no markers")
	}
}

// Package report renders a proofread.Result as plain text, JSON, Markdown
// or HTML.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/valpere/proofreader/internal/diff"
	"github.com/valpere/proofreader/internal/markdown"
	"github.com/valpere/proofreader/internal/proofread"
)

type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat accepts text, json, markdown (or md) and html.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// Write renders res to w. The text format is the final text alone.
func Write(w io.Writer, res *proofread.Result, f Format) error {
	switch f {
	case FormatText, "":
		_, err := io.WriteString(w, res.FinalText)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatMarkdown:
		_, err := w.Write(Markdown(res))
		return err
	case FormatHTML:
		_, err := io.WriteString(w, markdown.Page("Proofreading report", Markdown(res)))
		return err
	}
	return fmt.Errorf("unknown report format %q", f)
}

// Summary is a one-line overview of res.
func Summary(res *proofread.Result) string {
	return fmt.Sprintf("Sentences: %d, changes: %d, failed: %d",
		len(res.SentenceDiffs), res.TotalChanges, res.Failed)
}

// Markdown builds a per-sentence report listing every change block and, for
// one-word replacements, the character-level edit.
func Markdown(res *proofread.Result) []byte {
	var b bytes.Buffer

	b.WriteString("# Proofreading report\n\n")
	fmt.Fprintf(&b, "%s\n\n", Summary(res))

	for _, d := range res.SentenceDiffs {
		blocks := diff.Blocks(d.Changes)
		if len(blocks) == 0 && d.Error == "" {
			continue
		}

		fmt.Fprintf(&b, "## Sentence %d\n\n", d.SentenceIndex+1)
		fmt.Fprintf(&b, "> %s\n\n", markdown.Escape(oneLine(d.Original)))

		if d.Error != "" {
			fmt.Fprintf(&b, "Not corrected: %s\n\n", markdown.Escape(d.Error))
			continue
		}

		fmt.Fprintf(&b, "%s\n\n", inlineDiff(d.Changes))
		for _, blk := range blocks {
			b.WriteString("- ")
			b.WriteString(describe(blk))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Final text\n\n")
	for _, line := range strings.Split(res.FinalText, "\n") {
		fmt.Fprintf(&b, "> %s\n", markdown.Escape(line))
	}
	return b.Bytes()
}

// inlineDiff renders the changes of one sentence with deleted tokens struck
// through and inserted tokens in bold.
func inlineDiff(changes []diff.Change) string {
	parts := make([]string, 0, len(changes))
	for _, c := range changes {
		text := markdown.Escape(c.Text)
		switch c.Type {
		case diff.Delete:
			parts = append(parts, "~~"+text+"~~")
		case diff.Insert:
			parts = append(parts, "**"+text+"**")
		default:
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func describe(blk diff.Block) string {
	del := strings.Join(blk.Deleted, " ")
	ins := strings.Join(blk.Inserted, " ")
	switch {
	case del == "":
		return fmt.Sprintf("inserted `%s`", code(ins))
	case ins == "":
		return fmt.Sprintf("deleted `%s`", code(del))
	case len(blk.Deleted) == 1 && len(blk.Inserted) == 1:
		return fmt.Sprintf("`%s` → `%s` (`%s`)", code(del), code(ins), code(CharDiff(del, ins)))
	default:
		return fmt.Sprintf("`%s` → `%s`", code(del), code(ins))
	}
}

// CharDiff marks the character edits turning a into b, wdiff style, with
// [-removed-] and {+added+} runs.
func CharDiff(a, b string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

func code(s string) string {
	return strings.ReplaceAll(s, "`", "'")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

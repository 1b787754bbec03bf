package postprocess

import "testing"

func TestRemoveThinkingBlocks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no thinking blocks", "She went to the store.", "She went to the store."},
		{"simple thinking block", "She<thinking>check verb tense</thinking> went.", "She went."},
		{"reasoning block", "<reasoning>Analyzing the grammar</reasoning>Fixed sentence.", "Fixed sentence."},
		{"multiple blocks", "<think>a</think>middle<think>b</think>", "middle"},
		{"truncated block", "<thinking>Correction in progress", ""},
		{"truncated in middle", "Before<think>Incomplete", "Before"},
		{"case insensitive", "<THINK>x</THINK>Done.", "Done."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := removeThinkingBlocks(tt.input); got != tt.expected {
				t.Errorf("removeThinkingBlocks(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRemoveInstructionEchoes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no echo", "The results were clear.", "The results were clear."},
		{"here is the corrected sentence", "Here is the corrected sentence: The results were clear.", "The results were clear."},
		{"here's", "Here's the revised text: Fine.", "Fine."},
		{"sure prefix", "Sure, here is the corrected sentence: Fine.", "Fine."},
		{"corrected label", "Corrected sentence: Fine.", "Fine."},
		{"original P2 label", "Corrected P2: Fine.", "Fine."},
		{"bare label", "Output: Fine.", "Fine."},
		{"colon required", "Here is the corrected sentence without colon", "Here is the corrected sentence without colon"},
		{"not at start", "We note: corrected sentence: here.", "We note: corrected sentence: here."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := removeInstructionEchoes(tt.input); got != tt.expected {
				t.Errorf("removeInstructionEchoes(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRemoveQuoteWrapping(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single char", `"`, `"`},
		{"double quotes", `"Fixed sentence."`, "Fixed sentence."},
		{"single quotes", `'Fixed.'`, "Fixed."},
		{"guillemets", "«Виправлено.»", "Виправлено."},
		{"curly quotes", "“Fixed.”", "Fixed."},
		{"mismatched", `"Fixed.'`, `"Fixed.'`},
		{"inner quote kept", `"Stop," he said, "now."`, `"Stop," he said, "now."`},
		{"no quotes", "Fixed.", "Fixed."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := removeQuoteWrapping(tt.input); got != tt.expected {
				t.Errorf("removeQuoteWrapping(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRemoveCodeFence(t *testing.T) {
	in := "```text\nThe corrected sentence.\n```"
	if got := removeCodeFence(in); got != "The corrected sentence." {
		t.Errorf("removeCodeFence = %q", got)
	}
	if got := removeCodeFence("plain"); got != "plain" {
		t.Errorf("removeCodeFence(plain) = %q", got)
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"passthrough", "  The cat sat.  ", "The cat sat."},
		{"all phases", "<think>hmm</think>\nSure, here is the corrected sentence: \"The cat sat.\"", "The cat sat."},
		{"fenced with label", "```\nCorrected sentence: The cat sat.\n```", "The cat sat."},
		{"only thinking", "<think>nothing else", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

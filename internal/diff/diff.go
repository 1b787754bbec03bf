// Package diff computes word-level alignments between an original sentence
// and its corrected form.
//
// Tokens are whitespace-separated words; punctuation stays attached to the
// word it touches. The alignment is built on a longest common subsequence of
// tokens, so unchanged words are reported as equal and everything else as
// delete/insert blocks.
package diff

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// Op classifies a single Change.
type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

func (o Op) String() string {
	switch o {
	case Equal:
		return "equal"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// MarshalJSON encodes the op by name.
func (o Op) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON accepts "equal", "delete" and "insert".
func (o *Op) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "equal":
		*o = Equal
	case "delete":
		*o = Delete
	case "insert":
		*o = Insert
	default:
		return fmt.Errorf("unknown change type %q", s)
	}
	return nil
}

// Change is one token of the alignment. Position is the index of the change
// in the emitted sequence, shared across all op types.
type Change struct {
	Type     Op     `json:"type"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// Tokenize splits a sentence into word tokens.
func Tokenize(s string) []string {
	return strings.Fields(s)
}

// Diff aligns the tokens of original and corrected. The result is
// deterministic: among several longest common subsequences the one matching
// the earliest tokens wins, and inside every mismatch block all deletes are
// emitted before all inserts.
//
// Diff never returns nil; two empty sentences produce an empty slice.
func Diff(original, corrected string) []Change {
	return Tokens(Tokenize(original), Tokenize(corrected))
}

// maxCells bounds the LCS table built for the region between the common
// prefix and suffix. Larger regions are reported as a single mismatch block.
const maxCells = 1 << 22

// Tokens is Diff over pre-tokenized input.
//
// The common prefix is always matched first. The common suffix is only split
// off when the remaining region would exceed maxCells; the earliest-match
// rule then holds inside the region but not across its tail.
func Tokens(a, b []string) []Change {
	changes := make([]Change, 0, len(a)+len(b))

	var dels, ins []string
	emit := func(op Op, text string) {
		changes = append(changes, Change{Type: op, Text: text, Position: len(changes)})
	}
	flush := func() {
		for _, t := range dels {
			emit(Delete, t)
		}
		for _, t := range ins {
			emit(Insert, t)
		}
		dels, ins = dels[:0], ins[:0]
	}

	p := 0
	for p < len(a) && p < len(b) && a[p] == b[p] {
		emit(Equal, a[p])
		p++
	}
	a, b = a[p:], b[p:]

	var tail []string
	if tableSize(a, b) > maxCells {
		s := 0
		for s < len(a) && s < len(b) && a[len(a)-1-s] == b[len(b)-1-s] {
			s++
		}
		tail = a[len(a)-s:]
		a, b = a[:len(a)-s], b[:len(b)-s]
	}

	i, j := 0, 0
	if tableSize(a, b) <= maxCells {
		lcs := suffixLCS(a, b)
		for i < len(a) && j < len(b) {
			switch {
			case a[i] == b[j]:
				flush()
				emit(Equal, a[i])
				i++
				j++
			case lcs[i+1][j] >= lcs[i][j+1]:
				dels = append(dels, a[i])
				i++
			default:
				ins = append(ins, b[j])
				j++
			}
		}
	}
	dels = append(dels, a[i:]...)
	ins = append(ins, b[j:]...)
	flush()

	for _, t := range tail {
		emit(Equal, t)
	}
	return changes
}

func tableSize(a, b []string) int {
	return (len(a) + 1) * (len(b) + 1)
}

// suffixLCS returns the table L where L[i][j] is the LCS length of a[i:] and
// b[j:]. Walking it forward from (0, 0) picks the earliest matches.
func suffixLCS(a, b []string) [][]int {
	m, n := len(a), len(b)
	cells := make([]int, (m+1)*(n+1))
	table := make([][]int, m+1)
	for i := range table {
		table[i] = cells[i*(n+1) : (i+1)*(n+1)]
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if a[i] == b[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else if table[i+1][j] >= table[i][j+1] {
				table[i][j] = table[i+1][j]
			} else {
				table[i][j] = table[i][j+1]
			}
		}
	}
	return table
}

// CountChanges returns the number of non-equal changes. A replaced word
// therefore counts twice: once for its delete and once for its insert.
func CountChanges(changes []Change) int {
	n := 0
	for _, c := range changes {
		if c.Type != Equal {
			n++
		}
	}
	return n
}

// Original replays the tokens of the original sentence.
func Original(changes []Change) []string {
	return replay(changes, Delete)
}

// Corrected replays the tokens of the corrected sentence.
func Corrected(changes []Change) []string {
	return replay(changes, Insert)
}

func replay(changes []Change, side Op) []string {
	out := make([]string, 0, len(changes))
	for _, c := range changes {
		if c.Type == Equal || c.Type == side {
			out = append(out, c.Text)
		}
	}
	return out
}

// Apply rebuilds a sentence from changes, accepting every change except those
// for which reject returns true. A rejected delete keeps the original token,
// a rejected insert drops the new one. Tokens are joined with single spaces;
// use ApplyText to keep the original spacing.
// A nil reject accepts everything.
func Apply(changes []Change, reject func(position int) bool) string {
	out := make([]string, 0, len(changes))
	for _, c := range changes {
		rejected := reject != nil && reject(c.Position)
		switch {
		case c.Type == Equal:
			out = append(out, c.Text)
		case c.Type == Delete && rejected:
			out = append(out, c.Text)
		case c.Type == Insert && !rejected:
			out = append(out, c.Text)
		}
	}
	return strings.Join(out, " ")
}

// ApplyText is Apply with the whitespace of original preserved: a token kept
// from original is preceded by the whitespace that preceded it there, an
// inserted token by a single space. changes must come from diffing original.
func ApplyText(original string, changes []Change, reject func(position int) bool) string {
	gaps := gapsBefore(original)
	var sb strings.Builder
	k := 0 // next original token
	for _, c := range changes {
		rejected := reject != nil && reject(c.Position)
		gap, keep := " ", false
		switch {
		case c.Type == Equal, c.Type == Delete && rejected:
			if k < len(gaps) {
				gap = gaps[k]
			}
			keep = true
		case c.Type == Insert && !rejected:
			keep = true
		}
		if c.Type != Insert {
			k++
		}
		if !keep {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(gap)
		}
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// gapsBefore returns, for each token of s, the whitespace in front of it.
func gapsBefore(s string) []string {
	var gaps []string
	start, inWord := 0, false
	for i, r := range s {
		space := unicode.IsSpace(r)
		switch {
		case !space && !inWord:
			gaps = append(gaps, s[start:i])
			inWord = true
		case space && inWord:
			start, inWord = i, false
		}
	}
	return gaps
}

// Block is one contiguous mismatch region: the tokens removed from the
// original and the tokens that replaced them. Either side may be empty.
type Block struct {
	Position int      `json:"position"`
	Deleted  []string `json:"deleted,omitempty"`
	Inserted []string `json:"inserted,omitempty"`
}

// Blocks groups consecutive non-equal changes. Position is the position of
// the first change in the block.
func Blocks(changes []Change) []Block {
	var blocks []Block
	var cur *Block
	for _, c := range changes {
		if c.Type == Equal {
			cur = nil
			continue
		}
		if cur == nil {
			blocks = append(blocks, Block{Position: c.Position})
			cur = &blocks[len(blocks)-1]
		}
		if c.Type == Delete {
			cur.Deleted = append(cur.Deleted, c.Text)
		} else {
			cur.Inserted = append(cur.Inserted, c.Text)
		}
	}
	return blocks
}

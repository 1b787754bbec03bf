package proofread

import (
	"slices"
	"strings"

	"github.com/valpere/proofreader/internal/diff"
)

// Reconstruct joins the sentences in SentenceIndex order using each
// sentence's Separator (a single space when it is empty). accepted[i] set
// to false keeps the original text of sentence i; a nil slice, or an index
// past its end, means the correction is accepted.
func Reconstruct(diffs []SentenceDiff, accepted []bool) string {
	return join(diffs, func(d SentenceDiff) string {
		i := d.SentenceIndex
		if i >= 0 && i < len(accepted) && !accepted[i] {
			return d.Original
		}
		return d.Corrected
	})
}

// ReconstructChanges is Reconstruct with per-change decisions: rejected maps
// a sentence index to the positions of the changes to undo in it. Sentences
// with no rejected positions keep their corrected text as is; the others are
// rebuilt on the original's spacing.
func ReconstructChanges(diffs []SentenceDiff, rejected map[int][]int) string {
	return join(diffs, func(d SentenceDiff) string {
		positions := rejected[d.SentenceIndex]
		if len(positions) == 0 {
			return d.Corrected
		}
		return diff.ApplyText(d.Original, d.Changes, func(pos int) bool {
			return slices.Contains(positions, pos)
		})
	})
}

func join(diffs []SentenceDiff, pick func(SentenceDiff) string) string {
	ordered := slices.Clone(diffs)
	slices.SortStableFunc(ordered, func(a, b SentenceDiff) int {
		return a.SentenceIndex - b.SentenceIndex
	})

	var sb strings.Builder
	for k, d := range ordered {
		sb.WriteString(pick(d))
		if k < len(ordered)-1 {
			sep := d.Separator
			if sep == "" {
				sep = " "
			}
			sb.WriteString(sep)
		}
	}
	return sb.String()
}

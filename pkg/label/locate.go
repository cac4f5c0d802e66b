package label

import (
	"strings"

	"github.com/skriva/doclabel/pkg/docintel"
)

// LocateWordSequence finds the first contiguous run of words whose contents,
// joined with single spaces, equal target exactly. The run never crosses a
// page boundary. Matching is case-sensitive with no normalization; the
// leftmost start index wins and the shortest completion at that index is
// returned immediately, which makes repeated runs on the same document and
// text reproducible.
//
// Returns nil when no run reconstructs the target, including when target is
// empty.
func LocateWordSequence(target string, words []docintel.RecognizedWord) []docintel.RecognizedWord {
	if target == "" {
		return nil
	}

	for i := range words {
		if words[i].Text == "" || !strings.HasPrefix(target, words[i].Text) {
			continue
		}

		matched := []docintel.RecognizedWord{words[i]}
		accum := words[i].Text
		page := words[i].Page

		if accum == target {
			return matched
		}

		for j := i + 1; j < len(words); j++ {
			// A run must stay on one page and cannot absorb empty words.
			if words[j].Page != page || words[j].Text == "" {
				break
			}
			candidate := accum + " " + words[j].Text
			if !strings.HasPrefix(target, candidate) {
				break
			}
			accum = candidate
			matched = append(matched, words[j])
			if accum == target {
				return matched
			}
		}
	}

	return nil
}

// Package suggest implements the closest-keyword spell-suggester: given an
// unrecognized token, it proposes the nearest match from a fixed
// vocabulary, using the same contiguous-matching-subsequence ratio as
// Python's difflib.SequenceMatcher.ratio(), with a 0.6 similarity cutoff.
package suggest

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const cutoff = 0.6

var upper = cases.Upper(language.Und)

// Find returns the closest candidate(s) to word among vocabulary, each with
// similarity ratio >= cutoff, ranked best-first; ties are broken by shortest
// candidate then lexicographic order. Comparison is case-insensitive:
// candidates are compared against the upper-cased word, matching the
// original checker's convention of upper-casing before comparison.
func Find(word string, vocabulary []string) []string {
	target := upper.String(word)

	type scored struct {
		word  string
		ratio float64
	}
	var candidates []scored
	for _, v := range vocabulary {
		r := ratio(target, upper.String(v))
		if r >= cutoff {
			candidates = append(candidates, scored{v, r})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].ratio != candidates[j].ratio {
			return candidates[i].ratio > candidates[j].ratio
		}
		if len(candidates[i].word) != len(candidates[j].word) {
			return len(candidates[i].word) < len(candidates[j].word)
		}
		return candidates[i].word < candidates[j].word
	})

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.word
	}
	return out
}

// Best returns the single closest candidate, or "" if none clears the
// cutoff.
func Best(word string, vocabulary []string) string {
	found := Find(word, vocabulary)
	if len(found) == 0 {
		return ""
	}
	return found[0]
}

// ratio computes the Ratcliff/Obershelp similarity ratio between a and b:
// twice the total length of matching contiguous blocks, divided by the
// combined length of both strings.
func ratio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	matches := matchingBlockLength(a, b)
	return 2.0 * float64(matches) / float64(len(a)+len(b))
}

// matchingBlockLength recursively finds the longest contiguous matching
// block between a and b, then recurses on the unmatched left and right
// remainders, summing matched-character counts — the same decomposition
// SequenceMatcher.get_matching_blocks() performs.
func matchingBlockLength(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	aStart, bStart, length := longestCommonSubstring(a, b)
	if length == 0 {
		return 0
	}
	left := matchingBlockLength(a[:aStart], b[:bStart])
	right := matchingBlockLength(a[aStart+length:], b[bStart+length:])
	return length + left + right
}

// longestCommonSubstring finds the longest common contiguous substring of a
// and b via dynamic programming, returning its start offsets in a and b and
// its length. Ties favor the earliest match in a, then in b, matching
// difflib's left-to-right preference.
func longestCommonSubstring(a, b string) (aStart, bStart, length int) {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	best := 0
	bestA, bestB := 0, 0

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > best {
					best = curr[j]
					bestA = i - curr[j]
					bestB = j - curr[j]
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
		for j := range curr {
			curr[j] = 0
		}
	}

	return bestA, bestB, best
}

package textutil

import "strings"

// shortNameLength is the normalized length at or below which both names are
// compared by shared characters alone.
const shortNameLength = 3

// shortNameScore is returned when two short names share any character.
const shortNameScore = 0.8

// NameSimilarity scores two display names in [0,1].
//
// Rules, in order: empty input scores 0; equal normalized names score 1; when
// one normalized name contains the other the score is the length ratio; two
// short names sharing any character score 0.8; otherwise the score is the
// larger of per-character presence and two-character window overlap, both
// relative to the longer name.
func NameSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	n1 := NormalizeName(a)
	n2 := NormalizeName(b)
	if n1 == n2 {
		return 1
	}

	if strings.Contains(n1, n2) || strings.Contains(n2, n1) {
		return float64(min(len(n1), len(n2))) / float64(max(len(n1), len(n2)))
	}

	if len(n1) <= shortNameLength && len(n2) <= shortNameLength {
		if countPresent(n1, n2) > 0 {
			return shortNameScore
		}
	}

	longer, shorter := orderByLength(n1, n2)

	sequentialMatches := 0
	maxSequence := 0
	for i := 0; i < len(shorter); i++ {
		end := min(i+2, len(shorter))
		if strings.Contains(longer, shorter[i:end]) {
			sequentialMatches++
			maxSequence = 2
		}
	}

	charSimilarity := float64(countPresent(shorter, longer)) / float64(len(longer))
	sequenceSimilarity := 0.0
	if sequentialMatches > 0 {
		sequenceSimilarity = float64(sequentialMatches*maxSequence) / float64(len(longer)*2)
	}
	return max(charSimilarity, sequenceSimilarity)
}

// countPresent counts positions of s whose byte occurs anywhere in other.
// Repeated characters are counted once per position.
func countPresent(s, other string) int {
	count := 0
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(other, s[i]) >= 0 {
			count++
		}
	}
	return count
}

// orderByLength returns (longer, shorter). Equal lengths are ordered
// lexicographically so the score does not depend on argument order.
func orderByLength(n1, n2 string) (string, string) {
	switch {
	case len(n1) > len(n2):
		return n1, n2
	case len(n2) > len(n1):
		return n2, n1
	case n1 <= n2:
		return n1, n2
	default:
		return n2, n1
	}
}

package verification

import (
	"soundguard/internal/artists"
	"soundguard/internal/textutil"
)

// Resolution is the outcome of the canonical-owner search.
type Resolution struct {
	Canonical artists.Identity
	Score     float64
}

// Resolve picks the identity from {uploader} ∪ candidates whose display name
// best matches matchedName. Equal non-zero scores prefer an exact normalized
// match, then the earlier creation time; remaining ties keep the identity
// seen first.
func Resolve(matchedName string, uploader artists.Identity, candidates []artists.Identity) Resolution {
	target := textutil.NormalizeName(matchedName)
	best := Resolution{
		Canonical: uploader,
		Score:     textutil.NameSimilarity(matchedName, uploader.DisplayName),
	}
	bestExact := isExact(target, uploader.DisplayName)

	for _, candidate := range candidates {
		score := textutil.NameSimilarity(matchedName, candidate.DisplayName)
		if score > best.Score {
			best = Resolution{Canonical: candidate, Score: score}
			bestExact = isExact(target, candidate.DisplayName)
			continue
		}
		if score != best.Score || score <= 0 {
			continue
		}
		candidateExact := isExact(target, candidate.DisplayName)
		switch {
		case candidateExact && !bestExact:
			best.Canonical = candidate
			bestExact = true
		case candidateExact == bestExact && candidate.CreatedAt.Before(best.Canonical.CreatedAt):
			best.Canonical = candidate
		}
	}
	return best
}

func isExact(target, displayName string) bool {
	return textutil.NormalizeName(displayName) == target
}

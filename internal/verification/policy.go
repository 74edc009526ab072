package verification

import (
	"soundguard/internal/config"
	"soundguard/internal/recognition"
)

const (
	// DefaultSimilarityThreshold is the minimum uploader/match name similarity.
	DefaultSimilarityThreshold = 0.7
)

// Policy holds the tunable constants of the decision table.
type Policy struct {
	SimilarityThreshold    float64
	BlockUnverifiedMatches bool
}

// DefaultPolicy returns the shipped policy constants.
func DefaultPolicy() Policy {
	return Policy{
		SimilarityThreshold:    DefaultSimilarityThreshold,
		BlockUnverifiedMatches: true,
	}
}

// PolicyFromConfig reads the policy section of cfg, falling back to defaults
// for a nil config.
func PolicyFromConfig(cfg *config.Config) Policy {
	if cfg == nil {
		return DefaultPolicy()
	}
	return Policy{
		SimilarityThreshold:    cfg.Policy.SimilarityThreshold,
		BlockUnverifiedMatches: cfg.Policy.BlockUnverifiedMatches,
	}
}

// Decision is the branch of the decision table taken for a fingerprint hit.
type Decision string

const (
	DecisionBlockNoArtist   Decision = "block_no_artist"
	DecisionBlockUnverified Decision = "block_unverified"
	DecisionBlockDissimilar Decision = "block_dissimilar"
	DecisionAcceptAdmin     Decision = "accept_admin"
	DecisionResolveOwner    Decision = "resolve_owner"
)

// Evaluate applies the decision table to a fingerprint hit. similarity is the
// score between the uploader's name and the matched artist and is ignored
// when the match carries no artist.
func (p Policy) Evaluate(tier Tier, match recognition.Match, similarity float64) Decision {
	if !match.HasArtist() {
		return DecisionBlockNoArtist
	}
	if tier == TierUnverified && p.BlockUnverifiedMatches {
		return DecisionBlockUnverified
	}
	if similarity < p.SimilarityThreshold {
		return DecisionBlockDissimilar
	}
	if tier == TierAdminOnBehalf {
		return DecisionAcceptAdmin
	}
	return DecisionResolveOwner
}

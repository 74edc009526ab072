// Package textutil provides text processing utilities for artist-name
// matching and filename sanitization.
//
// The primary use cases are:
//   - Canonicalizing display names into comparable ASCII tokens
//   - Scoring approximate similarity between two display names
//   - Sanitizing filename fragments for safe temporary staging
//
// NameSimilarity is a deliberately cheap heuristic, not an edit-distance
// metric. Verification thresholds are calibrated against its exact output, so
// changes to the scoring rules require re-validating those thresholds.
package textutil

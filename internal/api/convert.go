package api

import (
	"net/http"
	"time"

	"soundguard/internal/artists"
	"soundguard/internal/verification"
)

// FromVerdict converts an engine verdict into its transport form.
func FromVerdict(verdict verification.Verdict) VerifyResponse {
	resp := VerifyResponse{
		UploadID:   verdict.UploadID,
		Outcome:    string(verdict.Outcome),
		Reason:     verdict.Reason,
		Message:    verdict.Message,
		Tier:       verdict.Tier,
		Similarity: verdict.Similarity,
		Attempts:   verdict.Attempts,
	}
	if verdict.Match != nil {
		resp.Match = &MatchInfo{
			Title:  verdict.Match.Title,
			Artist: verdict.Match.Artist,
			Album:  verdict.Match.Album,
		}
	}
	if verdict.Canonical != nil {
		item := FromIdentity(*verdict.Canonical)
		resp.Canonical = &item
	}
	return resp
}

// FromIdentity converts a directory identity.
func FromIdentity(identity artists.Identity) ArtistItem {
	return ArtistItem{
		ID:          identity.ID,
		DisplayName: identity.DisplayName,
		Verified:    identity.Verified,
		CreatedAt:   FormatTime(identity.CreatedAt),
	}
}

// FromIdentities converts a slice of identities, preserving order.
func FromIdentities(list []artists.Identity) []ArtistItem {
	out := make([]ArtistItem, 0, len(list))
	for _, identity := range list {
		out = append(out, FromIdentity(identity))
	}
	return out
}

// VerdictStatus maps a verdict outcome to the HTTP status of the verify
// endpoint.
func VerdictStatus(outcome verification.Outcome) int {
	switch outcome {
	case verification.OutcomeSafe:
		return http.StatusOK
	case verification.OutcomeBlocked:
		return http.StatusConflict
	case verification.OutcomeServiceError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FormatTime renders t in the API timestamp format; zero times render empty.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}

package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"soundguard/internal/artists"
	"soundguard/internal/recognition"
	"soundguard/internal/verification"
)

func TestFromVerdict(t *testing.T) {
	created := time.Date(2015, 10, 23, 12, 0, 0, 0, time.UTC)
	verdict := verification.Verdict{
		UploadID:   "u-1",
		Outcome:    verification.OutcomeBlocked,
		Reason:     verification.ReasonCanonicalConflict,
		Message:    "belongs to Adele",
		Tier:       "verified",
		Similarity: 1,
		Attempts:   2,
		Match:      &recognition.Match{Title: "Hello", Artist: "Adele", Album: "25"},
		Canonical:  &artists.Identity{ID: "adele", DisplayName: "Adele", Verified: true, CreatedAt: created},
	}
	want := VerifyResponse{
		UploadID:   "u-1",
		Outcome:    "blocked",
		Reason:     "canonical_conflict",
		Message:    "belongs to Adele",
		Tier:       "verified",
		Similarity: 1,
		Attempts:   2,
		Match:      &MatchInfo{Title: "Hello", Artist: "Adele", Album: "25"},
		Canonical:  &ArtistItem{ID: "adele", DisplayName: "Adele", Verified: true, CreatedAt: "2015-10-23T12:00:00.000Z"},
	}
	if diff := cmp.Diff(want, FromVerdict(verdict)); diff != "" {
		t.Fatalf("FromVerdict mismatch (-want +got):\n%s", diff)
	}
}

func TestVerdictStatus(t *testing.T) {
	cases := map[verification.Outcome]int{
		verification.OutcomeSafe:         http.StatusOK,
		verification.OutcomeBlocked:      http.StatusConflict,
		verification.OutcomeServiceError: http.StatusServiceUnavailable,
		verification.Outcome("bogus"):    http.StatusInternalServerError,
	}
	for outcome, want := range cases {
		if got := VerdictStatus(outcome); got != want {
			t.Fatalf("VerdictStatus(%s) = %d, want %d", outcome, got, want)
		}
	}
}

func TestFormatTimeZero(t *testing.T) {
	if FormatTime(time.Time{}) != "" {
		t.Fatal("expected empty string for zero time")
	}
}

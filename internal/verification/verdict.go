package verification

import (
	"time"

	"soundguard/internal/artists"
	"soundguard/internal/recognition"
)

// Outcome is the terminal state of a verification.
type Outcome string

const (
	OutcomeSafe         Outcome = "safe"
	OutcomeBlocked      Outcome = "blocked"
	OutcomeServiceError Outcome = "service_error"
)

// Reason codes attached to verdicts.
const (
	ReasonNoMatch            = "no_match"
	ReasonNoArtist           = "no_artist_reported"
	ReasonUnverifiedUploader = "unverified_uploader"
	ReasonDissimilarName     = "dissimilar_name"
	ReasonAdminOnBehalf      = "admin_on_behalf"
	ReasonOwnerConfirmed     = "owner_confirmed"
	ReasonCanonicalConflict  = "canonical_conflict"
	ReasonServiceUnavailable = "service_unavailable"
)

// UploadRequest is the engine input for one upload attempt.
type UploadRequest struct {
	// UploadID correlates logs and scratch files; generated when empty.
	UploadID         string
	Title            string
	Audio            []byte
	OriginalFileName string

	UploaderID        string
	UploaderName      string
	UploaderVerified  bool
	UploaderCreatedAt time.Time
	AdminOnBehalf     bool

	// FeaturedArtists is informational and never affects the verdict.
	FeaturedArtists []string
}

// Tier derives the uploader's trust tier.
func (r UploadRequest) Tier() Tier {
	return TierFor(r.UploaderVerified, r.AdminOnBehalf)
}

// Uploader returns the uploader as a directory identity.
func (r UploadRequest) Uploader() artists.Identity {
	return artists.Identity{
		ID:          r.UploaderID,
		DisplayName: r.UploaderName,
		Verified:    r.UploaderVerified,
		CreatedAt:   r.UploaderCreatedAt,
	}
}

// Verdict is the result of VerifyUpload.
type Verdict struct {
	UploadID   string             `json:"upload_id"`
	Outcome    Outcome            `json:"outcome"`
	Reason     string             `json:"reason"`
	Message    string             `json:"message"`
	Tier       string             `json:"tier"`
	Match      *recognition.Match `json:"match,omitempty"`
	Canonical  *artists.Identity  `json:"canonical,omitempty"`
	Similarity float64            `json:"similarity"`
	Attempts   int                `json:"attempts"`
}

// Safe reports whether the upload may proceed.
func (v Verdict) Safe() bool {
	return v.Outcome == OutcomeSafe
}

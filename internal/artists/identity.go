package artists

import (
	"context"
	"time"
)

// Identity is a directory entry for a platform artist.
type Identity struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
}

// Filter selects verified artists that may own a recognized name. A
// candidate qualifies when any non-empty name predicate holds.
type Filter struct {
	// ExcludeID drops the uploader from the results.
	ExcludeID string
	// NameEquals matches the normalized display name exactly.
	NameEquals string
	// NameStartsWith matches a lowercased display-name prefix.
	NameStartsWith string
	// NameContains matches a lowercased display-name substring.
	NameContains string
}

// Empty reports whether no name predicate is set.
func (f Filter) Empty() bool {
	return f.NameEquals == "" && f.NameStartsWith == "" && f.NameContains == ""
}

// Directory is the read-only view of the artist directory used during
// verification.
type Directory interface {
	FindVerifiedArtists(ctx context.Context, filter Filter) ([]Identity, error)
}

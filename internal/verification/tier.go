package verification

// Tier is the uploader's trust classification. It selects the branch of the
// decision table applied to a fingerprint hit.
type Tier int

const (
	// TierUnverified is an artist without a verified profile.
	TierUnverified Tier = iota
	// TierVerified is a verified artist uploading to their own profile.
	TierVerified
	// TierAdminOnBehalf is an administrator uploading for an artist profile.
	TierAdminOnBehalf
)

// TierFor derives the tier from request flags. Acting on behalf of an artist
// takes precedence over the profile's own verification state.
func TierFor(verified, adminOnBehalf bool) Tier {
	switch {
	case adminOnBehalf:
		return TierAdminOnBehalf
	case verified:
		return TierVerified
	default:
		return TierUnverified
	}
}

func (t Tier) String() string {
	switch t {
	case TierUnverified:
		return "unverified"
	case TierVerified:
		return "verified"
	case TierAdminOnBehalf:
		return "admin_on_behalf"
	default:
		return "unknown"
	}
}

package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// VerifyResponse is the transport form of a verification verdict.
type VerifyResponse struct {
	UploadID   string      `json:"uploadId"`
	Outcome    string      `json:"outcome"`
	Reason     string      `json:"reason"`
	Message    string      `json:"message"`
	Tier       string      `json:"tier"`
	Similarity float64     `json:"similarity"`
	Attempts   int         `json:"attempts"`
	Match      *MatchInfo  `json:"match,omitempty"`
	Canonical  *ArtistItem `json:"canonical,omitempty"`
	Uploader   *ArtistItem `json:"uploader,omitempty"`
	Featured   []string    `json:"featuredArtists,omitempty"`
}

// MatchInfo describes the recording the recognition service reported.
type MatchInfo struct {
	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
}

// ArtistItem is a directory entry in transport form.
type ArtistItem struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Verified    bool   `json:"verified"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// ArtistListResponse wraps directory listings.
type ArtistListResponse struct {
	Artists []ArtistItem `json:"artists"`
}

// HealthResponse summarizes server readiness.
type HealthResponse struct {
	Status        string        `json:"status"`
	Version       string        `json:"version,omitempty"`
	DirectoryPath string        `json:"directoryPath,omitempty"`
	Artists       int           `json:"artists"`
	Checks        []CheckStatus `json:"checks,omitempty"`
}

// CheckStatus mirrors one readiness check.
type CheckStatus struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// ErrorResponse is returned for non-verdict failures.
type ErrorResponse struct {
	Error string `json:"error"`
}

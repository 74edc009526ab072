package recognition

import (
	"encoding/json"
	"strings"
)

// Status values reported by the recognition service.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the recognition service payload for a single submission.
// Result is kept raw so an explicit null (no match) can be told apart from a
// missing field (non-conforming payload).
type Response struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
	Error  *ServiceError   `json:"error,omitempty"`
}

// ServiceError carries the error details the service reports with status "error".
type ServiceError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}

type resultPayload struct {
	Title  string  `json:"title"`
	Artist *string `json:"artist"`
	Album  *string `json:"album"`
}

// Match describes a fingerprint hit. Artist may be empty when the service
// recognized the recording but did not report who performed it.
type Match struct {
	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
}

// HasArtist reports whether the service named an artist for the match.
func (m Match) HasArtist() bool {
	return strings.TrimSpace(m.Artist) != ""
}

// AttemptResult classifies one recognition attempt.
type AttemptResult string

const (
	// AttemptMatched means the service reported a hit with match data.
	AttemptMatched AttemptResult = "matched"
	// AttemptNoMatch means the service confidently reported no match.
	AttemptNoMatch AttemptResult = "no_match"
	// AttemptTransientError covers transport failures, staging failures and
	// explicit service errors.
	AttemptTransientError AttemptResult = "transient_error"
	// AttemptFatalUnexpected covers payloads that do not conform to the
	// service contract. They are retried like transient errors.
	AttemptFatalUnexpected AttemptResult = "fatal_unexpected"
)

// Retryable reports whether another attempt may follow this result.
func (r AttemptResult) Retryable() bool {
	return r == AttemptTransientError || r == AttemptFatalUnexpected
}

// Attempt records one iteration of the retry loop.
type Attempt struct {
	Index      int           `json:"index"`
	TempPath   string        `json:"temp_path,omitempty"`
	Result     AttemptResult `json:"result"`
	Diagnostic string        `json:"diagnostic,omitempty"`
}

// Request is the input to Recognize.
type Request struct {
	UploadID         string
	Audio            []byte
	OriginalFileName string
	Title            string
}

// Outcome is the tri-state result of Recognize: Matched with Match set,
// a confident miss (neither flag set), or ServiceError after every attempt
// failed. Diagnostic holds the last failure detail in the error case.
type Outcome struct {
	Matched      bool      `json:"matched"`
	Match        *Match    `json:"match,omitempty"`
	ServiceError bool      `json:"service_error"`
	Diagnostic   string    `json:"diagnostic,omitempty"`
	Attempts     []Attempt `json:"attempts"`
}

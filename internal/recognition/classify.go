package recognition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// classify interprets a service response. Only a success carrying either an
// explicit null result or a result object is a confident answer.
func classify(resp *Response) (AttemptResult, *Match, string) {
	if resp == nil {
		return AttemptFatalUnexpected, nil, "empty response"
	}
	status := strings.ToLower(strings.TrimSpace(resp.Status))
	switch status {
	case StatusSuccess:
		raw := bytes.TrimSpace(resp.Result)
		if len(raw) == 0 {
			return AttemptFatalUnexpected, nil, "success response without result field"
		}
		if bytes.Equal(raw, []byte("null")) {
			return AttemptNoMatch, nil, ""
		}
		if raw[0] != '{' {
			return AttemptFatalUnexpected, nil, fmt.Sprintf("result is not an object: %s", snippet(raw))
		}
		var payload resultPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return AttemptFatalUnexpected, nil, fmt.Sprintf("decode result: %v", err)
		}
		match := &Match{Title: strings.TrimSpace(payload.Title)}
		if payload.Artist != nil {
			match.Artist = strings.TrimSpace(*payload.Artist)
		}
		if payload.Album != nil {
			match.Album = strings.TrimSpace(*payload.Album)
		}
		return AttemptMatched, match, ""
	case StatusError:
		if resp.Error == nil {
			return AttemptTransientError, nil, "service reported an error without details"
		}
		return AttemptTransientError, nil, fmt.Sprintf("service error %d: %s", resp.Error.Code, strings.TrimSpace(resp.Error.Message))
	case "":
		return AttemptFatalUnexpected, nil, "response without status"
	default:
		return AttemptFatalUnexpected, nil, fmt.Sprintf("unexpected status %q", resp.Status)
	}
}

func snippet(raw []byte) string {
	const limit = 120
	text := strings.TrimSpace(string(raw))
	if len(text) > limit {
		return text[:limit] + "…"
	}
	return text
}

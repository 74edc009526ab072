package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultBaseURL      = "https://api.audd.io/"
	defaultHTTPTimeout  = 30 * time.Second
	defaultReturnFields = "apple_music,spotify"
	maxResponseBytes    = 1 << 20
)

// ErrMalformedResponse indicates the service replied with a body that is not
// valid JSON.
var ErrMalformedResponse = errors.New("malformed recognition response")

// Service submits one staged audio file for recognition.
type Service interface {
	Identify(ctx context.Context, path string) (*Response, error)
}

// AudDService talks to the AudD recognition HTTP API.
type AudDService struct {
	apiToken     string
	baseURL      string
	returnFields string
	httpClient   *http.Client
}

// ServiceOption customizes AudDService.
type ServiceOption func(*AudDService)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) ServiceOption {
	return func(s *AudDService) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithReturnFields overrides the extra metadata sources requested per match.
func WithReturnFields(fields string) ServiceOption {
	return func(s *AudDService) {
		s.returnFields = strings.TrimSpace(fields)
	}
}

// NewAudDService constructs the HTTP service. An empty baseURL selects the
// public endpoint and a non-positive timeout selects the default.
func NewAudDService(apiToken, baseURL string, timeout time.Duration, opts ...ServiceOption) *AudDService {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	service := &AudDService{
		apiToken:     strings.TrimSpace(apiToken),
		baseURL:      strings.TrimSpace(baseURL),
		returnFields: defaultReturnFields,
		httpClient:   &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(service)
	}
	if service.baseURL == "" {
		service.baseURL = defaultBaseURL
	}
	return service
}

type httpStatusError struct {
	StatusCode int
	Body       string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("recognition request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Identify uploads the file at path and decodes the service payload.
func (s *AudDService) Identify(ctx context.Context, path string) (*Response, error) {
	if s.apiToken == "" {
		return nil, errors.New("recognition request: api token required")
	}
	body, contentType, err := s.encodeForm(path)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, body)
	if err != nil {
		return nil, fmt.Errorf("recognition request: new request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recognition request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("recognition request: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &httpStatusError{StatusCode: resp.StatusCode, Body: snippet(raw)}
	}
	var payload Response
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v (body=%s)", ErrMalformedResponse, err, snippet(raw))
	}
	return &payload, nil
}

// Ping verifies the endpoint answers HTTP at all. Any status below 500 counts
// as reachable since the API rejects bare GET requests.
func (s *AudDService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return fmt.Errorf("recognition ping: new request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("recognition ping: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	if resp.StatusCode >= 500 {
		return &httpStatusError{StatusCode: resp.StatusCode, Body: resp.Status}
	}
	return nil
}

func (s *AudDService) encodeForm(path string) (io.Reader, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("recognition request: open audio: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("api_token", s.apiToken); err != nil {
		return nil, "", fmt.Errorf("recognition request: encode form: %w", err)
	}
	if s.returnFields != "" {
		if err := writer.WriteField("return", s.returnFields); err != nil {
			return nil, "", fmt.Errorf("recognition request: encode form: %w", err)
		}
	}
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", fmt.Errorf("recognition request: encode form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("recognition request: copy audio: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("recognition request: encode form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

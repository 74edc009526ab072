package recognition

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"soundguard/internal/fileutil"
	"soundguard/internal/logging"
	"soundguard/internal/services"
	"soundguard/internal/textutil"
)

const (
	// DefaultMaxAttempts bounds how often one upload is submitted.
	DefaultMaxAttempts = 3
	// DefaultRetryDelay is the fixed pause between attempts.
	DefaultRetryDelay = 3 * time.Second

	stageName      = "recognition"
	fallbackSuffix = ".mp3"
)

// Client runs the bounded retry loop around a Service.
type Client struct {
	service     Service
	maxAttempts int
	retryDelay  time.Duration
	tempDir     string
	sleeper     func(time.Duration)
	logger      *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithMaxAttempts overrides the attempt budget (defaults to 3).
func WithMaxAttempts(attempts int) Option {
	return func(c *Client) {
		c.maxAttempts = attempts
	}
}

// WithRetryDelay overrides the pause between attempts (defaults to 3s).
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = delay
	}
}

// WithTempDir stages audio under dir instead of os.TempDir.
func WithTempDir(dir string) Option {
	return func(c *Client) {
		c.tempDir = strings.TrimSpace(dir)
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// WithLogger attaches a logger; a no-op logger is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs a recognition client around service.
func NewClient(service Service, opts ...Option) *Client {
	client := &Client{
		service:     service,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.maxAttempts <= 0 {
		client.maxAttempts = DefaultMaxAttempts
	}
	if client.retryDelay < 0 {
		client.retryDelay = 0
	}
	client.logger = logging.NewComponentLogger(client.logger, stageName)
	return client
}

// Recognize submits the audio buffer until the service gives a confident
// answer or the attempt budget runs out. The returned error is non-nil only
// for invalid input or a cancelled context; service trouble is reported
// through Outcome.ServiceError.
func (c *Client) Recognize(ctx context.Context, req Request) (Outcome, error) {
	var outcome Outcome
	if c == nil || c.service == nil {
		return outcome, services.Wrap(services.ErrConfiguration, stageName, "recognize", "recognition service not configured", nil)
	}
	if len(req.Audio) == 0 {
		return outcome, services.Wrap(services.ErrValidation, stageName, "recognize", "audio buffer is empty", nil)
	}
	uploadID := strings.TrimSpace(req.UploadID)
	if uploadID == "" {
		uploadID = uuid.NewString()
	}
	ctx = services.WithStage(services.WithUploadID(ctx, uploadID), stageName)
	logger := logging.WithContext(ctx, c.logger)

	staged := ""
	defer func() {
		c.discard(logger, staged)
	}()

	var lastDiagnostic string
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return outcome, services.Wrap(services.ErrTimeout, stageName, "recognize", "cancelled before attempt", err)
		}
		c.discard(logger, staged)
		staged = ""

		record := Attempt{Index: attempt}
		path, err := c.stage(uploadID, attempt, req)
		if err != nil {
			record.Result = AttemptTransientError
			record.Diagnostic = err.Error()
		} else {
			staged = path
			record.TempPath = path
			resp, callErr := c.service.Identify(ctx, path)
			switch {
			case callErr != nil && ctx.Err() != nil:
				record.Result = AttemptTransientError
				record.Diagnostic = callErr.Error()
				outcome.Attempts = append(outcome.Attempts, record)
				return outcome, services.Wrap(services.ErrTimeout, stageName, "recognize", "cancelled during attempt", ctx.Err())
			case callErr != nil:
				record.Result = AttemptTransientError
				record.Diagnostic = callErr.Error()
			default:
				result, match, diagnostic := classify(resp)
				record.Result = result
				record.Diagnostic = diagnostic
				if !result.Retryable() {
					outcome.Attempts = append(outcome.Attempts, record)
					c.logSettled(logger, attempt, match)
					if result == AttemptMatched {
						outcome.Matched = true
						outcome.Match = match
					}
					return outcome, nil
				}
			}
		}

		outcome.Attempts = append(outcome.Attempts, record)
		lastDiagnostic = record.Diagnostic
		if attempt == c.maxAttempts {
			break
		}
		logging.WarnWithContext(logger, "recognition attempt failed; retrying", "recognition_retry",
			logging.Attempt(attempt),
			logging.Int("max_attempts", c.maxAttempts),
			logging.String("attempt_result", string(record.Result)),
			logging.String("diagnostic", record.Diagnostic),
			logging.Duration("retry_delay", c.retryDelay),
			logging.String(logging.FieldErrorHint, "check recognition service status and api token"),
			logging.String(logging.FieldImpact, "upload verification delayed"),
		)
		if err := c.sleep(ctx, c.retryDelay); err != nil {
			return outcome, services.Wrap(services.ErrTimeout, stageName, "recognize", "cancelled during retry delay", err)
		}
	}

	outcome.ServiceError = true
	outcome.Diagnostic = fmt.Sprintf("recognition failed after %d attempts: %s", c.maxAttempts, lastDiagnostic)
	logging.ErrorWithContext(logger, "recognition service unavailable", "recognition_exhausted",
		logging.Int("attempts", len(outcome.Attempts)),
		logging.String("diagnostic", lastDiagnostic),
		logging.String(logging.FieldErrorHint, "verify recognition api token and connectivity"),
	)
	return outcome, nil
}

// stage writes the audio buffer to a fresh uniquely named scratch file.
func (c *Client) stage(uploadID string, attempt int, req Request) (string, error) {
	pattern := fmt.Sprintf("soundguard-%s-%d-*%s",
		textutil.SanitizeToken(uploadID),
		attempt,
		textutil.SanitizeExtension(req.OriginalFileName, fallbackSuffix),
	)
	path, err := fileutil.WriteTemp(c.tempDir, pattern, req.Audio)
	if err != nil {
		return "", fmt.Errorf("stage audio: %w", err)
	}
	return path, nil
}

func (c *Client) logSettled(logger *slog.Logger, attempt int, match *Match) {
	if match == nil {
		logger.Info("recognition found no match", logging.Attempt(attempt))
		return
	}
	logger.Info("recognition matched",
		logging.Attempt(attempt),
		logging.String("matched_title", match.Title),
		logging.String("matched_artist", match.Artist),
		logging.Bool("has_artist", match.HasArtist()),
	)
}

func (c *Client) discard(logger *slog.Logger, path string) {
	if err := fileutil.RemoveIfExists(path); err != nil {
		logging.WarnWithContext(logger, "failed to remove staged audio", "recognition_cleanup_failed",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the file manually"),
			logging.String(logging.FieldImpact, "scratch file left on disk"),
		)
	}
}

func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.sleeper != nil {
		c.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

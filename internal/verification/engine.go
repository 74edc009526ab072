package verification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"soundguard/internal/artists"
	"soundguard/internal/logging"
	"soundguard/internal/recognition"
	"soundguard/internal/services"
	"soundguard/internal/textutil"
)

const (
	stageName    = "verification"
	decisionType = "upload_verification"
)

// Recognizer performs the fingerprint lookup.
type Recognizer interface {
	Recognize(ctx context.Context, req recognition.Request) (recognition.Outcome, error)
}

// CandidateFinder lists verified artists that may own a recognized name.
type CandidateFinder interface {
	FindCandidates(ctx context.Context, matchedName, excludeID string) ([]artists.Identity, error)
}

// Engine orchestrates recognition, trust-tier policy and owner resolution.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	recognizer Recognizer
	finder     CandidateFinder
	policy     Policy
	logger     *slog.Logger
}

// NewEngine constructs an engine.
func NewEngine(recognizer Recognizer, finder CandidateFinder, policy Policy, logger *slog.Logger) *Engine {
	return &Engine{
		recognizer: recognizer,
		finder:     finder,
		policy:     policy,
		logger:     logging.NewComponentLogger(logger, stageName),
	}
}

// VerifyUpload produces the verdict for req. A non-nil error means the engine
// could not reach a decision: invalid input, a cancelled context, or an
// unavailable artist directory.
func (e *Engine) VerifyUpload(ctx context.Context, req UploadRequest) (Verdict, error) {
	if err := e.validate(req); err != nil {
		return Verdict{}, err
	}
	uploadID := strings.TrimSpace(req.UploadID)
	if uploadID == "" {
		uploadID = uuid.NewString()
	}
	ctx = services.WithStage(services.WithUploadID(ctx, uploadID), stageName)
	logger := logging.WithContext(ctx, e.logger)
	tier := req.Tier()

	logger.Info("verification started",
		logging.String("title", req.Title),
		logging.String("uploader_id", req.UploaderID),
		logging.String("uploader_name", req.UploaderName),
		logging.String("tier", tier.String()),
		logging.Any("featured_artists", req.FeaturedArtists),
	)

	outcome, err := e.recognizer.Recognize(ctx, recognition.Request{
		UploadID:         uploadID,
		Audio:            req.Audio,
		OriginalFileName: req.OriginalFileName,
		Title:            req.Title,
	})
	if err != nil {
		return Verdict{}, err
	}

	verdict := Verdict{
		UploadID: uploadID,
		Tier:     tier.String(),
		Attempts: len(outcome.Attempts),
	}
	switch {
	case outcome.ServiceError:
		verdict.Outcome = OutcomeServiceError
		verdict.Reason = ReasonServiceUnavailable
		verdict.Message = "Copyright check is temporarily unavailable; retry the upload later or request manual review."
		attrs := append(logging.DecisionAttrs(decisionType, string(verdict.Outcome), verdict.Reason),
			logging.Int("attempts", verdict.Attempts),
			logging.String("diagnostic", outcome.Diagnostic),
			logging.String(logging.FieldErrorHint, "recognition service unreachable after retries"),
			logging.String(logging.FieldImpact, "upload not verified"),
		)
		logging.WarnWithContext(logger, "verification decision", "verification_service_error", attrs...)
		return verdict, nil
	case !outcome.Matched || outcome.Match == nil:
		verdict.Outcome = OutcomeSafe
		verdict.Reason = ReasonNoMatch
		verdict.Message = "No matching recording found."
		e.logDecision(logger, verdict)
		return verdict, nil
	}

	match := *outcome.Match
	verdict.Match = &match
	verdict.Similarity = textutil.NameSimilarity(req.UploaderName, match.Artist)

	switch e.policy.Evaluate(tier, match, verdict.Similarity) {
	case DecisionBlockNoArtist:
		verdict.Outcome = OutcomeBlocked
		verdict.Reason = ReasonNoArtist
		verdict.Message = fmt.Sprintf("This recording matches %s, but its artist could not be identified, so ownership cannot be verified.", describeTitle(match.Title))
	case DecisionBlockUnverified:
		verdict.Outcome = OutcomeBlocked
		verdict.Reason = ReasonUnverifiedUploader
		verdict.Message = fmt.Sprintf("This recording matches %s by %s. Only verified artists may upload recognized recordings.", describeTitle(match.Title), match.Artist)
	case DecisionBlockDissimilar:
		verdict.Outcome = OutcomeBlocked
		verdict.Reason = ReasonDissimilarName
		verdict.Message = fmt.Sprintf("This recording matches %s by %s, which does not match the uploading artist.", describeTitle(match.Title), match.Artist)
	case DecisionAcceptAdmin:
		verdict.Outcome = OutcomeSafe
		verdict.Reason = ReasonAdminOnBehalf
		verdict.Message = fmt.Sprintf("Recording matches %s by %s; accepted for the artist profile the administrator acts for.", describeTitle(match.Title), match.Artist)
	case DecisionResolveOwner:
		if err := e.resolveOwner(ctx, req, match, &verdict); err != nil {
			return Verdict{}, err
		}
	}
	e.logDecision(logger, verdict)
	return verdict, nil
}

func (e *Engine) resolveOwner(ctx context.Context, req UploadRequest, match recognition.Match, verdict *Verdict) error {
	if e.finder == nil {
		return services.Wrap(services.ErrConfiguration, stageName, "resolve owner", "candidate finder not configured", nil)
	}
	candidates, err := e.finder.FindCandidates(ctx, match.Artist, req.UploaderID)
	if err != nil {
		return err
	}
	resolution := Resolve(match.Artist, req.Uploader(), candidates)
	canonical := resolution.Canonical
	verdict.Canonical = &canonical
	if canonical.ID == req.UploaderID {
		verdict.Outcome = OutcomeSafe
		verdict.Reason = ReasonOwnerConfirmed
		verdict.Message = fmt.Sprintf("Recording matches %s by %s; ownership confirmed.", describeTitle(match.Title), match.Artist)
		return nil
	}
	verdict.Outcome = OutcomeBlocked
	verdict.Reason = ReasonCanonicalConflict
	verdict.Message = fmt.Sprintf("This recording matches %s and belongs to the verified artist %s.", describeTitle(match.Title), canonical.DisplayName)
	return nil
}

func (e *Engine) validate(req UploadRequest) error {
	if e == nil || e.recognizer == nil {
		return services.Wrap(services.ErrConfiguration, stageName, "verify upload", "recognizer not configured", nil)
	}
	if len(req.Audio) == 0 {
		return services.Wrap(services.ErrValidation, stageName, "verify upload", "audio buffer is empty", nil)
	}
	if strings.TrimSpace(req.UploaderID) == "" {
		return services.Wrap(services.ErrValidation, stageName, "verify upload", "uploader id is required", nil)
	}
	return nil
}

func (e *Engine) logDecision(logger *slog.Logger, verdict Verdict) {
	attrs := logging.DecisionAttrs(decisionType, string(verdict.Outcome), verdict.Reason)
	attrs = append(attrs,
		logging.Score(verdict.Similarity),
		logging.Int("attempts", verdict.Attempts),
	)
	if verdict.Match != nil {
		attrs = append(attrs,
			logging.String("matched_title", verdict.Match.Title),
			logging.String("matched_artist", verdict.Match.Artist),
		)
	}
	if verdict.Canonical != nil {
		attrs = append(attrs,
			logging.String("canonical_id", verdict.Canonical.ID),
			logging.String("canonical_name", verdict.Canonical.DisplayName),
		)
	}
	logger.Info("verification decision", logging.Args(attrs...)...)
}

func describeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "a known recording"
	}
	return fmt.Sprintf("%q", title)
}

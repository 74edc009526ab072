package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldUploadID is the standardized structured logging key for upload identifiers.
	FieldUploadID = "upload_id"
	// FieldStage is the standardized structured logging key for verification stage names.
	FieldStage = "stage"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldEventType classifies a log line for filtering (e.g. recognition_retry).
	FieldEventType = "event_type"
	// FieldErrorHint carries the suggested next step for warnings and errors.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldDecisionType names the policy decision being logged.
	FieldDecisionType = "decision_type"
	// FieldDecisionResult is the outcome of a policy decision.
	FieldDecisionResult = "decision_result"
	// FieldDecisionReason is the machine-readable reason behind a decision.
	FieldDecisionReason = "decision_reason"
	// FieldSimilarity carries a name similarity score.
	FieldSimilarity = "similarity"
	// FieldAttempt is the 1-based recognition attempt number.
	FieldAttempt = "attempt"
)

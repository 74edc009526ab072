// Package verification decides whether an uploaded recording may be
// published under the uploader's artist identity.
//
// Engine.VerifyUpload drives one upload through fingerprint lookup and the
// trust-tier decision table, producing exactly one Verdict: Safe, Blocked or
// ServiceError. Failures of the engine's own dependencies (the artist
// directory, a cancelled context) are returned as errors instead of verdicts
// so callers never mistake an outage for a decision about the upload.
//
// Resolve is the canonical-owner search used on the verified path. It is a
// pure function over the uploader and the candidate list supplied by the
// artist finder.
package verification

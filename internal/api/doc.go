// Package api defines wire-format types and service helpers shared by the
// HTTP server and the CLI. It translates verdicts and directory identities
// into transport-friendly DTOs so consumers never couple to internal types.
//
// # Key Types
//
// VerifyResponse: verdict, matched recording and canonical owner for one
// upload.
//
// ArtistItem: directory entry with RFC3339 creation time.
//
// HealthResponse: readiness summary served at /api/health.
//
// # Services
//
// ArtistService wraps the directory store for listing and administration.
// NewEngine wires recognition, directory and policy from configuration.
// VerifyFile runs a verification for a file on disk, as the CLI does.
//
// # Design Notes
//
// DTOs use camelCase JSON tags. Enumerations (outcome, tier, reason) are
// exposed as lowercase strings. Timestamps use RFC3339 with milliseconds.
package api

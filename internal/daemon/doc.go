// Package daemon runs the long-lived soundguard HTTP service.
//
// It wires configuration, the artist directory and the verification engine
// into a single lifecycle with flock-based locking so only one server owns a
// state directory at a time. The HTTP layer accepts multipart uploads at
// /api/verify, lists the directory at /api/artists and reports readiness at
// /api/health; everything except health requires the configured bearer token.
//
// Keep orchestration here: verification rules live in the verification
// package and transport DTOs in api.
package daemon

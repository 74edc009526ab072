// Package services defines shared utilities consumed by the verification
// engine and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp upload IDs, stage names, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that classify failures
//     consistently (dependency outage vs bad input vs misconfiguration).
//   - HTTPStatus, which maps those markers onto transport status codes.
//
// Use these helpers when wiring new integrations so operational behaviour
// (error handling, observability, retries) stays uniform across the engine.
package services

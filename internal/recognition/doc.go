// Package recognition wraps the external audio fingerprint recognition service.
//
// Client.Recognize stages the uploaded buffer to a uniquely named scratch file,
// submits it to a Service, and interprets the reply as one of three outcomes:
// a match, a confident no-match, or a service error once the retry budget is
// exhausted. Attempts run strictly one after another with a fixed pause in
// between; a confident answer (hit or miss) is never retried.
//
// At most one scratch file exists per call at any time and the last one is
// removed before Recognize returns, whichever path it takes. File names carry
// the upload identifier, the attempt index and a random suffix so concurrent
// uploads never collide in a shared temp directory.
//
// AudDService is the HTTP implementation used in production. Tests substitute
// their own Service and a no-op sleeper via WithSleeper.
package recognition

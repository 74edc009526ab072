// Command soundguard verifies uploaded audio against an external
// fingerprint recognition service and the verified-artist directory.
//
// Subcommands cover one-shot verification of a file on disk, directory
// administration (add, list and remove artists), configuration helpers,
// readiness checks, and `serve`, which runs the HTTP verification API under a
// single-instance lock.
package main

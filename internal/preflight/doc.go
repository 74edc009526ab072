// Package preflight runs readiness checks before soundguard serves traffic.
//
// Local checks cover the state, log and scratch directories (read/write/exec
// access via access(2)) and the artist directory database. RunAll adds a
// single unretried request against the recognition endpoint. The CLI renders
// results as a table and the HTTP health endpoint reports the local subset.
package preflight

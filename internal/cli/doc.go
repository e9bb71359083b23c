// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates CLI flags and MODLINK_* environment variables into the
// application's internal configuration and dispatches the check, order,
// graph and run commands.
package cli

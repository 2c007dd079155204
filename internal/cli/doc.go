// Package cli is responsible for the command-line surface: subcommand
// dispatch, flag parsing and validation, and process-level concerns like
// exit codes. It translates CLI flags into the application's internal
// configuration.
package cli

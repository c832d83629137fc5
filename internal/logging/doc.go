// Package logging provides slog-based structured logging for reelmatch.
//
// New constructs a logger from Options; NewFromConfig derives those options
// from the application configuration, writing to stdout and optionally a log
// file. When no format is configured, console output is chosen for
// interactive terminals and JSON otherwise.
//
// The attrs helpers keep attribute construction terse and standardize the
// field names shared across components.
package logging

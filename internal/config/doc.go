// Package config loads and validates reelmatch configuration.
//
// Configuration is TOML, discovered at ~/.config/reelmatch/config.toml or a
// project-local reelmatch.toml, overridable with an explicit path. Load
// applies defaults, expands ~ in path fields, and validates the result, so
// callers can trust every field on the returned Config.
package config

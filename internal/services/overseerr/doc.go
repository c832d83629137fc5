// Package overseerr provides a client for the Overseerr search and media
// status endpoints. It serves as a secondary resolution path when TMDB
// searches come up empty, and as an availability signal for titles already
// tracked by the request manager.
package overseerr

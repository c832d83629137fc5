// Package tmdb provides a client for The Movie Database search and details
// endpoints. It is the canonical catalog: its numeric IDs unify the
// different editions and cuts of one work across catalogs.
package tmdb

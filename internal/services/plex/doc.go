// Package plex provides a read-only client for the Plex Media Server
// library endpoints. It lists library sections and their items, and
// extracts canonical TMDB identifiers from Plex GUID metadata so library
// contents can be matched against external catalogs.
package plex

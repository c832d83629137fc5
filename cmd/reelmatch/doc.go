// Command reelmatch reconciles AI-generated movie and show recommendations
// against a Plex library, resolving canonical TMDB IDs and reporting which
// titles are already available.
package main

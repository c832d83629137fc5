// Package availability decides whether recommended titles are already
// present in a Plex library. Canonical TMDB IDs match exactly and take
// precedence over text matching, since one ID covers every edition and cut
// of a work. Titles without a usable ID fall back to exact intersection of
// title-variant sets, never substring containment.
package availability

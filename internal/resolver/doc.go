// Package resolver maps free-form titles to canonical TMDB identifiers.
//
// Resolution is a multi-pass search: title plus year, title alone, a
// simplified title with subtitle text truncated, then an optional
// Overseerr fallback. Within one result page candidates are ranked by a
// composite of fuzzy title similarity, an exact-year bonus, and catalog
// popularity. Outcomes, including deliberate misses, are cached per
// (kind, normalized title, year) and recorded on a bounded event trail.
package resolver

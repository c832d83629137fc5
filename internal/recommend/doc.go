// Package recommend orchestrates the full reconciliation pipeline. It takes
// ranked AI recommendation lists, resolves canonical TMDB IDs, checks Plex
// availability, applies diversity caps to the ranked list, and emits a
// structured report. Per-item network work runs on a bounded worker pool
// with results restored to input order.
package recommend

// Package titles canonicalizes movie and show titles for cross-catalog
// comparison.
//
// Normalize reduces a title to a lowercase alphanumeric form while keeping
// trailing differentiator suffixes (Jr, Sr, roman numerals) intact, so that
// "Mythbusters Jr." and "Mythbusters" stay distinct. Variants expands a title
// into the set of plausible textual forms a library might file it under:
// edition suffixes stripped, leading articles dropped, trailing year
// annotations removed.
//
// Matching against variant sets uses exact set intersection only. Substring
// containment is deliberately not offered; it matches franchise base titles
// against their spin-offs.
package titles

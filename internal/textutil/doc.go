// Package textutil provides text processing utilities for title similarity.
//
// The primary use case is scoring catalog search results against a query
// title. TokenSortRatio gives a token-order-insensitive similarity in the
// 0-100 range: both strings are tokenized, the tokens sorted and rejoined,
// and the rejoined forms compared by edit distance. Word order differences
// ("Empire Strikes Back, The" vs "The Empire Strikes Back") therefore do not
// depress the score.
package textutil

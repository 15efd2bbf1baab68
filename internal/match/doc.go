// Package match contains the pure text functions of the lookup pipeline.
//
// # Similarity
//
// [Similarity] ranks catalog search results against a cleaned video title
// using the Dice coefficient over character bigrams. Bigram overlap tolerates
// word reordering, truncation, and decorative suffixes ("(Official Video)")
// far better than whole-word comparison on short strings, which is why it is
// the canonical scorer. [Jaccard] is the earlier word-set measure, exported
// but never mixed into the ranking pipeline.
//
// # Title cleaning
//
// [CleanTitle] reduces a raw video title to the search query sent to the
// catalog; [FallbackQuery] derives a secondary query from the description
// when the best score falls below [FallbackThreshold].
//
// # Description parsing
//
// [ParseDescription] extracts producer/publisher/ISRC/UPC credits from
// semi-structured description text via line-prefix heuristics. All functions
// here are total: malformed input maps to defined defaults, never an error.
package match

// Package tasks implements video-to-catalog lookup operations.
//
// The core abstraction is [LookupEngine], which fetches video metadata,
// builds a search query from the cleaned title, scores catalog candidates
// against it, and offers a description-based fallback search when no
// candidate scores above the match threshold. Operations emit progress
// updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

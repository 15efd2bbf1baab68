// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing lookup results:
//  1. [ProgressView] : Monitor batch lookup progress
//  2. [ResultListView] : Browse per-video outcomes
//  3. [CandidateListView] : Inspect ranked catalog candidates for one video
//  4. [DetailView] : Full candidate metadata with ISRC copy
//  5. [FallbackView] : Accept or decline a description-based retry
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the LookupEngine, providing non-blocking status reporting during batch lookups.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, c, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui

package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dren-arifi/isrcfind/internal/models"
	"github.com/dren-arifi/isrcfind/internal/tasks"
)

// progressUpdateMsg carries one engine progress event into Update.
type progressUpdateMsg tasks.ProgressUpdate

// batchCompleteMsg fires when the batch lookup goroutine finishes.
type batchCompleteMsg struct {
	report *models.LookupReport
	err    error
}

// fallbackDoneMsg fires when a fallback search finishes for one result.
type fallbackDoneMsg struct {
	index  int
	result *models.LookupResult
	err    error
}

// copiedMsg fires after an ISRC clipboard copy attempt.
type copiedMsg struct {
	value string
	err   error
}

var (
	_ tea.Msg = progressUpdateMsg{}
	_ tea.Msg = batchCompleteMsg{}
	_ tea.Msg = fallbackDoneMsg{}
	_ tea.Msg = copiedMsg{}
)

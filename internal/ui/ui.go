package ui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dren-arifi/isrcfind/internal/models"
	"github.com/dren-arifi/isrcfind/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ProgressView ViewState = iota
	ResultListView
	CandidateListView
	DetailView
	FallbackView
)

// Model represents the TUI application state.
type Model struct {
	ctx           context.Context
	view          ViewState
	engine        *tasks.LookupEngine
	inputs        []string
	width         int
	height        int
	resultList    list.Model
	candidateList list.Model
	report        *models.LookupReport
	selected      int
	detail        *models.SearchCandidate
	progressChan  chan tasks.ProgressUpdate
	progress      tasks.ProgressUpdate
	status        string
	err           error
	help          help.Model
	keys          keyMap
}

// NewModel creates a new TUI model that looks up the given video
// references when started.
func NewModel(ctx context.Context, engine *tasks.LookupEngine, inputs []string) *Model {
	return &Model{
		ctx:    ctx,
		view:   ProgressView,
		engine: engine,
		inputs: inputs,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init starts the batch lookup.
func (m *Model) Init() tea.Cmd {
	return m.startBatch()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.resultList.Width() == 0 {
			m.resultList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.candidateList.Width() == 0 {
			m.candidateList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ResultListView:
			return m.handleResultListKeys(msg)
		case CandidateListView:
			return m.handleCandidateListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case FallbackView:
			return m.handleFallbackKeys(msg)
		case ProgressView:
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		}

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case batchCompleteMsg:
		m.report = msg.report
		m.err = msg.err
		if m.progressChan != nil {
			m.progressChan = nil
		}
		if m.err != nil {
			return m, tea.Quit
		}
		m.buildResultList()
		m.view = ResultListView
		return m, nil

	case fallbackDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("fallback failed: %v", msg.err)
			m.view = ResultListView
			return m, nil
		}
		m.report.Results[msg.index] = *msg.result
		m.buildResultList()
		m.selected = msg.index
		m.buildCandidateList(msg.result)
		m.view = CandidateListView
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("copied %s", msg.value)
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ProgressView:
		return m.renderProgress()
	case ResultListView:
		return m.renderResultList()
	case CandidateListView:
		return m.renderCandidateList()
	case DetailView:
		return m.renderDetail()
	case FallbackView:
		return m.renderFallback()
	default:
		return ""
	}
}

func (m *Model) selectedResult() *models.LookupResult {
	if m.report == nil || m.selected < 0 || m.selected >= len(m.report.Results) {
		return nil
	}
	return &m.report.Results[m.selected]
}

func (m *Model) handleResultListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if item, ok := m.resultList.SelectedItem().(resultItem); ok {
			m.selected = m.resultList.Index()
			m.status = ""

			if item.result.Err != nil {
				return m, nil
			}
			if item.result.FallbackAvailable {
				m.view = FallbackView
				return m, nil
			}

			m.buildCandidateList(&item.result)
			m.view = CandidateListView
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) handleCandidateListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ResultListView
		return m, nil
	case "enter":
		if item, ok := m.candidateList.SelectedItem().(candidateItem); ok {
			candidate := item.candidate
			m.detail = &candidate
			m.status = ""
			m.view = DetailView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.candidateList, cmd = m.candidateList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = CandidateListView
		return m, nil
	case "c":
		if m.detail != nil && m.detail.ISRC != models.NA {
			return m, m.copyToClipboard(m.detail.ISRC)
		}
		m.status = "no ISRC to copy"
		return m, nil
	}
	return m, nil
}

func (m *Model) handleFallbackKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "y":
		return m, m.runFallback()
	case "n", "esc":
		if result := m.selectedResult(); result != nil {
			m.buildCandidateList(result)
		}
		m.view = CandidateListView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ResultListView:
		m.resultList, cmd = m.resultList.Update(msg)
	case CandidateListView:
		m.candidateList, cmd = m.candidateList.Update(msg)
	}
	return m, cmd
}

func (m *Model) buildResultList() {
	items := make([]list.Item, len(m.report.Results))
	for i, result := range m.report.Results {
		items[i] = resultItem{result: result}
	}
	m.resultList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.resultList.Title = fmt.Sprintf("Lookup Results (%d/%d matched)", m.report.SuccessCount, m.report.TotalItems)
	m.resultList.SetSize(m.width-4, m.height-8)
}

func (m *Model) buildCandidateList(result *models.LookupResult) {
	items := make([]list.Item, len(result.Candidates))
	for i, candidate := range result.Candidates {
		items[i] = candidateItem{candidate: candidate}
	}
	m.candidateList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.candidateList.Title = fmt.Sprintf("Candidates for '%s'", result.Query)
	m.candidateList.SetSize(m.width-4, m.height-8)
}

func (m *Model) startBatch() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan

	go func() {
		report, err := m.engine.LookupBatch(m.ctx, progress, m.inputs)
		m.report = report
		m.err = err
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return batchCompleteMsg{report: m.report, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return batchCompleteMsg{report: m.report, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) runFallback() tea.Cmd {
	index := m.selected
	result := m.selectedResult()

	return func() tea.Msg {
		fallback, err := m.engine.RunFallback(m.ctx, nil, result)
		return fallbackDoneMsg{index: index, result: fallback, err: err}
	}
}

func (m *Model) copyToClipboard(value string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{value: value, err: clipboard.WriteAll(value)}
	}
}

func (m *Model) renderProgress() string {
	title := styles.title.Render("Looking up videos")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchVideo:
		phase = fmt.Sprintf("Fetching video info (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.Search:
		phase = fmt.Sprintf("Searching catalog (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.Score:
		phase = "Scoring candidates..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResultList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	status := ""
	if m.status != "" {
		status = "\n" + styles.warn.Render(m.status)
	}

	return fmt.Sprintf("%s%s\n\n%s", m.resultList.View(), status, helpView)
}

func (m *Model) renderCandidateList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.candidateList.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.detail == nil {
		return styles.err.Render("No candidate selected\n\nPress esc to go back")
	}

	title := styles.title.Render(fmt.Sprintf("%s - %s", m.detail.ArtistName, m.detail.Name))
	info := fmt.Sprintf(
		"\nAlbum: %s\nReleased: %s\nISRC: %s\nScore: %.3f\n",
		m.detail.AlbumName, m.detail.ReleaseDate, m.detail.ISRC, m.detail.SimilarityScore,
	)

	status := ""
	if m.status != "" {
		status = "\n" + styles.ok.Render(m.status)
	}

	helpKeys := []key.Binding{m.keys.copy, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s%s\n\n%s", title, info, status, helpView)
}

func (m *Model) renderFallback() string {
	result := m.selectedResult()
	if result == nil {
		return styles.err.Render("No result selected\n\nPress esc to go back")
	}

	title := styles.title.Render("No strong match found")
	info := fmt.Sprintf(
		"\nBest score: %.3f\nRetry with the description?\n\n  %s\n",
		result.MaxScore, result.FallbackQuery,
	)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n%s", title, info, helpView)
}

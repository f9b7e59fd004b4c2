package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/filmcard/internal/fetch"
	"github.com/five82/filmcard/internal/logtail"
	"github.com/five82/filmcard/internal/prefs"
)

const diagnosticsLines = 8

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *fetch.Controller
	Locator    *string
	ThemeName  string
	PrefsPath  string
	LogPath    string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx        context.Context
	controller *fetch.Controller
	locator    *string
	prefsPath  string
	logPath    string

	theme  Theme
	styles Styles
	width  int
	height int
	ready  bool

	// Last state read from the controller; View renders only this.
	state fetch.State
	latest uint64

	spinner  spinner.Model
	viewport viewport.Model

	editing bool
	input   textinput.Model

	showDiagnostics bool
	diagnostics     []logtail.Entry
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	theme := GetTheme(opts.ThemeName)

	input := textinput.New()
	input.Placeholder = "https://letterboxd.com/film/..."
	input.Prompt = "Film URL: "
	input.CharLimit = 512

	m := Model{
		ctx:        ctx,
		controller: opts.Controller,
		locator:    opts.Locator,
		prefsPath:  prefsPath,
		logPath:    opts.LogPath,
		input:      input,
	}
	m.applyTheme(theme)
	if m.controller != nil {
		m.state = m.controller.State()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, m.activateCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.contentWidth(), m.contentHeight())
			m.ready = true
		}
		m.resize()
		return m, nil

	case activatedMsg:
		if !m.observe(msg.generation) {
			return m, nil
		}
		m.syncState()
		return m, m.spinner.Tick

	case fetchResultMsg:
		var cmds []tea.Cmd
		if msg.applied && m.observe(msg.generation) {
			m.syncState()
			if m.state.Phase == fetch.Ready {
				cmds = append(cmds, m.rememberLocatorCmd())
			}
		}
		if m.showDiagnostics {
			cmds = append(cmds, loadDiagnosticsCmd(m.logPath))
		}
		return m, tea.Batch(cmds...)

	case diagnosticsMsg:
		m.diagnostics = msg
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.state.Phase != fetch.Pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	sections := []string{m.renderHeader()}
	if m.editing {
		sections = append(sections, m.input.View())
	}
	sections = append(sections, m.renderBody())
	if m.showDiagnostics {
		sections = append(sections, m.styles.Panel.Width(m.contentWidth()).Render(
			renderDiagnostics(m.diagnostics, m.styles, m.contentWidth()-2, diagnosticsLines)))
	}
	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "r":
		return m, m.activateCmd()

	case "o", "/":
		m.editing = true
		if m.locator != nil {
			m.input.SetValue(*m.locator)
		}
		m.input.CursorEnd()
		m.resize()
		return m, m.input.Focus()

	case "d":
		m.showDiagnostics = !m.showDiagnostics
		m.resize()
		if m.showDiagnostics {
			return m, loadDiagnosticsCmd(m.logPath)
		}
		return m, nil

	case "T":
		m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
		m.refreshContent()
		return m, m.savePrefsCmd("")
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.editing = false
		m.input.Blur()
		m.resize()
		return m, nil

	case "enter":
		m.editing = false
		m.input.Blur()
		m.locator = locatorFromInput(m.input.Value())
		m.resize()
		return m, m.activateCmd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// activateCmd starts a new activation for the current locator. The
// controller moves to Pending before the command returns, and the request
// itself runs off the update loop.
func (m Model) activateCmd() tea.Cmd {
	if m.controller == nil {
		return nil
	}
	act := m.controller.Activate(fetch.Input{Locator: m.locator})
	ctx := m.ctx
	return tea.Batch(
		func() tea.Msg { return activatedMsg{generation: act.Generation()} },
		func() tea.Msg {
			st, applied := act.Run(ctx)
			return fetchResultMsg{generation: st.Generation, applied: applied}
		},
	)
}

func (m Model) rememberLocatorCmd() tea.Cmd {
	if m.locator == nil {
		return nil
	}
	return m.savePrefsCmd(*m.locator)
}

func (m Model) savePrefsCmd(locator string) tea.Cmd {
	path := m.prefsPath
	theme := m.theme.Name
	return func() tea.Msg {
		p := prefs.Load(path)
		p.Theme = theme
		if locator != "" {
			p.LastLocator = locator
		}
		_ = prefs.Save(path, p)
		return nil
	}
}

// observe records generation and reports whether it is still the newest
// activation this model has seen.
func (m *Model) observe(generation uint64) bool {
	if generation < m.latest {
		return false
	}
	m.latest = generation
	return true
}

func (m *Model) syncState() {
	if m.controller == nil {
		return
	}
	m.state = m.controller.State()
	m.refreshContent()
}

func (m *Model) applyTheme(t Theme) {
	m.theme = t
	m.styles = t.Styles()
	m.spinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(m.styles.WarningText),
	)
	m.input.PromptStyle = m.styles.AccentText
	m.input.TextStyle = m.styles.Text
}

func (m *Model) resize() {
	if !m.ready {
		return
	}
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = m.contentHeight()
	m.refreshContent()
}

func (m *Model) refreshContent() {
	if !m.ready || m.state.Phase != fetch.Ready {
		return
	}
	m.viewport.SetContent(renderFilm(m.state.View, m.styles, m.contentWidth()))
}

func (m Model) contentWidth() int {
	return max(m.width-2, minContentWidth)
}

func (m Model) contentHeight() int {
	used := 2 // header + footer
	if m.editing {
		used++
	}
	if m.showDiagnostics {
		used += diagnosticsLines + 2
	}
	return max(m.height-used, 3)
}

func locatorFromInput(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Messages

type activatedMsg struct {
	generation uint64
}

type fetchResultMsg struct {
	generation uint64
	applied    bool
}

type diagnosticsMsg []logtail.Entry

// Commands

func loadDiagnosticsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return diagnosticsMsg(nil)
		}
		entries, err := logtail.Read(path, diagnosticsLines*4)
		if err != nil {
			return diagnosticsMsg([]logtail.Entry{logtail.Parse(err.Error())})
		}
		return diagnosticsMsg(entries)
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	return err
}

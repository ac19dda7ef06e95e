// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/agent"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/config"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/model"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/session"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady      State = iota // Ready for input
	StateSubmitting              // Waiting for a query reply
)

// statusTimeout is how long a transient status line stays visible.
const statusTimeout = 4 * time.Second

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state     State
	hydrating bool

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Session engine
	controller *session.Controller
	registry   *session.Registry

	// Gateway client
	client *agent.Client

	// Configuration
	cfg *config.Config

	// UI Components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Key bindings
	keyMap KeyMap

	// Markdown rendering for assistant replies
	markdown *glamour.TermRenderer

	// Display toggles
	showSQL bool

	// Transient surfaces
	panel     string // command output shown above the input
	statusMsg string
	lastError *ErrorMsg

	// Build info
	version string
}

// New creates the chat model. The controller's initial session is
// activated by Init.
func New(controller *session.Controller, client *agent.Client, registry *session.Registry, cfg *config.Config, version string) Model {
	theme := styles.NewTheme()

	input := textinput.New()
	input.Placeholder = "Ask about your e-commerce data..."
	input.Prompt = "> "
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	vp := viewport.New(80, 20)

	return Model{
		state:      StateReady,
		hydrating:  true,
		theme:      theme,
		controller: controller,
		registry:   registry,
		client:     client,
		cfg:        cfg,
		viewport:   vp,
		input:      input,
		spinner:    sp,
		keyMap:     DefaultKeyMap(),
		markdown:   newMarkdownRenderer(cfg.UI.MarkdownWidth),
		version:    version,
	}
}

// newMarkdownRenderer builds a glamour renderer, or nil when the
// terminal style probe fails. Rendering falls back to plain text.
func newMarkdownRenderer(width int) *glamour.TermRenderer {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

// Init activates the configured default session.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		textinput.Blink,
		ActivateSessionCmd(m.controller, m.registry, m.cfg.Session.DefaultKey),
	)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state != StateSubmitting && !m.hydrating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case QueryResultMsg:
		return m.handleQueryResult(msg)

	case SessionActivatedMsg:
		return m.handleSessionActivated(msg)

	case SessionClearedMsg:
		return m.handleSessionCleared(msg)

	case SessionListMsg:
		if msg.Err != nil {
			return m.setStatus("could not list sessions: " + msg.Err.Error())
		}
		m.panel = m.renderSessionList(msg.Sessions)
		return m, nil

	case StatsMsg:
		if msg.Err != nil {
			return m.setStatus(agent.UserMessage(msg.Err))
		}
		m.panel = m.renderStatsPanel(msg.Stats)
		return m, nil

	case ConfigReloadedMsg:
		m.cfg = msg.Config
		m.markdown = newMarkdownRenderer(m.cfg.UI.MarkdownWidth)
		m.updateViewport()
		return m.setStatus("configuration reloaded")

	case ErrorMsg:
		m.lastError = &msg
		return m, nil

	case DismissErrorMsg:
		m.lastError = nil
		return m, nil

	case statusExpiredMsg:
		m.statusMsg = ""
		return m, nil
	}

	return m, nil
}

// handleResize recomputes component sizes for the new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	chrome := 7 // header, status bar, input box
	vpHeight := msg.Height - chrome
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = msg.Width
	m.viewport.Height = vpHeight
	m.input.Width = msg.Width - 6

	m.updateViewport()
	return m
}

// handleKey dispatches keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Dismiss):
		m.lastError = nil
		m.panel = ""
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleSQL):
		m.showSQL = !m.showSQL
		m.updateViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Home):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keyMap.End):
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit routes the input line to either the command handler or
// the query pipeline.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	content := strings.TrimSpace(m.input.Value())
	if content == "" {
		return m, nil
	}

	if strings.HasPrefix(content, "/") {
		return m.handleCommand(content)
	}

	if m.hydrating {
		return m.setStatus("still loading session history, one moment")
	}
	if m.state == StateSubmitting {
		return m.setStatus("a query is already in flight")
	}

	sessionKey := m.controller.ActiveKey()
	if sessionKey == "" {
		return m.setStatus("no active session")
	}

	if _, err := m.controller.Store().AppendUserTurn(content, time.Now()); err != nil {
		if errors.Is(err, model.ErrTurnPending) {
			return m.setStatus("a query is already in flight")
		}
		return m, nil
	}

	m.input.Reset()
	m.panel = ""
	m.state = StateSubmitting
	m.updateViewport()

	return m, tea.Batch(
		m.spinner.Tick,
		SubmitQueryCmd(m.client, sessionKey, content),
	)
}

// handleQueryResult resolves the pending turn. Replies for a session
// that is no longer active are dropped so a switched-to session never
// shows another session's answer.
func (m Model) handleQueryResult(msg QueryResultMsg) (tea.Model, tea.Cmd) {
	if !m.controller.IsActive(msg.SessionKey) {
		return m, nil
	}

	if msg.Err != nil {
		m.controller.Store().ResolveTurn(model.Failure(agent.UserMessage(msg.Err)))
	} else {
		m.controller.Store().ResolveTurn(model.Success(msg.Response.ToMessage()))
	}

	m.state = StateReady
	m.updateViewport()
	return m, nil
}

// handleSessionActivated finishes a session switch. A hydration error
// is a notice, not a failure: the session opens with an empty log.
func (m Model) handleSessionActivated(msg SessionActivatedMsg) (tea.Model, tea.Cmd) {
	if !m.controller.IsActive(msg.SessionKey) {
		return m, nil
	}

	m.hydrating = false
	m.state = StateReady
	m.updateViewport()

	if msg.Err != nil {
		var hErr *session.HydrationError
		if errors.As(msg.Err, &hErr) {
			return m.setStatus("history unavailable, starting fresh: " + agent.UserMessage(hErr.Cause))
		}
		return m.setStatus(agent.UserMessage(msg.Err))
	}
	return m, nil
}

// handleSessionCleared reflects the outcome of a clear request. The
// store is off limits between dispatch and this message, so the
// hydration flag drops here.
func (m Model) handleSessionCleared(msg SessionClearedMsg) (tea.Model, tea.Cmd) {
	if !m.controller.IsActive(msg.SessionKey) {
		return m, nil
	}

	m.hydrating = false
	m.updateViewport()
	if msg.Err != nil {
		e := NewErrorMsg("Clear failed", agent.UserMessage(msg.Err))
		m.lastError = &e
		return m, nil
	}
	return m.setStatus("conversation cleared")
}

// =============================================================================
// HELPERS
// =============================================================================

// setStatus shows a transient status line.
func (m Model) setStatus(text string) (tea.Model, tea.Cmd) {
	m.statusMsg = text
	return m, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusExpiredMsg{}
	})
}

// updateViewport re-renders the transcript and pins it to the bottom.
func (m *Model) updateViewport() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

// State returns the current submission state.
func (m Model) State() State {
	return m.state
}

// Hydrating reports whether the initial or switched-to session is
// still loading its history.
func (m Model) Hydrating() bool {
	return m.hydrating
}

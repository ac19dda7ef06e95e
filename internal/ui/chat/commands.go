// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file implements the slash command registry and handlers.
package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// =============================================================================
// COMMAND HANDLER REGISTRY
// =============================================================================

// CommandHandler is a function that handles a specific command.
// It receives the model and command arguments, and returns an updated
// model and command.
type CommandHandler func(m *Model, args []string) (tea.Model, tea.Cmd)

// commandHandlers maps command names to their handler functions.
var commandHandlers = map[string]CommandHandler{
	// Help & Meta
	"help": handleHelpCommand,
	"h":    handleHelpCommand,
	"?":    handleHelpCommand,
	"quit": handleQuitCommand,
	"q":    handleQuitCommand,
	"exit": handleQuitCommand,

	// Session Management
	"clear":    handleClearCommand,
	"c":        handleClearCommand,
	"new":      handleNewCommand,
	"n":        handleNewCommand,
	"session":  handleSessionCommand,
	"switch":   handleSessionCommand,
	"s":        handleSessionCommand,
	"sessions": handleListCommand,
	"list":     handleListCommand,

	// Data & Display
	"stats": handleStatsCommand,
	"sql":   handleSQLCommand,
}

// handleCommand processes slash commands using the command registry
// pattern.
func (m Model) handleCommand(content string) (tea.Model, tea.Cmd) {
	m.input.Reset()

	parts := strings.Fields(content)
	if len(parts) == 0 {
		return m, nil
	}

	cmdName := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	args := parts[1:]

	if handler, ok := commandHandlers[cmdName]; ok {
		return handler(&m, args)
	}

	return m.setStatus("unknown command " + parts[0] + ", type /help for available commands")
}

// =============================================================================
// HELP AND META COMMANDS
// =============================================================================

func handleHelpCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.panel = m.renderHelp()
	return *m, nil
}

func handleQuitCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	return *m, tea.Quit
}

// =============================================================================
// SESSION COMMANDS
// =============================================================================

func handleClearCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	if m.state == StateSubmitting {
		return m.setStatus("cannot clear while a query is in flight")
	}
	if m.controller.ActiveKey() == "" {
		return m.setStatus("no active session")
	}

	// The command goroutine resets the store; keep the update loop off
	// it until the cleared log comes back, same as a session switch.
	m.hydrating = true
	m.updateViewport()

	return *m, tea.Batch(
		m.spinner.Tick,
		ClearSessionCmd(m.controller),
	)
}

func handleNewCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	return m.activateSession(uuid.New().String())
}

func handleSessionCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		return m.setStatus("active session: " + m.controller.ActiveKey())
	}
	return m.activateSession(args[0])
}

func handleListCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	if m.registry == nil {
		return m.setStatus("session registry unavailable")
	}
	return *m, ListSessionsCmd(m.registry)
}

// activateSession begins a switch to the given key. The transcript
// shows the hydration state until the history arrives.
func (m *Model) activateSession(key string) (tea.Model, tea.Cmd) {
	key = strings.TrimSpace(key)
	if key == "" {
		return m.setStatus("session key must not be empty")
	}
	if m.controller.IsActive(key) && !m.hydrating {
		return m.setStatus("already on session " + key)
	}

	m.hydrating = true
	m.state = StateReady
	m.panel = ""
	m.updateViewport()

	return *m, tea.Batch(
		m.spinner.Tick,
		ActivateSessionCmd(m.controller, m.registry, key),
	)
}

// =============================================================================
// DATA COMMANDS
// =============================================================================

func handleStatsCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	return *m, FetchStatsCmd(m.client)
}

func handleSQLCommand(m *Model, _ []string) (tea.Model, tea.Cmd) {
	m.showSQL = !m.showSQL
	m.updateViewport()
	if m.showSQL {
		return m.setStatus("SQL disclosure on")
	}
	return m.setStatus("SQL disclosure off")
}

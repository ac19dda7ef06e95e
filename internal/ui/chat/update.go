// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the asynchronous commands that talk to the gateway
// and the local session registry. Each command runs in its own
// goroutine under Bubble Tea and reports back with a single message.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/agent"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/session"
)

// =============================================================================
// GATEWAY COMMANDS
// =============================================================================

// SubmitQueryCmd sends a query to the gateway. The resulting message
// carries the session key the query was submitted under so stale
// replies can be recognized after a session switch.
func SubmitQueryCmd(client *agent.Client, sessionKey, query string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.SubmitQuery(context.Background(), query, sessionKey)
		return QueryResultMsg{
			SessionKey: sessionKey,
			Response:   resp,
			Err:        err,
		}
	}
}

// FetchStatsCmd retrieves database statistics from the gateway.
func FetchStatsCmd(client *agent.Client) tea.Cmd {
	return func() tea.Msg {
		stats, err := client.FetchStats(context.Background())
		return StatsMsg{Stats: stats, Err: err}
	}
}

// =============================================================================
// SESSION COMMANDS
// =============================================================================

// ActivateSessionCmd switches the controller to the given session and
// records it in the local registry.
func ActivateSessionCmd(ctrl *session.Controller, reg *session.Registry, key string) tea.Cmd {
	return func() tea.Msg {
		if reg != nil {
			// Registry failures never block a switch.
			_ = reg.Touch(key, "")
		}
		err := ctrl.Activate(context.Background(), key)
		return SessionActivatedMsg{SessionKey: key, Err: err}
	}
}

// ClearSessionCmd clears the active session's server-side history.
func ClearSessionCmd(ctrl *session.Controller) tea.Cmd {
	key := ctrl.ActiveKey()
	return func() tea.Msg {
		err := ctrl.ClearActive(context.Background())
		return SessionClearedMsg{SessionKey: key, Err: err}
	}
}

// ListSessionsCmd loads the locally known sessions.
func ListSessionsCmd(reg *session.Registry) tea.Cmd {
	return func() tea.Msg {
		if reg == nil {
			return SessionListMsg{}
		}
		entries, err := reg.List()
		return SessionListMsg{Sessions: entries, Err: err}
	}
}

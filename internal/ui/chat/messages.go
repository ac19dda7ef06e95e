// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat
// interface. Messages are organized into the following categories:
//   - Query: result delivery for submitted queries
//   - Session: activation, clearing, and local session listing
//   - Stats: database statistics from the gateway
//   - Config: live configuration reloads
//   - Errors: error display and dismissal
//
// All message types follow Bubble Tea conventions and are immutable.
package chat

import (
	"time"

	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/agent"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/config"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/session"
)

// =============================================================================
// QUERY MESSAGES
// =============================================================================

// QueryResultMsg delivers the outcome of a submitted query. SessionKey
// is the session the query was submitted under; replies whose key no
// longer matches the active session are discarded on arrival.
type QueryResultMsg struct {
	SessionKey string
	Response   *agent.QueryResponse
	Err        error
}

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SessionActivatedMsg signals that a session switch finished. Err is a
// hydration failure notice; the session is usable either way.
type SessionActivatedMsg struct {
	SessionKey string
	Err        error
}

// SessionClearedMsg signals the outcome of a clear request for the
// active session.
type SessionClearedMsg struct {
	SessionKey string
	Err        error
}

// SessionListMsg delivers the locally known sessions.
type SessionListMsg struct {
	Sessions []session.Entry
	Err      error
}

// =============================================================================
// STATS MESSAGES
// =============================================================================

// StatsMsg delivers database statistics from the gateway.
type StatsMsg struct {
	Stats *agent.StatsResponse
	Err   error
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a freshly reloaded configuration from the
// file watcher.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// =============================================================================
// ERROR MESSAGES
// =============================================================================

// ErrorMsg displays an error to the user.
type ErrorMsg struct {
	Title   string
	Message string
	Time    time.Time
}

// NewErrorMsg creates a new error message.
func NewErrorMsg(title, message string) ErrorMsg {
	return ErrorMsg{
		Title:   title,
		Message: message,
		Time:    time.Now(),
	}
}

// DismissErrorMsg clears the current error display.
type DismissErrorMsg struct{}

// =============================================================================
// STATUS MESSAGES
// =============================================================================

// statusExpiredMsg clears a transient status line after its timeout.
type statusExpiredMsg struct{}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"errors"
	"strings"
	"time"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrTurnPending rejects a submission while a previous turn is still
	// awaiting its assistant reply. Guards against overlapping in-flight
	// requests within one session's log.
	ErrTurnPending = errors.New("a turn is already awaiting a reply")

	// ErrEmptyContent rejects a submission whose content trims to nothing.
	ErrEmptyContent = errors.New("message content is empty")
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation owns the ordered message log for the currently active session.
//
// The log is append-only: Reset replaces it wholesale (session hydration or
// explicit clear), AppendUserTurn appends the optimistic user half of a turn,
// and ResolveTurn appends exactly one assistant message to close the turn.
// Committed messages are never reordered.
type Conversation struct {
	// SessionKey is the opaque key of the session this log belongs to.
	SessionKey string `json:"session_key"`

	// Messages is the ordered log, oldest first.
	Messages []*Message `json:"messages"`

	// pending is true between AppendUserTurn and ResolveTurn.
	pending bool
}

// NewConversation creates an empty conversation for the given session key.
func NewConversation(sessionKey string) *Conversation {
	return &Conversation{
		SessionKey: sessionKey,
		Messages:   make([]*Message, 0),
	}
}

// =============================================================================
// LOG OPERATIONS
// =============================================================================

// Reset replaces the entire log with the given messages, in order.
// Used on session hydration and on explicit clear (with nil). Any pending
// turn is abandoned, not resolved. Always succeeds.
func (c *Conversation) Reset(messages []*Message) {
	c.Messages = make([]*Message, 0, len(messages))
	c.Messages = append(c.Messages, messages...)
	c.pending = false
}

// AppendUserTurn appends a user message and marks the turn pending.
//
// The submission is rejected with ErrTurnPending while a previous turn is
// unresolved, and with ErrEmptyContent when content is empty or whitespace
// after trimming. On rejection the log is left untouched.
func (c *Conversation) AppendUserTurn(content string, clientTimestamp time.Time) (*Message, error) {
	if c.pending {
		return nil, ErrTurnPending
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyContent
	}

	msg := NewUserMessage(trimmed, clientTimestamp)
	c.Messages = append(c.Messages, msg)
	c.pending = true
	return msg, nil
}

// ResolveTurn closes the pending turn with the given outcome, appending
// exactly one assistant message. On success the reply is taken verbatim; on
// failure a synthesized error bubble is appended with Metadata.Error set to
// the raw error text. The log never ends in a dangling user message once
// resolution completes.
//
// Calling ResolveTurn with no pending turn is a no-op. That happens when a
// reply arrives for a session that was switched away from; the caller is
// expected to discard such replies before they reach the store, but the
// store stays consistent either way.
func (c *Conversation) ResolveTurn(outcome TurnOutcome) *Message {
	if !c.pending {
		return nil
	}
	c.pending = false

	if outcome.Err == "" {
		c.Messages = append(c.Messages, outcome.Reply)
		return outcome.Reply
	}

	msg := NewAssistantMessage(
		"Error: "+outcome.Err,
		&Metadata{Error: outcome.Err},
		time.Time{},
	)
	c.Messages = append(c.Messages, msg)
	return msg
}

// =============================================================================
// TURN OUTCOME
// =============================================================================

// TurnOutcome is the resolution of a pending turn: either a server reply or
// a normalized failure message. Exactly one of the two is set.
type TurnOutcome struct {
	Reply *Message
	Err   string
}

// Success wraps a server reply as a turn outcome.
func Success(reply *Message) TurnOutcome {
	return TurnOutcome{Reply: reply}
}

// Failure wraps an error description as a turn outcome.
func Failure(errText string) TurnOutcome {
	return TurnOutcome{Err: errText}
}

// =============================================================================
// READ ACCESSORS
// =============================================================================

// History returns the ordered message log, oldest first.
// Callers must treat the returned slice as read-only.
func (c *Conversation) History() []*Message {
	return c.Messages
}

// Pending reports whether a user turn is awaiting its assistant reply.
func (c *Conversation) Pending() bool {
	return c.pending
}

// MessageCount returns the number of committed messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// LastMessage returns the most recent message, or nil if empty.
func (c *Conversation) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

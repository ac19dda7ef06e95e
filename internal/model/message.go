// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Agent"
	default:
		return string(r)
	}
}

// =============================================================================
// QUERY TYPES
// =============================================================================

// QueryTypeData marks an assistant reply that carries structured artifacts
// (generated SQL, a result table, a chart spec). Any other query type renders
// as plain text.
const QueryTypeData = "data_query"

// Recognized chart kinds. Anything else maps to an "unsupported" notice.
const (
	ChartBar     = "bar"
	ChartLine    = "line"
	ChartPie     = "pie"
	ChartScatter = "scatter"
)

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single committed message in a conversation.
// Once appended to the log a message is never mutated or reordered.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content is the display text. For assistant messages it is always
	// present, even when Metadata carries an error.
	Content string `json:"content"`

	// Metadata holds the structured artifacts of an assistant reply.
	// Nil for user messages and for plain replies.
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Metadata is the tagged payload attached to an assistant reply.
// Field names mirror the wire contract of the analytics service.
type Metadata struct {
	QueryType      string       `json:"query_type,omitempty"`
	GeneratedQuery string       `json:"sql_query,omitempty"`
	ResultTable    *ResultTable `json:"result_data,omitempty"`
	ChartType      string       `json:"chart_type,omitempty"`
	ChartData      *ChartSpec   `json:"chart_data,omitempty"`
	Error          string       `json:"error,omitempty"`
}

// IsDataQuery reports whether the reply declared itself a data query.
func (m *Metadata) IsDataQuery() bool {
	return m != nil && m.QueryType == QueryTypeData
}

// HasError reports whether the reply carries an error marker.
func (m *Metadata) HasError() bool {
	return m != nil && m.Error != ""
}

// =============================================================================
// RESULT TABLE
// =============================================================================

// Column describes a single column of a result set.
type Column struct {
	Name string `json:"name"`
}

// ResultTable is the tabular artifact of a data query. It is a read-only
// value type handed to presentation; the engine only forwards it when both
// column descriptors and backing rows are present.
type ResultTable struct {
	Columns   []Column         `json:"columns"`
	Rows      []map[string]any `json:"data"`
	RowCount  int              `json:"row_count"`
	Truncated bool             `json:"truncated"`
}

// IsEmpty reports whether the table has no renderable data.
func (t *ResultTable) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// =============================================================================
// CHART SPEC
// =============================================================================

// ChartSpec is the chart artifact of a data query: axis/field bindings plus
// the ordered data points to plot.
type ChartSpec struct {
	XAxis string           `json:"x_axis,omitempty"`
	YAxis string           `json:"y_axis,omitempty"`
	Label string           `json:"label,omitempty"`
	Value string           `json:"value,omitempty"`
	Data  []map[string]any `json:"data"`
}

// IsEmpty reports whether the spec has no data points to plot.
func (c *ChartSpec) IsEmpty() bool {
	return c == nil || len(c.Data) == 0
}

// IsSupportedChartKind reports whether kind is one the client can draw.
func IsSupportedChartKind(kind string) bool {
	switch kind {
	case ChartBar, ChartLine, ChartPie, ChartScatter:
		return true
	default:
		return false
	}
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a user message with a client-assigned timestamp.
// The server assigns the authoritative timestamp on replay.
func NewUserMessage(content string, ts time.Time) *Message {
	msg := NewMessage(RoleUser, content)
	if !ts.IsZero() {
		msg.Timestamp = ts
	}
	return msg
}

// NewAssistantMessage creates an assistant message with optional metadata.
func NewAssistantMessage(content string, meta *Metadata, ts time.Time) *Message {
	msg := NewMessage(RoleAssistant, content)
	msg.Metadata = meta
	if !ts.IsZero() {
		msg.Timestamp = ts
	}
	return msg
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// Preview returns a truncated preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Content)
	if len(runes) <= maxLen {
		return m.Content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique message ID.
func generateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "msg_" + hex.EncodeToString(bytes)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agent provides the HTTP client for the analytics service API.
package agent

import (
	"time"

	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/model"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// QueryRequest is the body of POST /query.
type QueryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// QueryResponse is the body of a successful POST /query.
type QueryResponse struct {
	Response  string             `json:"response"`
	QueryType string             `json:"query_type"`
	SQLQuery  string             `json:"sql_query,omitempty"`
	Result    *model.ResultTable `json:"result_data,omitempty"`
	ChartType string             `json:"chart_type,omitempty"`
	ChartData *model.ChartSpec   `json:"chart_data,omitempty"`
	Timestamp string             `json:"timestamp,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// HistoryResponse is the body of GET /conversation/{id}.
type HistoryResponse struct {
	Messages []HistoryMessage `json:"messages"`
}

// HistoryMessage is one replayed message from the server-held history.
type HistoryMessage struct {
	Role      string          `json:"role"`
	Content   string          `json:"content"`
	Metadata  *model.Metadata `json:"metadata,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// StatsResponse is the body of GET /stats: table name to row count.
type StatsResponse struct {
	Tables map[string]int64 `json:"tables"`
}

// errorBody is the error envelope the service returns on non-2xx responses.
// The detail field, when present, is the preferred user-facing message.
type errorBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// =============================================================================
// MODEL CONVERSION
// =============================================================================

// ToMessage converts a query response into a committed assistant message.
// Content and metadata are taken verbatim; the server timestamp is used when
// it parses, otherwise the client clock stands in.
func (r *QueryResponse) ToMessage() *model.Message {
	meta := &model.Metadata{
		QueryType:      r.QueryType,
		GeneratedQuery: r.SQLQuery,
		ResultTable:    r.Result,
		ChartType:      r.ChartType,
		ChartData:      r.ChartData,
		Error:          r.Error,
	}
	return model.NewAssistantMessage(r.Response, meta, parseTimestamp(r.Timestamp))
}

// ToMessage converts a replayed history entry into a committed message.
func (h *HistoryMessage) ToMessage() *model.Message {
	msg := model.NewMessage(model.Role(h.Role), h.Content)
	msg.Metadata = h.Metadata
	if ts := parseTimestamp(h.Timestamp); !ts.IsZero() {
		msg.Timestamp = ts
	}
	return msg
}

// ToMessages converts a history response into the ordered message log,
// preserving the server's ordering exactly.
func (r *HistoryResponse) ToMessages() []*model.Message {
	msgs := make([]*model.Message, 0, len(r.Messages))
	for i := range r.Messages {
		msgs = append(msgs, r.Messages[i].ToMessage())
	}
	return msgs
}

// parseTimestamp parses the service's timestamp format. The service emits
// RFC 3339; older deployments omit the offset.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agent provides the HTTP client for the analytics service API.
package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/model"
)

func newTestClient(baseURL string) *Client {
	return NewClientWithConfig(&ClientConfig{
		BaseURL:        baseURL,
		QueryTimeout:   2 * time.Second,
		RequestTimeout: 2 * time.Second,
	})
}

// =============================================================================
// SUBMIT QUERY
// =============================================================================

func TestSubmitQuery_DataQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/query", r.URL.Path)

		var req QueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Show me average delivery time by state", req.Query)
		assert.Equal(t, "default", req.SessionID)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"response": "Here are the results",
			"query_type": "data_query",
			"sql_query": "SELECT state, AVG(delivery_days) FROM orders GROUP BY state",
			"result_data": {
				"columns": [{"name": "state"}],
				"data": [{"state": "SP"}],
				"row_count": 1,
				"truncated": false
			},
			"timestamp": "2025-06-01T12:00:00Z"
		}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	resp, err := client.SubmitQuery(context.Background(), "Show me average delivery time by state", "default")
	require.NoError(t, err)

	assert.Equal(t, "Here are the results", resp.Response)
	assert.Equal(t, model.QueryTypeData, resp.QueryType)
	require.NotNil(t, resp.Result)
	assert.Equal(t, 1, resp.Result.RowCount)
	assert.Equal(t, "SP", resp.Result.Rows[0]["state"])

	msg := resp.ToMessage()
	assert.Equal(t, model.RoleAssistant, msg.Role)
	assert.Equal(t, "Here are the results", msg.Content)
	assert.False(t, msg.Metadata.ResultTable.IsEmpty())
	assert.Equal(t, 2025, msg.Timestamp.Year())
}

func TestSubmitQuery_ServerDetailPreferred(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "query pipeline exploded"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.SubmitQuery(context.Background(), "hello", "default")
	require.Error(t, err)
	assert.Equal(t, "query pipeline exploded", UserMessage(err))
}

func TestSubmitQuery_NonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream gone"))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.SubmitQuery(context.Background(), "hello", "default")
	require.Error(t, err)
	assert.Contains(t, UserMessage(err), "502")
}

func TestSubmitQuery_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use: connection refused

	client := newTestClient(srv.URL)
	_, err := client.SubmitQuery(context.Background(), "hello", "default")
	require.Error(t, err)
	assert.True(t, IsUnreachable(err), "expected unreachable, got %v", err)
}

func TestSubmitQuery_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{
		BaseURL:      srv.URL,
		QueryTimeout: 30 * time.Millisecond,
	})
	_, err := client.SubmitQuery(context.Background(), "hello", "default")
	require.Error(t, err)
	assert.True(t, IsTimeout(err), "expected timeout, got %v", err)
}

func TestSubmitQuery_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": `))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.SubmitQuery(context.Background(), "hello", "default")
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, ErrTypeInvalidResponse, clientErr.Type)
}

func TestSubmitQuery_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": "ok", "query_type": "general"}`))
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{
		BaseURL:          srv.URL,
		QueriesPerMinute: 1,
	})

	_, err := client.SubmitQuery(context.Background(), "one", "default")
	require.NoError(t, err)

	_, err = client.SubmitQuery(context.Background(), "two", "default")
	assert.ErrorIs(t, err, ErrRateLimited)
}

// =============================================================================
// HISTORY
// =============================================================================

func TestFetchHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/conversation/sess-1", r.URL.Path)
		w.Write([]byte(`{"messages": [
			{"role": "user", "content": "q1", "timestamp": "2025-06-01T12:00:00Z"},
			{"role": "assistant", "content": "a1", "metadata": {"query_type": "general"}},
			{"role": "user", "content": "q2"}
		]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	resp, err := client.FetchHistory(context.Background(), "sess-1")
	require.NoError(t, err)

	msgs := resp.ToMessages()
	require.Len(t, msgs, 3)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "q1", msgs[0].Content)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "general", msgs[1].Metadata.QueryType)
	assert.Equal(t, "q2", msgs[2].Content, "server ordering must be preserved")
}

func TestDeleteHistory(t *testing.T) {
	deleted := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/conversation/sess-1", r.URL.Path)
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	require.NoError(t, client.DeleteHistory(context.Background(), "sess-1"))
	assert.True(t, deleted)
}

func TestDeleteHistory_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "database locked"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	err := client.DeleteHistory(context.Background(), "sess-1")
	require.Error(t, err)
	assert.Equal(t, "database locked", UserMessage(err))
}

// =============================================================================
// STATS
// =============================================================================

func TestFetchStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/stats", r.URL.Path)
		w.Write([]byte(`{"tables": {"orders": 99441, "products": 32951}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	stats, err := client.FetchStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(99441), stats.Tables["orders"])
	assert.Equal(t, int64(32951), stats.Tables["products"])
}

// =============================================================================
// TIMESTAMP PARSING
// =============================================================================

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		zero bool
	}{
		{"2025-06-01T12:00:00Z", false},
		{"2025-06-01T12:00:00.123456Z", false},
		{"2025-06-01T12:00:00", false},
		{"", true},
		{"not a timestamp", true},
	}
	for _, tc := range cases {
		got := parseTimestamp(tc.in)
		assert.Equal(t, tc.zero, got.IsZero(), "parseTimestamp(%q)", tc.in)
	}
}

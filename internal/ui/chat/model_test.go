// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/agent"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/config"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/model"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/session"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

// stubGateway serves canned histories so controller behavior can be
// driven without a server.
type stubGateway struct {
	histories map[string]*agent.HistoryResponse
	deleteErr error
}

func (g *stubGateway) FetchHistory(_ context.Context, sessionID string) (*agent.HistoryResponse, error) {
	if h, ok := g.histories[sessionID]; ok {
		return h, nil
	}
	return &agent.HistoryResponse{}, nil
}

func (g *stubGateway) DeleteHistory(_ context.Context, _ string) error {
	return g.deleteErr
}

// newTestModel returns a model with session "alpha" active and
// hydration finished.
func newTestModel(t *testing.T) Model {
	t.Helper()

	ctrl := session.NewController(&stubGateway{})
	if err := ctrl.Activate(context.Background(), "alpha"); err != nil {
		t.Fatalf("activate: %v", err)
	}

	m := New(ctrl, agent.NewClient(), nil, config.Default(), "test")
	m.hydrating = false
	return m
}

// =============================================================================
// SUBMISSION TESTS
// =============================================================================

func TestSubmitAppendsUserTurn(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("top products this month")

	updated, cmd := m.handleSubmit()
	got := updated.(Model)

	if got.state != StateSubmitting {
		t.Errorf("state = %v, want StateSubmitting", got.state)
	}
	if cmd == nil {
		t.Error("submit should produce a command")
	}
	if !got.controller.Store().Pending() {
		t.Error("store should have a pending turn")
	}
	last := got.controller.Store().LastMessage()
	if last == nil || last.Role != model.RoleUser {
		t.Fatalf("last message should be the user turn, got %+v", last)
	}
	if last.Content != "top products this month" {
		t.Errorf("user turn content = %q", last.Content)
	}
}

func TestSubmitRejectedWhileInFlight(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("first question")
	updated, _ := m.handleSubmit()
	m = updated.(Model)

	m.input.SetValue("second question")
	updated, _ = m.handleSubmit()
	got := updated.(Model)

	if got.statusMsg == "" || !strings.Contains(got.statusMsg, "in flight") {
		t.Errorf("expected in-flight notice, got %q", got.statusMsg)
	}
	if got.controller.Store().MessageCount() != 1 {
		t.Errorf("second submit must not append, count = %d", got.controller.Store().MessageCount())
	}
}

func TestSubmitRejectedWhileHydrating(t *testing.T) {
	m := newTestModel(t)
	m.hydrating = true
	m.input.SetValue("anything")

	updated, _ := m.handleSubmit()
	got := updated.(Model)

	if got.controller.Store().MessageCount() != 0 {
		t.Error("submit during hydration must not append")
	}
	if got.statusMsg == "" {
		t.Error("expected a status notice")
	}
}

func TestSubmitIgnoresEmptyInput(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("   ")

	updated, cmd := m.handleSubmit()
	got := updated.(Model)

	if cmd != nil || got.state != StateReady {
		t.Error("blank input should be a no-op")
	}
}

// =============================================================================
// RESULT DELIVERY TESTS
// =============================================================================

func TestQueryResultResolvesTurn(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("how many orders?")
	updated, _ := m.handleSubmit()
	m = updated.(Model)

	resp := &agent.QueryResponse{Response: "There were 42 orders.", QueryType: "general"}
	updated, _ = m.Update(QueryResultMsg{SessionKey: "alpha", Response: resp})
	got := updated.(Model)

	if got.state != StateReady {
		t.Errorf("state = %v, want StateReady", got.state)
	}
	if got.controller.Store().Pending() {
		t.Error("turn should be resolved")
	}
	last := got.controller.Store().LastMessage()
	if last == nil || last.Role != model.RoleAssistant {
		t.Fatal("last message should be the assistant reply")
	}
	if last.Content != "There were 42 orders." {
		t.Errorf("reply content = %q", last.Content)
	}
}

func TestQueryResultFailureAppendsErrorTurn(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("how many orders?")
	updated, _ := m.handleSubmit()
	m = updated.(Model)

	updated, _ = m.Update(QueryResultMsg{SessionKey: "alpha", Err: agent.ErrUnreachable})
	got := updated.(Model)

	last := got.controller.Store().LastMessage()
	if last == nil || last.Role != model.RoleAssistant {
		t.Fatal("failure should append an assistant turn")
	}
	if !strings.HasPrefix(last.Content, "Error:") {
		t.Errorf("failure content = %q, want Error: prefix", last.Content)
	}
	if !last.Metadata.HasError() {
		t.Error("failure turn should carry error metadata")
	}
}

func TestStaleReplyDiscardedAfterSessionSwitch(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("slow question")
	updated, _ := m.handleSubmit()
	m = updated.(Model)

	// Switch sessions while the reply is still outstanding.
	if err := m.controller.Activate(context.Background(), "beta"); err != nil {
		t.Fatalf("activate beta: %v", err)
	}

	resp := &agent.QueryResponse{Response: "late answer", QueryType: "general"}
	updated, _ = m.Update(QueryResultMsg{SessionKey: "alpha", Response: resp})
	got := updated.(Model)

	if got.controller.Store().MessageCount() != 0 {
		t.Errorf("stale reply must not touch the new session, count = %d",
			got.controller.Store().MessageCount())
	}
	if got.controller.Store().Pending() {
		t.Error("new session must not inherit the pending turn")
	}
}

// =============================================================================
// SESSION LIFECYCLE TESTS
// =============================================================================

func TestSessionActivatedClearsHydration(t *testing.T) {
	m := newTestModel(t)
	m.hydrating = true

	updated, _ := m.Update(SessionActivatedMsg{SessionKey: "alpha"})
	got := updated.(Model)

	if got.hydrating {
		t.Error("activation should end hydration")
	}
}

func TestSessionActivatedHydrationErrorIsNotice(t *testing.T) {
	m := newTestModel(t)
	m.hydrating = true

	hErr := &session.HydrationError{SessionKey: "alpha", Cause: errors.New("boom")}
	updated, _ := m.Update(SessionActivatedMsg{SessionKey: "alpha", Err: hErr})
	got := updated.(Model)

	if got.hydrating {
		t.Error("hydration failure still ends hydration")
	}
	if !strings.Contains(got.statusMsg, "starting fresh") {
		t.Errorf("expected fresh-start notice, got %q", got.statusMsg)
	}
}

func TestSessionActivatedStaleKeyIgnored(t *testing.T) {
	m := newTestModel(t)
	m.hydrating = true

	updated, _ := m.Update(SessionActivatedMsg{SessionKey: "other"})
	got := updated.(Model)

	if !got.hydrating {
		t.Error("activation for a non-active key must be ignored")
	}
}

func TestClearFailureShowsErrorBox(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(SessionClearedMsg{SessionKey: "alpha", Err: agent.ErrTimeout})
	got := updated.(Model)

	if got.lastError == nil {
		t.Fatal("clear failure should set the error box")
	}

	updated, _ = got.Update(DismissErrorMsg{})
	got = updated.(Model)
	if got.lastError != nil {
		t.Error("dismiss should clear the error box")
	}
}

// =============================================================================
// COMMAND TESTS
// =============================================================================

func TestUnknownCommand(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.handleCommand("/bogus")
	got := updated.(Model)

	if !strings.Contains(got.statusMsg, "unknown command") {
		t.Errorf("expected unknown command notice, got %q", got.statusMsg)
	}
}

func TestSQLCommandTogglesDisclosure(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.handleCommand("/sql")
	got := updated.(Model)
	if !got.showSQL {
		t.Error("first /sql should enable disclosure")
	}

	updated, _ = got.handleCommand("/sql")
	got = updated.(Model)
	if got.showSQL {
		t.Error("second /sql should disable disclosure")
	}
}

func TestSessionCommandWithoutArgShowsActiveKey(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.handleCommand("/session")
	got := updated.(Model)

	if !strings.Contains(got.statusMsg, "alpha") {
		t.Errorf("expected active key in status, got %q", got.statusMsg)
	}
}

func TestClearCommandRejectedWhileInFlight(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("question")
	updated, _ := m.handleSubmit()
	m = updated.(Model)

	updated, _ = m.handleCommand("/clear")
	got := updated.(Model)

	if !strings.Contains(got.statusMsg, "in flight") {
		t.Errorf("expected in-flight notice, got %q", got.statusMsg)
	}
}

// While a clear is outstanding the update loop must stay off the store:
// the command goroutine is resetting it.
func TestClearBlocksStoreUntilCleared(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.handleCommand("/clear")
	got := updated.(Model)

	if !got.hydrating {
		t.Fatal("clear should block the store like a session switch")
	}
	if cmd == nil {
		t.Error("clear should dispatch a command")
	}

	got.input.SetValue("question during clear")
	updated, _ = got.handleSubmit()
	got = updated.(Model)
	if got.controller.Store().MessageCount() != 0 {
		t.Error("submit during clear must not touch the store")
	}

	updated, _ = got.Update(SessionClearedMsg{SessionKey: "alpha"})
	got = updated.(Model)
	if got.hydrating {
		t.Error("cleared message should unblock the store")
	}
}

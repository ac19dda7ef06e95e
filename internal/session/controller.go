// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session orchestrates session switches for the conversation engine.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/agent"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyKey rejects activation of a session with an empty key.
	// Keys are opaque but must be non-empty.
	ErrEmptyKey = errors.New("session key is empty")

	// ErrNoActiveSession is returned by operations that need an active
	// session before any activation happened.
	ErrNoActiveSession = errors.New("no active session")
)

// HydrationError reports that a session's history fetch failed. It is
// non-fatal: the session falls back to an empty log and stays usable for new
// queries, so callers should surface it as a notice rather than an error
// state.
type HydrationError struct {
	SessionKey string
	Cause      error
}

func (e *HydrationError) Error() string {
	return "failed to load history for session " + e.SessionKey + ": " + e.Cause.Error()
}

func (e *HydrationError) Unwrap() error {
	return e.Cause
}

// =============================================================================
// GATEWAY
// =============================================================================

// Gateway is the slice of the analytics client the controller needs.
// *agent.Client satisfies it.
type Gateway interface {
	FetchHistory(ctx context.Context, sessionID string) (*agent.HistoryResponse, error)
	DeleteHistory(ctx context.Context, sessionID string) error
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the active session key and the conversation store. The
// store is mutated only through activation, clearing, and the chat surface's
// turn operations; the mutex covers the activation path, which runs inside
// Bubble Tea command goroutines while the update loop reads.
type Controller struct {
	mu      sync.Mutex
	gateway Gateway
	store   *model.Conversation
	active  string
}

// NewController creates a controller with an empty, inactive store.
// Call Activate to attach it to a session.
func NewController(gateway Gateway) *Controller {
	return &Controller{
		gateway: gateway,
		store:   model.NewConversation(""),
	}
}

// Store returns the conversation store handle. The handle is stable across
// session switches; switches replace its contents, not the handle.
func (c *Controller) Store() *model.Conversation {
	return c.store
}

// ActiveKey returns the currently active session key ("" before the first
// activation).
func (c *Controller) ActiveKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// IsActive reports whether key is the currently active session. Used at
// reply-resolution time to discard replies that raced a session switch.
func (c *Controller) IsActive(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return key != "" && key == c.active
}

// =============================================================================
// ACTIVATION
// =============================================================================

// Activate makes key the active session and hydrates its log from the
// history endpoint.
//
// Activating the already-active session with a populated store is a no-op.
// Otherwise the current log is discarded immediately - any pending turn is
// abandoned, not resolved - and the new log is seeded from the fetched
// history. A fetch failure leaves the session usable with an empty log and
// returns a *HydrationError for display as a notice.
func (c *Controller) Activate(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	c.mu.Lock()
	if key == c.active && !c.store.IsEmpty() {
		c.mu.Unlock()
		return nil
	}
	c.active = key
	c.store.SessionKey = key
	c.store.Reset(nil)
	c.mu.Unlock()

	return c.hydrate(ctx, key)
}

// ClearActive deletes the active session's server-held history, then
// re-hydrates from the server. Re-fetching instead of clearing locally
// guarantees the visible log reflects server state after the deletion; a
// deletion failure is returned (and the log untouched) rather than hidden
// behind an optimistic local clear. A clear that loses a session-switch
// race leaves the new session's log alone, like a stale hydration.
func (c *Controller) ClearActive(ctx context.Context) error {
	c.mu.Lock()
	key := c.active
	c.mu.Unlock()
	if key == "" {
		return ErrNoActiveSession
	}

	if err := c.gateway.DeleteHistory(ctx, key); err != nil {
		return err
	}

	c.mu.Lock()
	if c.active != key {
		// Switched away mid-delete; the new session's log is not ours
		// to touch.
		c.mu.Unlock()
		return nil
	}
	c.store.Reset(nil)
	c.mu.Unlock()

	return c.hydrate(ctx, key)
}

// hydrate fetches history for key and seeds the store, unless another
// activation won the race in the meantime.
func (c *Controller) hydrate(ctx context.Context, key string) error {
	resp, err := c.gateway.FetchHistory(ctx, key)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != key {
		// Switched again mid-fetch; this hydration is stale.
		return nil
	}
	if err != nil {
		c.store.Reset(nil)
		return &HydrationError{SessionKey: key, Cause: err}
	}
	c.store.Reset(resp.ToMessages())
	return nil
}

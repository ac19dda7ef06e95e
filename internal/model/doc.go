// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// The package owns the ordered message log for the active session and the
// pending-turn state machine around it. A pending turn is the window between
// an optimistically appended user message and its resolved assistant reply;
// at most one pending turn exists per conversation at any time.
//
// Nothing in this package performs I/O. All mutation happens through
// Conversation's Reset / AppendUserTurn / ResolveTurn operations, which are
// driven from the single Bubble Tea update loop.
package model

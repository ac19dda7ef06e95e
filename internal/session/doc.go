// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session orchestrates session switches for the conversation engine.
//
// Exactly one session is active at a time. The Controller owns the active
// session key and the conversation store: activating a session tears down the
// previous log (abandoning any pending turn), hydrates the new log from
// server-held history, and exposes the active key so that replies arriving
// for a no-longer-active session can be detected and discarded.
//
// The package also keeps a small sqlite registry of session keys the user has
// opened on this machine, which powers the session picker. Only keys and
// titles are stored locally - conversation content always comes from the
// history endpoint.
package session

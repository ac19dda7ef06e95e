// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat implements the interactive chat view.

The view is a Bubble Tea model wrapping the session controller and the
gateway client. At most one query is in flight at a time; while a reply
is outstanding the input stays open but further submissions are
rejected with a status notice. Replies carry the session key they were
submitted under, and replies for a session that is no longer active are
dropped on arrival.

Slash commands (see commands.go) cover session management, database
statistics, and display toggles. Everything else typed at the prompt is
submitted to the gateway as an analytics question.
*/
package chat

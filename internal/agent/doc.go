// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agent provides the HTTP client for the analytics service API.
//
// The client is the only component that performs network I/O. Every remote
// failure - no response, timeout, non-2xx status, malformed body - is
// normalized into a typed ClientError at this boundary so that callers can
// convert it into a resolved conversation state instead of propagating it.
//
// The service contract:
//
//	POST   /query                  submit a natural-language query
//	GET    /conversation/{id}      fetch a session's stored history
//	DELETE /conversation/{id}      delete a session's stored history
//	GET    /stats                  fetch table row-count statistics
package agent

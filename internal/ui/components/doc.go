// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the analytics TUI.

This package contains a collection of styled display components built on
top of the Lip Gloss library. Each component renders one artifact kind
that an assistant reply can carry.

# Components

DataTable (table.go) - Tabular query results with row count and truncation notice.
Chart (chart.go) - Terminal renderings of bar, line, pie, and scatter charts.
SQLBlock (sqlblock.go) - Syntax-highlighted SQL disclosure block.
StatsPanel (statspanel.go) - Database table row counts.
ErrorBox (errorbox.go) - Failed turn notice.
*/
package components

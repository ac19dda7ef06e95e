// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/ui/styles"
)

// =============================================================================
// SQL DISCLOSURE BLOCK
// =============================================================================

// SQLBlock renders the SQL statement that produced a data-query result.
// It is collapsed by default and expanded on demand.
type SQLBlock struct {
	Query    string
	Expanded bool
	MaxWidth int
}

// NewSQLBlock creates a collapsed SQL block.
func NewSQLBlock(query string) SQLBlock {
	return SQLBlock{
		Query:    query,
		MaxWidth: 80,
	}
}

// SetMaxWidth sets the maximum width for the block.
func (b *SQLBlock) SetMaxWidth(width int) {
	b.MaxWidth = width
}

// Toggle flips the disclosure state.
func (b *SQLBlock) Toggle() {
	b.Expanded = !b.Expanded
}

// Render renders the block. When collapsed only the disclosure hint is
// shown; when expanded the highlighted SQL appears beneath it.
func (b SQLBlock) Render() string {
	if strings.TrimSpace(b.Query) == "" {
		return ""
	}

	hint := "View SQL Query"
	arrow := "▸"
	if b.Expanded {
		arrow = "▾"
	}
	header := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render(arrow + " " + hint)

	if !b.Expanded {
		return header
	}

	badge := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Background(styles.OverlayDim).
		Padding(0, 1).
		Bold(true).
		Render("sql")

	code := highlightSQL(strings.TrimSpace(b.Query))

	maxWidth := b.MaxWidth - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	block := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(1, 2).
		MaxWidth(maxWidth).
		Render(badge + "\n" + code)

	return header + "\n" + block
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// highlightSQL applies SQL syntax highlighting using the chroma library.
// This provides ANSI-safe highlighting for terminal output.
func highlightSQL(query string) string {
	lexer := lexers.Get("sql")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, query)
	if err != nil {
		return query // Fallback to plain text
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return query
	}

	return buf.String()
}

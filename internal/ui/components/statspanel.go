// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/agent"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/ui/styles"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/util"
)

// =============================================================================
// DATABASE STATS PANEL
// =============================================================================

// StatsPanel renders database table row counts from the gateway.
type StatsPanel struct {
	Stats *agent.StatsResponse
}

// NewStatsPanel creates a stats panel.
func NewStatsPanel(stats *agent.StatsResponse) StatsPanel {
	return StatsPanel{Stats: stats}
}

// Render renders the table names and row counts sorted by name so the
// output is stable across calls.
func (s StatsPanel) Render() string {
	theme := styles.NewTheme()

	if s.Stats == nil || len(s.Stats.Tables) == 0 {
		return theme.StatsBar.Render(theme.StatsLabel.Render("No database statistics available"))
	}

	names := make([]string, 0, len(s.Stats.Tables))
	labelW := 0
	for name := range s.Stats.Tables {
		names = append(names, name)
		if w := runewidth.StringWidth(name); w > labelW {
			labelW = w
		}
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(theme.StatsValue.Render("Database Statistics"))
	sb.WriteByte('\n')
	for _, name := range names {
		sb.WriteString(theme.StatsLabel.Render(util.PadRight(name, labelW)))
		sb.WriteString("  ")
		sb.WriteString(theme.StatsValue.Render(fmt.Sprintf("%d rows", s.Stats.Tables[name])))
		sb.WriteByte('\n')
	}
	return theme.StatsBar.Render(strings.TrimRight(sb.String(), "\n"))
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file implements rendering: the transcript, the header and
// status bar, command panels, and the welcome screen.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/agent"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/model"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/render"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/session"
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/ui/components"
)

// =============================================================================
// MAIN VIEW
// =============================================================================

// View renders the full chat interface.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.viewport.View())

	if m.panel != "" {
		sections = append(sections, m.panel)
	}
	if m.lastError != nil {
		box := components.NewErrorBox(m.lastError.Title + ": " + m.lastError.Message)
		box.SetMaxWidth(m.contentWidth())
		sections = append(sections, box.Render())
	}

	sections = append(sections, m.renderStatusBar())
	sections = append(sections, m.renderInput())

	return strings.Join(sections, "\n")
}

// contentWidth is the usable width for transcript content.
func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("E-Commerce Analytics")
	sub := m.theme.HeaderSubtitle.Render("session " + m.controller.ActiveKey())
	header := title + "  " + sub
	if m.width > 0 {
		return m.theme.Header.Width(m.width - 2).Render(header)
	}
	return m.theme.Header.Render(header)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// renderMessages renders the full transcript, or the welcome screen
// when the session is empty.
func (m *Model) renderMessages() string {
	if m.hydrating {
		return m.theme.ThinkingText.Render("Loading session history...")
	}

	history := m.controller.Store().History()
	if len(history) == 0 {
		return m.renderWelcome()
	}

	var sb strings.Builder
	for i, msg := range history {
		sb.WriteString(m.renderMessage(msg))
		if i < len(history)-1 {
			sb.WriteString("\n\n")
		}
	}

	if m.state == StateSubmitting {
		sb.WriteString("\n\n")
		sb.WriteString(m.spinner.View())
		sb.WriteString(m.theme.ThinkingText.Render(" analyzing..."))
	}

	return sb.String()
}

// renderMessage dispatches on role.
func (m *Model) renderMessage(msg *model.Message) string {
	if msg.Role == model.RoleUser {
		return m.renderUserMessage(msg)
	}
	return m.renderAssistantMessage(msg)
}

func (m *Model) renderUserMessage(msg *model.Message) string {
	bubble := m.theme.UserBubble.MaxWidth(m.theme.BubbleWidth()).Render(msg.Content)
	label := m.theme.MessageRole.Render("You")
	if m.cfg.UI.ShowTimestamps {
		label += " " + m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))
	}
	return lipgloss.JoinVertical(lipgloss.Right, label, bubble)
}

// renderAssistantMessage renders the reply text plus whatever
// artifacts its metadata selects: a result table, a chart, a no-data
// or unsupported notice, and the optional SQL disclosure.
func (m *Model) renderAssistantMessage(msg *model.Message) string {
	label := m.theme.MessageRole.Render("Assistant")
	if m.cfg.UI.ShowTimestamps {
		label += " " + m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))
	}

	if msg.Metadata.HasError() {
		box := components.NewErrorBox(msg.Metadata.Error)
		box.SetMaxWidth(m.contentWidth())
		return lipgloss.JoinVertical(lipgloss.Left, label, box.Render())
	}

	parts := []string{label, m.renderMarkdown(msg.Content)}

	decision := render.Select(msg.Metadata)
	switch decision.Kind {
	case render.KindTable:
		dt := components.NewDataTable(decision.Table, m.cfg.UI.MaxTableRows)
		dt.SetMaxWidth(m.contentWidth())
		parts = append(parts, dt.Render())
		if decision.Chart != nil {
			ch := components.NewChart(decision.ChartKind, decision.Chart)
			ch.SetMaxWidth(m.contentWidth())
			parts = append(parts, ch.Render())
		}
	case render.KindChart:
		ch := components.NewChart(decision.ChartKind, decision.Chart)
		ch.SetMaxWidth(m.contentWidth())
		parts = append(parts, ch.Render())
	case render.KindNoData:
		parts = append(parts, m.theme.ChartNoData.Render(components.NoDataNotice))
	case render.KindUnsupported:
		notice := fmt.Sprintf("Unsupported chart type %q", decision.ChartKind)
		parts = append(parts, m.theme.WarningStyle.Render(notice))
	}

	if decision.GeneratedQuery != "" {
		block := components.NewSQLBlock(decision.GeneratedQuery)
		block.Expanded = m.showSQL
		block.SetMaxWidth(m.contentWidth())
		parts = append(parts, block.Render())
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderMarkdown renders assistant text through glamour, falling back
// to the raw text when the renderer is unavailable.
func (m *Model) renderMarkdown(text string) string {
	if m.markdown == nil {
		return text
	}
	out, err := m.markdown.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// =============================================================================
// WELCOME SCREEN
// =============================================================================

var exampleQueries = []string{
	"What are the top 5 best-selling products?",
	"Show monthly revenue as a line chart",
	"Which customer segment spends the most?",
	"How many orders were placed last month?",
}

func (m *Model) renderWelcome() string {
	var sb strings.Builder
	sb.WriteString(m.theme.WelcomeLogo.Render("E-Commerce Analytics Agent"))
	if m.version != "" {
		sb.WriteString("  " + m.theme.WelcomeInfo.Render(m.version))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.theme.WelcomeInfo.Render("Ask questions about your store in plain language."))
	sb.WriteString("\n\n")
	for _, q := range exampleQueries {
		sb.WriteString(m.theme.WelcomeExample.Render("  • "+q) + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.theme.WelcomeInfo.Render("Type /help for commands."))
	return m.theme.WelcomeBox.Render(sb.String())
}

// =============================================================================
// STATUS BAR AND INPUT
// =============================================================================

func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.hydrating:
		left = m.spinner.View() + m.theme.ThinkingText.Render(" loading history")
	case m.state == StateSubmitting:
		left = m.spinner.View() + m.theme.ThinkingText.Render(" analyzing")
	case m.statusMsg != "":
		left = m.theme.InfoStyle.Render(m.statusMsg)
	default:
		left = m.theme.StatusValue.Render("ready")
	}

	var help []string
	for _, b := range m.keyMap.ShortHelp() {
		help = append(help, m.theme.StatusKey.Render(b.Help().Key)+" "+b.Help().Desc)
	}
	right := strings.Join(help, "  ")

	bar := left + "  " + right
	if m.width > 0 {
		return m.theme.StatusBar.Width(m.width).Render(bar)
	}
	return m.theme.StatusBar.Render(bar)
}

func (m Model) renderInput() string {
	if m.width > 0 {
		return m.theme.InputBox.Width(m.width - 2).Render(m.input.View())
	}
	return m.theme.InputBox.Render(m.input.View())
}

// =============================================================================
// COMMAND PANELS
// =============================================================================

func (m *Model) renderHelp() string {
	rows := []struct{ cmd, desc string }{
		{"/help", "show this help"},
		{"/clear", "clear the active session's history"},
		{"/new", "start a fresh session with a generated key"},
		{"/session <key>", "switch to a session"},
		{"/sessions", "list locally known sessions"},
		{"/stats", "show database statistics"},
		{"/sql", "toggle SQL disclosure for data queries"},
		{"/quit", "exit"},
	}

	var sb strings.Builder
	sb.WriteString(m.theme.StatsValue.Render("Commands"))
	sb.WriteByte('\n')
	for _, r := range rows {
		sb.WriteString(m.theme.StatusKey.Render(fmt.Sprintf("%-16s", r.cmd)))
		sb.WriteString(m.theme.StatusValue.Render(r.desc))
		sb.WriteByte('\n')
	}
	return m.theme.SessionList.Render(strings.TrimRight(sb.String(), "\n"))
}

func (m *Model) renderSessionList(entries []session.Entry) string {
	if len(entries) == 0 {
		return m.theme.SessionList.Render(m.theme.SessionMeta.Render("No sessions recorded yet"))
	}

	var sb strings.Builder
	sb.WriteString(m.theme.StatsValue.Render("Sessions"))
	sb.WriteByte('\n')
	for _, e := range entries {
		style := m.theme.SessionItem
		marker := "  "
		if m.controller.IsActive(e.Key) {
			style = m.theme.SessionItemSelected
			marker = "* "
		}
		sb.WriteString(style.Render(marker + e.Key))
		sb.WriteString("  " + m.theme.SessionMeta.Render(e.LastActive.Format("2006-01-02 15:04")))
		sb.WriteByte('\n')
	}
	sb.WriteString(m.theme.SessionMeta.Render("Use /session <key> to switch"))
	return m.theme.SessionList.Render(strings.TrimRight(sb.String(), "\n"))
}

func (m *Model) renderStatsPanel(stats *agent.StatsResponse) string {
	return components.NewStatsPanel(stats).Render()
}

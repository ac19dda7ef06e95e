// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/ui/styles"
)

// =============================================================================
// ERROR BOX
// =============================================================================

// ErrorBox renders a failed turn notice inline in the transcript.
type ErrorBox struct {
	Message  string
	MaxWidth int
}

// NewErrorBox creates an error box.
func NewErrorBox(message string) ErrorBox {
	return ErrorBox{
		Message:  message,
		MaxWidth: 80,
	}
}

// SetMaxWidth sets the maximum width for the box.
func (e *ErrorBox) SetMaxWidth(width int) {
	e.MaxWidth = width
}

// Render renders the error notice.
func (e ErrorBox) Render() string {
	theme := styles.NewTheme()

	maxWidth := e.MaxWidth - 2
	if maxWidth < 20 {
		maxWidth = 20
	}

	title := theme.ErrorTitle.Render("✗ Query failed")
	body := theme.ErrorMessage.Render(e.Message)
	return theme.ErrorBox.MaxWidth(maxWidth).Render(title + "\n" + body)
}

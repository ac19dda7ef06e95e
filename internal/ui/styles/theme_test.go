// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}
}

func TestBubbleWidth(t *testing.T) {
	theme := NewTheme()

	// Unset width falls back to a sane default.
	if w := theme.BubbleWidth(); w != 76 {
		t.Errorf("default bubble width = %d, want 76", w)
	}

	theme.SetSize(120, 40)
	if w := theme.BubbleWidth(); w != 110 {
		t.Errorf("bubble width at 120 cols = %d, want 110", w)
	}

	// Narrow terminals clamp to a minimum.
	theme.SetSize(15, 40)
	if w := theme.BubbleWidth(); w != 20 {
		t.Errorf("bubble width at 15 cols = %d, want 20", w)
	}
}

func TestChartSeriesNonEmpty(t *testing.T) {
	if len(ChartSeries) == 0 {
		t.Fatal("ChartSeries must have at least one color")
	}
}

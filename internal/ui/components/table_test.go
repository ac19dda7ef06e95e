// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/model"
)

// =============================================================================
// DATA TABLE TESTS
// =============================================================================

func testTable(rows int) *model.ResultTable {
	t := &model.ResultTable{
		Columns: []model.Column{{Name: "product"}, {Name: "revenue"}},
	}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, map[string]any{
			"product": "widget",
			"revenue": float64(100 + i),
		})
	}
	t.RowCount = rows
	return t
}

func TestDataTableRendersHeaderAndRows(t *testing.T) {
	dt := NewDataTable(testTable(3), 20)
	out := dt.Render()

	for _, want := range []string{"product", "revenue", "widget", "100", "3 row(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestDataTableTruncatesRows(t *testing.T) {
	dt := NewDataTable(testTable(30), 20)
	out := dt.Render()

	if !strings.Contains(out, "showing first 20") {
		t.Errorf("expected truncation notice, got:\n%s", out)
	}
	if !strings.Contains(out, "10 more hidden") {
		t.Errorf("expected hidden count, got:\n%s", out)
	}
	if !strings.Contains(out, "30 row(s)") {
		t.Errorf("row count should reflect all rows, got:\n%s", out)
	}
}

func TestDataTableServerTruncated(t *testing.T) {
	tbl := testTable(2)
	tbl.Truncated = true
	dt := NewDataTable(tbl, 20)
	out := dt.Render()

	if !strings.Contains(out, "truncated by server") {
		t.Errorf("expected server truncation notice, got:\n%s", out)
	}
}

func TestDataTableEmpty(t *testing.T) {
	dt := NewDataTable(&model.ResultTable{}, 20)
	if out := dt.Render(); out != "" {
		t.Errorf("empty table should render nothing, got %q", out)
	}

	dt = NewDataTable(nil, 20)
	if out := dt.Render(); out != "" {
		t.Errorf("nil table should render nothing, got %q", out)
	}
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{nil, "-"},
		{"text", "text"},
		{true, "true"},
		{float64(42), "42"},
		{42.5, "42.50"},
		{int64(7), "7"},
	}

	for _, tc := range tests {
		got := FormatCell(tc.input)
		if got != tc.want {
			t.Errorf("FormatCell(%v) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render maps assistant reply metadata onto render contracts.
package render

import (
	"testing"

	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/model"
)

func table(rows int) *model.ResultTable {
	t := &model.ResultTable{
		Columns:  []model.Column{{Name: "state"}},
		RowCount: rows,
	}
	for i := 0; i < rows; i++ {
		t.Rows = append(t.Rows, map[string]any{"state": "SP"})
	}
	return t
}

func chart(kind string, points int) *model.Metadata {
	spec := &model.ChartSpec{XAxis: "state", YAxis: "count"}
	for i := 0; i < points; i++ {
		spec.Data = append(spec.Data, map[string]any{"state": "SP", "count": i})
	}
	return &model.Metadata{
		QueryType: model.QueryTypeData,
		ChartType: kind,
		ChartData: spec,
	}
}

func TestSelect_NonDataQueryIsPlainText(t *testing.T) {
	meta := &model.Metadata{
		QueryType:      "general",
		GeneratedQuery: "SELECT 1",
		ResultTable:    table(3),
	}

	d := Select(meta)
	if d.Kind != KindPlainText {
		t.Errorf("Kind = %v, want plain text for non-data queries", d.Kind)
	}
	if d.Table != nil || d.GeneratedQuery != "" {
		t.Error("non-data queries must ignore other metadata fields")
	}
}

func TestSelect_NilMetadataIsPlainText(t *testing.T) {
	if d := Select(nil); d.Kind != KindPlainText {
		t.Errorf("Kind = %v, want plain text for nil metadata", d.Kind)
	}
}

func TestSelect_TableWins(t *testing.T) {
	meta := &model.Metadata{
		QueryType:      model.QueryTypeData,
		GeneratedQuery: "SELECT state FROM orders",
		ResultTable:    table(1),
	}

	d := Select(meta)
	if d.Kind != KindTable {
		t.Errorf("Kind = %v, want table", d.Kind)
	}
	if d.Table == nil || len(d.Table.Rows) != 1 {
		t.Error("table payload should be forwarded")
	}
	if d.GeneratedQuery != "SELECT state FROM orders" {
		t.Error("generated query should be offered as a disclosure element")
	}
}

// A reply with rows and a plottable chart keeps both artifacts.
func TestSelect_TableAndChartBothForwarded(t *testing.T) {
	meta := chart("bar", 3)
	meta.ResultTable = table(2)
	meta.GeneratedQuery = "SELECT state, count(*) FROM orders GROUP BY state"

	d := Select(meta)
	if d.Kind != KindTable {
		t.Errorf("Kind = %v, want table", d.Kind)
	}
	if d.Table == nil || len(d.Table.Rows) != 2 {
		t.Error("table payload should be forwarded")
	}
	if d.Chart == nil || d.ChartKind != "bar" {
		t.Error("chart payload should ride along with the table")
	}
}

// An empty or unplottable chart never rides along; the table stands alone.
func TestSelect_TableWithUnplottableChartStandsAlone(t *testing.T) {
	empty := chart("pie", 0)
	empty.ResultTable = table(2)
	if d := Select(empty); d.Chart != nil {
		t.Error("empty chart data must not accompany the table")
	}

	unsupported := chart("heatmap", 3)
	unsupported.ResultTable = table(2)
	if d := Select(unsupported); d.Chart != nil {
		t.Error("unsupported chart kind must not accompany the table")
	}
}

func TestSelect_EmptyTableIsNoArtifact(t *testing.T) {
	meta := &model.Metadata{
		QueryType:   model.QueryTypeData,
		ResultTable: table(0),
	}

	if d := Select(meta); d.Kind != KindPlainText {
		t.Errorf("Kind = %v, want plain text when the table has no rows", d.Kind)
	}
}

func TestSelect_Chart(t *testing.T) {
	for _, kind := range []string{"bar", "line", "pie", "scatter"} {
		d := Select(chart(kind, 3))
		if d.Kind != KindChart {
			t.Errorf("Kind for %q = %v, want chart", kind, d.Kind)
		}
		if d.Chart == nil || d.ChartKind != kind {
			t.Errorf("chart payload for %q not forwarded", kind)
		}
	}
}

// A pie chart with an empty data array yields the no-data placeholder, not a
// crash and not an empty chart canvas.
func TestSelect_EmptyChartDataIsPlaceholder(t *testing.T) {
	d := Select(chart("pie", 0))
	if d.Kind != KindNoData {
		t.Errorf("Kind = %v, want no-data placeholder", d.Kind)
	}
	if d.Chart != nil {
		t.Error("no-data decision must not carry a chart payload")
	}
}

func TestSelect_UnsupportedChartKind(t *testing.T) {
	d := Select(chart("heatmap", 3))
	if d.Kind != KindUnsupported {
		t.Errorf("Kind = %v, want unsupported notice", d.Kind)
	}
	if d.ChartKind != "heatmap" {
		t.Errorf("ChartKind = %q, want the offending kind", d.ChartKind)
	}
}

func TestSelect_ChartTypeWithoutDataIsNoArtifact(t *testing.T) {
	meta := &model.Metadata{
		QueryType: model.QueryTypeData,
		ChartType: "bar",
		// chart_data absent entirely: treated as no artifact, not an error
	}

	if d := Select(meta); d.Kind != KindPlainText {
		t.Errorf("Kind = %v, want plain text when chart_data is absent", d.Kind)
	}
}

func TestSelect_QueryDisclosureWithoutArtifacts(t *testing.T) {
	meta := &model.Metadata{
		QueryType:      model.QueryTypeData,
		GeneratedQuery: "SELECT COUNT(*) FROM orders",
	}

	d := Select(meta)
	if d.Kind != KindPlainText {
		t.Errorf("Kind = %v, want plain text", d.Kind)
	}
	if d.GeneratedQuery == "" {
		t.Error("generated query should be offered even without other artifacts")
	}
}

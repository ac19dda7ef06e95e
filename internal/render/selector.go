// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render maps assistant reply metadata onto render contracts.
//
// Select is a pure, total function over the metadata shape: it inspects the
// declared query type and the presence of sub-payloads and produces a closed
// Decision the presentation layer can match exhaustively, instead of
// scattering shape checks across the view code.
package render

import (
	"github.com/VenomBlood1207/e-commerce-ai-agent/internal/model"
)

// =============================================================================
// DECISION KIND
// =============================================================================

// Kind identifies which render contract an assistant reply satisfies.
type Kind int

const (
	// KindPlainText renders the reply text only; any artifacts are ignored.
	KindPlainText Kind = iota

	// KindTable renders the reply text plus a tabular result set.
	KindTable

	// KindChart renders the reply text plus a chart of a recognized kind.
	KindChart

	// KindNoData renders a "no data available" placeholder in place of a
	// chart whose spec is present but carries zero data points.
	KindNoData

	// KindUnsupported renders an explicit notice for a chart kind the
	// client cannot draw, rather than silently rendering nothing.
	KindUnsupported
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPlainText:
		return "text"
	case KindTable:
		return "table"
	case KindChart:
		return "chart"
	case KindNoData:
		return "no-data"
	case KindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// =============================================================================
// DECISION
// =============================================================================

// Decision is the typed payload handed to presentation for one reply.
// Table is set only for KindTable. Chart backs KindChart, and also
// accompanies KindTable when the reply carried both artifacts.
// GeneratedQuery is an optional disclosure element offered regardless of
// the kind.
type Decision struct {
	Kind Kind

	// Table backs KindTable.
	Table *model.ResultTable

	// Chart and ChartKind back KindChart, and ride along with KindTable
	// when the reply carried both artifacts. ChartKind is also set for
	// KindUnsupported so the notice can name the offending kind.
	Chart     *model.ChartSpec
	ChartKind string

	// GeneratedQuery is the SQL text offered as a disclosure element
	// whenever the reply carried one.
	GeneratedQuery string
}

// =============================================================================
// SELECTOR
// =============================================================================

// Select maps assistant reply metadata to its render contract.
//
// Missing or empty result tables and chart specs count as "no artifact of
// that kind" and fall through silently; they are never an error. A chart spec
// that is present but empty yields the no-data placeholder, and a present
// spec with an unrecognized kind yields an explicit unsupported notice.
func Select(meta *model.Metadata) Decision {
	if !meta.IsDataQuery() {
		return Decision{Kind: KindPlainText}
	}

	d := Decision{Kind: KindPlainText, GeneratedQuery: meta.GeneratedQuery}

	if !meta.ResultTable.IsEmpty() {
		d.Kind = KindTable
		d.Table = meta.ResultTable
		// A reply may carry both artifacts; a plottable chart rides
		// along with the table instead of being dropped.
		if meta.ChartType != "" && !meta.ChartData.IsEmpty() &&
			model.IsSupportedChartKind(meta.ChartType) {
			d.Chart = meta.ChartData
			d.ChartKind = meta.ChartType
		}
		return d
	}

	if meta.ChartType != "" && meta.ChartData != nil {
		d.ChartKind = meta.ChartType
		switch {
		case meta.ChartData.IsEmpty():
			d.Kind = KindNoData
		case !model.IsSupportedChartKind(meta.ChartType):
			d.Kind = KindUnsupported
		default:
			d.Kind = KindChart
			d.Chart = meta.ChartData
		}
	}

	return d
}

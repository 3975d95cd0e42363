// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ContinuityFigures holds the global mass-balance error percentages from a
// simulation report. The report format prints the same "Continuity Error (%)"
// label in both the runoff and routing continuity blocks, always in that
// order; the parser assigns the first occurrence to Runoff and the second to
// Routing. There is no content-level signal to tell the two apart, so a
// report variant that reorders the blocks would mislabel the figures. Known
// format limitation.
type ContinuityFigures struct {
	// Runoff is the surface runoff quantity continuity error, in percent.
	// Nil when the report contains no continuity lines.
	Runoff *float64 `json:"runoff_error" yaml:"runoff_error"`

	// Routing is the flow routing continuity error, in percent. Nil when
	// the report contains fewer than two continuity lines.
	Routing *float64 `json:"routing_error" yaml:"routing_error"`
}

// FloodRecord is one row of the Node Flooding Summary table.
type FloodRecord struct {
	// Node is the network node identifier.
	Node string `json:"node" yaml:"node"`

	// MaxRate is the peak flooding rate at the node, in CFS.
	MaxRate float64 `json:"max_flooding_rate" yaml:"max_flooding_rate"`

	// TotalVolume is the total flood volume at the node, in 10^6 gallons.
	TotalVolume float64 `json:"total_flood_volume" yaml:"total_flood_volume"`
}

// SurchargeRecord is one row of the Conduit Surcharge Summary table.
type SurchargeRecord struct {
	// Link is the conduit identifier.
	Link string `json:"link" yaml:"link"`

	// HoursSurcharged is the time the conduit spent surcharged, in hours.
	HoursSurcharged float64 `json:"hours_surcharged" yaml:"hours_surcharged"`

	// HoursAboveNormal is the time above full normal flow, in hours.
	HoursAboveNormal float64 `json:"hours_above_full_normal" yaml:"hours_above_full_normal"`
}

// AnalysisResult is the structured health summary extracted from one
// simulation report. It is the only value the extraction engine returns;
// once produced it is never mutated.
type AnalysisResult struct {
	// Continuity holds the global mass-balance error figures.
	Continuity ContinuityFigures `json:"continuity" yaml:"continuity"`

	// TopFloodedNodes lists at most five flooding rows, sorted descending
	// by total flood volume. Empty (never nil) when the report has no
	// flooding table or no valid rows.
	TopFloodedNodes []FloodRecord `json:"top_flooded_nodes" yaml:"top_flooded_nodes"`

	// TopSurchargedConduits lists at most five surcharge rows, sorted
	// descending by hours surcharged. Empty, never nil.
	TopSurchargedConduits []SurchargeRecord `json:"top_surcharged_conduits" yaml:"top_surcharged_conduits"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render formats an AnalysisResult as a human-readable executive
// summary. Rendering is a pure adapter over the structured result; parse
// failures never reach this package, so an empty list here always means "no
// problems found", not "could not analyze".
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/pdiddy/hydro-engine/pkg/types"
)

// severeRoutingThreshold is the routing continuity error magnitude, in
// percent, above which the model is flagged as unstable.
const severeRoutingThreshold = 5.0

// Summary renders the labeled sections of the health summary: continuity
// errors, top flooded nodes, top surcharged conduits.
func Summary(res *types.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Runoff Continuity Error:  %s\n", percentOrMissing(res.Continuity.Runoff))
	fmt.Fprintf(&b, "Routing Continuity Error: %s\n", percentOrMissing(res.Continuity.Routing))

	b.WriteString("\nTop Flooded Nodes (by total volume):\n")
	if len(res.TopFloodedNodes) == 0 {
		b.WriteString("  No flooding data found.\n")
	}
	for i, n := range res.TopFloodedNodes {
		fmt.Fprintf(&b, "  %d. Node %-12s  peak rate %.2f CFS, total volume %.3f x10^6 gal\n",
			i+1, n.Node, n.MaxRate, n.TotalVolume)
	}

	b.WriteString("\nTop Surcharged Conduits (by hours surcharged):\n")
	if len(res.TopSurchargedConduits) == 0 {
		b.WriteString("  No capacity data found.\n")
	}
	for i, c := range res.TopSurchargedConduits {
		fmt.Fprintf(&b, "  %d. Conduit %-9s  %.2f h surcharged, %.2f h above full normal flow\n",
			i+1, c.Link, c.HoursSurcharged, c.HoursAboveNormal)
	}

	return b.String()
}

// Assessment renders health-verdict lines derived from the result: a
// stability warning when the routing error magnitude exceeds 5%, and a
// follow-up hint pointing at the worst flooding node.
func Assessment(res *types.AnalysisResult) string {
	var lines []string

	if r := res.Continuity.Routing; r != nil && math.Abs(*r) > severeRoutingThreshold {
		lines = append(lines, fmt.Sprintf(
			"WARNING: routing continuity error %.3f%% exceeds %.0f%% - severe model stability issue.",
			*r, severeRoutingThreshold))
	}

	if len(res.TopFloodedNodes) > 0 {
		worst := res.TopFloodedNodes[0]
		lines = append(lines, fmt.Sprintf(
			"Node %s flooded heaviest (%.3f x10^6 gal); check the capacity of its downstream conduits.",
			worst.Node, worst.TotalVolume))
	}

	if len(lines) == 0 && len(res.TopSurchargedConduits) == 0 {
		lines = append(lines, "No flooding or surcharge conditions detected.")
	}

	return strings.Join(lines, "\n") + "\n"
}

func percentOrMissing(v *float64) string {
	if v == nil {
		return "not reported"
	}
	return fmt.Sprintf("%.3f%%", *v)
}

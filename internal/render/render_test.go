package render

import (
	"strings"
	"testing"

	"github.com/pdiddy/hydro-engine/pkg/types"
)

func f(v float64) *float64 { return &v }

func healthyResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		Continuity: types.ContinuityFigures{
			Runoff:  f(-0.029),
			Routing: f(0.441),
		},
		TopFloodedNodes: []types.FloodRecord{
			{Node: "J44", MaxRate: 18.25, TotalVolume: 0.800},
			{Node: "J12", MaxRate: 12.50, TotalVolume: 0.250},
		},
		TopSurchargedConduits: []types.SurchargeRecord{
			{Link: "C3", HoursSurcharged: 12.00, HoursAboveNormal: 11.00},
		},
	}
}

func emptyResult() *types.AnalysisResult {
	return &types.AnalysisResult{
		TopFloodedNodes:       []types.FloodRecord{},
		TopSurchargedConduits: []types.SurchargeRecord{},
	}
}

func TestSummary(t *testing.T) {
	out := Summary(healthyResult())

	for _, want := range []string{
		"Runoff Continuity Error:  -0.029%",
		"Routing Continuity Error: 0.441%",
		"Node J44",
		"0.800 x10^6 gal",
		"Node J12",
		"Conduit C3",
		"12.00 h surcharged",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	// Ranked order preserved in the rendering.
	if strings.Index(out, "J44") > strings.Index(out, "J12") {
		t.Errorf("J44 should render before J12:\n%s", out)
	}
}

func TestSummaryEmpty(t *testing.T) {
	out := Summary(emptyResult())

	for _, want := range []string{
		"not reported",
		"No flooding data found.",
		"No capacity data found.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestAssessment(t *testing.T) {
	tests := []struct {
		name        string
		res         *types.AnalysisResult
		wantParts   []string
		rejectParts []string
	}{
		{
			name:        "routing error above threshold flagged",
			res:         &types.AnalysisResult{Continuity: types.ContinuityFigures{Routing: f(6.2)}},
			wantParts:   []string{"WARNING", "6.200%"},
			rejectParts: []string{"No flooding or surcharge"},
		},
		{
			name:      "negative routing error compared by magnitude",
			res:       &types.AnalysisResult{Continuity: types.ContinuityFigures{Routing: f(-8.0)}},
			wantParts: []string{"WARNING"},
		},
		{
			name:        "routing error within threshold not flagged",
			res:         &types.AnalysisResult{Continuity: types.ContinuityFigures{Routing: f(0.441)}},
			rejectParts: []string{"WARNING"},
		},
		{
			name:      "worst flooded node named with follow-up hint",
			res:       healthyResult(),
			wantParts: []string{"Node J44", "downstream conduits"},
		},
		{
			name:        "clean result",
			res:         emptyResult(),
			wantParts:   []string{"No flooding or surcharge conditions detected."},
			rejectParts: []string{"WARNING"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Assessment(tt.res)
			for _, want := range tt.wantParts {
				if !strings.Contains(out, want) {
					t.Errorf("assessment missing %q:\n%s", want, out)
				}
			}
			for _, reject := range tt.rejectParts {
				if strings.Contains(out, reject) {
					t.Errorf("assessment should not contain %q:\n%s", reject, out)
				}
			}
		})
	}
}

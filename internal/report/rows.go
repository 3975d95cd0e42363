// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"strconv"

	"github.com/pdiddy/hydro-engine/pkg/types"
)

// Column-header labels for the identifier columns. A token equal to one of
// these marks a header row, not data.
const (
	floodingHeaderLabel  = "Node"
	surchargeHeaderLabel = "Conduit"
)

// parseFloodRow converts a tokenized line inside the Node Flooding Summary
// into a FloodRecord. It reports false for anything that is not a data row:
// header rows, dashed separators, short lines, and rows whose numeric
// columns fail to parse. Rejection is the normal outcome for most lines in
// a fixed-layout table and is never an error.
//
// Layout: token 0 is the node ID, token 1 hours flooded, token 2 the peak
// flooding rate, token 5 the total flood volume. Token 1 gates acceptance:
// in the header row that column holds a word, in data rows a plain decimal.
func parseFloodRow(fields []string) (types.FloodRecord, bool) {
	if len(fields) < 6 || fields[0] == floodingHeaderLabel || !isPlainDecimal(fields[1]) {
		return types.FloodRecord{}, false
	}

	rate, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return types.FloodRecord{}, false
	}
	volume, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return types.FloodRecord{}, false
	}

	return types.FloodRecord{
		Node:        fields[0],
		MaxRate:     rate,
		TotalVolume: volume,
	}, true
}

// parseSurchargeRow converts a tokenized line inside the Conduit Surcharge
// Summary into a SurchargeRecord, with the same silent-rejection policy as
// parseFloodRow. Token 0 is the conduit ID, token 1 hours surcharged,
// token 3 hours above full normal flow.
func parseSurchargeRow(fields []string) (types.SurchargeRecord, bool) {
	if len(fields) < 5 || fields[0] == surchargeHeaderLabel || !isPlainDecimal(fields[1]) {
		return types.SurchargeRecord{}, false
	}

	hours, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return types.SurchargeRecord{}, false
	}
	aboveNormal, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return types.SurchargeRecord{}, false
	}

	return types.SurchargeRecord{
		Link:             fields[0],
		HoursSurcharged:  hours,
		HoursAboveNormal: aboveNormal,
	}, true
}

// isPlainDecimal reports whether s is decimal digits with at most one dot.
// Deliberately narrower than strconv.ParseFloat: this check tells data rows
// apart from header rows, so header tokens like "Hours" or "days/hr" must
// fail it, and the gating column never carries signs or exponents.
func isPlainDecimal(s string) bool {
	digits := 0
	dotted := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' && !dotted:
			dotted = true
		default:
			return false
		}
	}
	return digits > 0
}

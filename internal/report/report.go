// Package report extracts a structured health summary from hydraulic-model
// simulation report files. A report is a large, loosely structured text file
// mixing narrative blocks with fixed-layout tables that end at a blank line
// rather than an explicit delimiter. The parser makes a single forward pass,
// holds one line in memory at a time, and degrades gracefully: malformed
// rows are skipped, missing sections leave empty result fields, and only a
// missing or unreadable source is reported as an error.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/hydro-engine/pkg/types"
)

// ErrReportNotFound marks a primary report path that does not exist.
// Callers use errors.Is to tell "no such file" apart from read failures.
var ErrReportNotFound = errors.New("report file not found")

// Literal marker text the report format uses. Section starts are recognized
// by substring match anywhere in the line; there is no formal grammar.
const (
	floodingMarker  = "Node Flooding Summary"
	surchargeMarker = "Conduit Surcharge Summary"
	continuityLabel = "Continuity Error (%)"
)

// topN caps the ranked lists. Fixed, not configurable: the result contract
// promises at most five entries per category.
const topN = 5

// tableState tracks which fixed-layout table the pass is currently inside.
// A single enum rather than per-table booleans, so the states cannot
// overlap.
type tableState int

const (
	outsideTables tableState = iota
	inFloodingTable
	inSurchargeTable
)

// Parse opens and parses the report at rptPath. modelPath names the
// companion model-definition file; it is accepted for interface
// compatibility with callers that always pass it, and never read. The file
// handle is closed on every path. A missing report yields an error wrapping
// ErrReportNotFound; any other open or read failure is returned with
// detail, never alongside a partial result.
func Parse(rptPath, modelPath string) (*types.AnalysisResult, error) {
	_ = modelPath

	f, err := os.Open(rptPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrReportNotFound, rptPath)
		}
		return nil, fmt.Errorf("opening report %s: %w", rptPath, err)
	}
	defer f.Close()

	res, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", rptPath, err)
	}
	return res, nil
}

// ParseReader runs the single-pass extraction over any line source. Each
// invocation owns its accumulators, so concurrent calls on distinct readers
// are safe. Cancellation is the caller's concern: aborting the reader makes
// the pass surface a read error instead of a partial result.
func ParseReader(r io.Reader) (*types.AnalysisResult, error) {
	var (
		continuity types.ContinuityFigures
		flooded    []types.FloodRecord
		surcharged []types.SurchargeRecord
		state      tableState
	)

	sc := newLineScanner(r)
	for {
		line, ok := sc.next()
		if !ok {
			break
		}

		// Continuity lines live in narrative blocks and are matched
		// independently of table state.
		if strings.Contains(line, continuityLabel) {
			recordContinuity(&continuity, line)
		}

		// Section starts. The marker line itself is consumed; entering one
		// table implicitly leaves the other. A repeated marker re-enters the
		// table without resetting the accumulator, so rows gathered before a
		// repeated section header are kept.
		switch {
		case strings.Contains(line, floodingMarker):
			state = inFloodingTable
			continue
		case strings.Contains(line, surchargeMarker):
			state = inSurchargeTable
			continue
		}

		switch state {
		case inFloodingTable:
			if strings.TrimSpace(line) == "" {
				// Blank lines appear between the section header and the
				// first data row; only a blank after accumulated data ends
				// the table.
				if len(flooded) > 0 {
					state = outsideTables
				}
				continue
			}
			if rec, ok := parseFloodRow(strings.Fields(line)); ok {
				flooded = append(flooded, rec)
			}

		case inSurchargeTable:
			if strings.TrimSpace(line) == "" {
				if len(surcharged) > 0 {
					state = outsideTables
				}
				continue
			}
			if rec, ok := parseSurchargeRow(strings.Fields(line)); ok {
				surcharged = append(surcharged, rec)
			}
		}
	}
	// End of input while still inside a table closes it implicitly.

	if err := sc.readErr(); err != nil {
		return nil, err
	}

	return &types.AnalysisResult{
		Continuity:            continuity,
		TopFloodedNodes:       topFloodedNodes(flooded),
		TopSurchargedConduits: topSurchargedConduits(surcharged),
	}, nil
}

// recordContinuity parses the trailing token of a continuity line. The
// report prints the identical label in the runoff block first and the
// routing block second, so assignment is positional: first hit runoff,
// second routing, anything further ignored. A non-numeric trailing token is
// skipped like any other malformed line.
func recordContinuity(c *types.ContinuityFigures, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	v, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return
	}
	switch {
	case c.Runoff == nil:
		c.Runoff = &v
	case c.Routing == nil:
		c.Routing = &v
	}
}

// topFloodedNodes ranks flooding rows descending by total flood volume and
// keeps the first topN. The sort is stable so ties keep input order and
// repeated runs on identical input produce identical results. The returned
// slice is never nil.
func topFloodedNodes(rows []types.FloodRecord) []types.FloodRecord {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalVolume > rows[j].TotalVolume
	})
	if len(rows) > topN {
		rows = rows[:topN]
	}
	return append([]types.FloodRecord{}, rows...)
}

// topSurchargedConduits ranks surcharge rows descending by hours surcharged,
// with the same stability and truncation rules as topFloodedNodes.
func topSurchargedConduits(rows []types.SurchargeRecord) []types.SurchargeRecord {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].HoursSurcharged > rows[j].HoursSurcharged
	})
	if len(rows) > topN {
		rows = rows[:topN]
	}
	return append([]types.SurchargeRecord{}, rows...)
}

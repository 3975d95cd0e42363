package report

import (
	"strings"
	"testing"
)

func TestIsPlainDecimal(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"5", true},
		{"5.00", true},
		{".5", true},
		{"5.", true},
		{"0", true},
		{"", false},
		{".", false},
		{"1.2.3", false},
		{"-5", false},
		{"+5", false},
		{"1e5", false},
		{"NaN", false},
		{"Hours", false},
		{"hr:min", false},
	}
	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			if got := isPlainDecimal(tt.s); got != tt.want {
				t.Errorf("isPlainDecimal(%q) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestParseFloodRow(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantOK   bool
		wantNode string
		wantRate float64
		wantVol  float64
	}{
		{
			name:     "valid row",
			line:     "J12  5.00  12.50  0  00:40  0.250",
			wantOK:   true,
			wantNode: "J12",
			wantRate: 12.50,
			wantVol:  0.250,
		},
		{
			name:     "extra columns tolerated",
			line:     "J44  3.20  18.25  0  01:10  0.800  0.00  extra",
			wantOK:   true,
			wantNode: "J44",
			wantRate: 18.25,
			wantVol:  0.800,
		},
		{name: "too few tokens", line: "J12  5.00  12.50  0  00:40"},
		{name: "header identifier", line: "Node  5.00  12.50  0  0  0.250"},
		{name: "non-decimal gate column", line: "J12  Flooded  12.50  0  0  0.250"},
		{name: "negative gate column", line: "J12  -5.00  12.50  0  0  0.250"},
		{name: "rate fails to parse", line: "J12  5.00  rate  0  0  0.250"},
		{name: "volume fails to parse", line: "J12  5.00  12.50  0  0  vol"},
		{name: "dashed separator", line: "-------------------------------"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := parseFloodRow(strings.Fields(tt.line))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if rec.Node != tt.wantNode || rec.MaxRate != tt.wantRate || rec.TotalVolume != tt.wantVol {
				t.Errorf("rec = %+v, want {%s %v %v}", rec, tt.wantNode, tt.wantRate, tt.wantVol)
			}
		})
	}
}

func TestParseSurchargeRow(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantOK    bool
		wantLink  string
		wantHours float64
		wantAbove float64
	}{
		{
			name:      "valid row",
			line:      "C3  12.00  12.50  11.00  3.50  0.01",
			wantOK:    true,
			wantLink:  "C3",
			wantHours: 12.00,
			wantAbove: 11.00,
		},
		{name: "too few tokens", line: "C3  12.00  12.50  11.00"},
		{name: "header identifier", line: "Conduit  12.00  12.50  11.00  3.50"},
		{name: "non-decimal gate column", line: "C3  Hours  12.50  11.00  3.50"},
		{name: "above-normal fails to parse", line: "C3  12.00  12.50  oops  3.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := parseSurchargeRow(strings.Fields(tt.line))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if rec.Link != tt.wantLink || rec.HoursSurcharged != tt.wantHours || rec.HoursAboveNormal != tt.wantAbove {
				t.Errorf("rec = %+v, want {%s %v %v}", rec, tt.wantLink, tt.wantHours, tt.wantAbove)
			}
		})
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"errors"
	"strings"
	"testing"
)

func collectLines(t *testing.T, input string) []string {
	t.Helper()
	sc := newLineScanner(strings.NewReader(input))
	var lines []string
	for {
		line, ok := sc.next()
		if !ok {
			break
		}
		lines = append(lines, line)
	}
	if err := sc.readErr(); err != nil {
		t.Fatalf("readErr: %v", err)
	}
	return lines
}

func TestLineScanner(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "plain lines",
			input: "one\ntwo\nthree\n",
			want:  []string{"one", "two", "three"},
		},
		{
			name:  "final line without trailing newline",
			input: "one\ntwo",
			want:  []string{"one", "two"},
		},
		{
			name:  "carriage returns stripped",
			input: "one\r\ntwo\r\n",
			want:  []string{"one", "two"},
		},
		{
			name:  "blank lines preserved",
			input: "one\n\ntwo\n",
			want:  []string{"one", "", "two"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "invalid utf-8 substituted",
			input: "J\x80K  1.0\n",
			want:  []string{"J�K  1.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectLines(t, tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d lines %q, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Lines longer than the internal buffer must come through whole, not fail.
func TestLineScannerLongLine(t *testing.T) {
	long := strings.Repeat("x", 256*1024)
	got := collectLines(t, long+"\nshort\n")
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2", len(got))
	}
	if got[0] != long {
		t.Errorf("long line mangled: len = %d, want %d", len(got[0]), len(long))
	}
	if got[1] != "short" {
		t.Errorf("line[1] = %q, want %q", got[1], "short")
	}
}

func TestLineScannerReadError(t *testing.T) {
	wantErr := errors.New("device gone")
	sc := newLineScanner(&stubReader{err: wantErr})

	if _, ok := sc.next(); ok {
		t.Fatal("next returned a line from a failing reader")
	}
	if !errors.Is(sc.readErr(), wantErr) {
		t.Errorf("readErr = %v, want %v", sc.readErr(), wantErr)
	}
}

type stubReader struct{ err error }

func (r *stubReader) Read(p []byte) (int, error) { return 0, r.err }

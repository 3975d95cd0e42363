// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// lineScanner yields one decoded line at a time from a reader. Only the
// current line is buffered, so memory stays bounded no matter how large the
// report is. Invalid UTF-8 sequences are substituted rather than surfaced:
// report files are frequently written with mixed encodings, and a single bad
// byte must not abort the parse of an otherwise valid multi-gigabyte file.
type lineScanner struct {
	r    *bufio.Reader
	err  error
	done bool
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{r: bufio.NewReaderSize(r, 64*1024)}
}

// next returns the next line with its trailing newline stripped. It reports
// false at end of input or on a read failure; the caller distinguishes the
// two by checking readErr afterwards. bufio.Reader.ReadString is used
// instead of bufio.Scanner because Scanner fails outright on lines longer
// than its token limit, and report generators do emit pathological lines.
func (s *lineScanner) next() (string, bool) {
	if s.done {
		return "", false
	}

	line, err := s.r.ReadString('\n')
	switch {
	case err == io.EOF:
		s.done = true
		if line == "" {
			return "", false
		}
		// Final line without a trailing newline.
	case err != nil:
		s.done = true
		s.err = err
		return "", false
	}

	line = strings.TrimRight(line, "\r\n")
	if !utf8.ValidString(line) {
		line = strings.ToValidUTF8(line, string(utf8.RuneError))
	}
	return line, true
}

// readErr returns the read failure that terminated the stream, if any.
// io.EOF is normal completion and is never reported here.
func (s *lineScanner) readErr() error {
	return s.err
}

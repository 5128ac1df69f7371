package main

import (
	"bufio"
	"io"
	"os"
)

// fileStream is a minimal input.Stream over a plain text file: one raw
// line per ReadLine call. It does not join line continuations or resolve
// directives; that's the preprocessor's job, explicitly out of scope for
// this core (spec §1). Good enough for the demo CLI and for feeding this
// repository's own makefiles straight through without a real preprocessor.
type fileStream struct {
	scanner *bufio.Scanner
	line    int
}

// newFileStream opens path and wraps it. The caller is responsible for
// closing the returned file handle once parsing is done.
func newFileStream(path string) (*fileStream, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return newReaderStream(f), f, nil
}

func newReaderStream(r io.Reader) *fileStream {
	return &fileStream{scanner: bufio.NewScanner(r)}
}

func (s *fileStream) ReadLine() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	s.line++
	return s.scanner.Text(), true
}

func (s *fileStream) LineNumber() int { return s.line }

// osEnvironmentSink mirrors environment-sourced macros into the real
// process environment via os.Setenv — the only way Go has to mutate its
// own environment, so no third-party library stands in for it here
// (see DESIGN.md).
type osEnvironmentSink struct{}

func (osEnvironmentSink) Set(name, value string) {
	os.Setenv(name, value)
}

// Package input defines the boundary between this core and the
// preprocessor that yields logical, already-continuation-joined lines, plus
// the small file-metadata and environment-mirroring ports the parser and
// macro table need from the host.
package input

import "time"

// Stream supplies one logical, preprocessed line at a time. ReadLine
// returns ok=false once exhausted.
type Stream interface {
	ReadLine() (line string, ok bool)
	LineNumber() int
}

// FileMetaProvider answers the file-system questions a DescriptionBlock
// needs when it's first created.
type FileMetaProvider interface {
	Exists(path string) bool
	ModTime(path string) time.Time
}

// EnvironmentSink is where environment-sourced macros mirror their expanded
// value; the executor later reads it to build a child process environment.
type EnvironmentSink interface {
	Set(name, value string)
}

// Options carries the two CLI switches the parser needs at startup.
type Options struct {
	SuppressOutputMessages bool
	StopOnErrors           bool
}

// osFileMeta is the trivial FileMetaProvider backed by the real filesystem,
// used by the demo CLI and by tests that want real file timestamps.
type osFileMeta struct{}

// OSFileMeta returns a FileMetaProvider backed by os.Stat.
func OSFileMeta() FileMetaProvider { return osFileMeta{} }

package input

// Cursor is a thin adapter over a Stream: it holds "the current line" the
// way jom's Parser holds m_line, so callers can peek at Line()/Line number
// before deciding how to classify it, then Advance() to pull the next one.
type Cursor struct {
	stream Stream
	line   string
	atEOF  bool
}

// NewCursor wraps stream and primes the cursor with its first line.
func NewCursor(stream Stream) *Cursor {
	c := &Cursor{stream: stream}
	c.Advance()
	return c
}

// Line returns the current logical line. Valid only while !Done().
func (c *Cursor) Line() string { return c.line }

// LineNumber returns the 1-based line number of the current line, for
// diagnostics.
func (c *Cursor) LineNumber() int { return c.stream.LineNumber() }

// Done reports whether the stream is exhausted.
func (c *Cursor) Done() bool { return c.atEOF }

// Advance pulls the next logical line from the stream.
func (c *Cursor) Advance() {
	line, ok := c.stream.ReadLine()
	if !ok {
		c.atEOF = true
		c.line = ""
		return
	}
	c.line = line
}

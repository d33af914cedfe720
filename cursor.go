package prop

// cursor is a forward-only view over the source document.
// The offset only ever increases.
type cursor struct {
	src   string
	index int
}

func newCursor(data []byte) *cursor {
	return &cursor{src: string(data)}
}

// newStringCursor does not copy s.
func newStringCursor(s string) *cursor {
	return &cursor{src: s}
}

func (c *cursor) peek() (byte, bool) {
	if c.index < len(c.src) {
		return c.src[c.index], true
	}
	return 0, false
}

func (c *cursor) next() (byte, bool) {
	if c.index < len(c.src) {
		b := c.src[c.index]
		c.index++
		return b, true
	}
	return 0, false
}

// discard skips a byte that has already been peeked.
func (c *cursor) discard() {
	if c.index < len(c.src) {
		c.index++
	}
}

func (c *cursor) offset() int {
	return c.index
}

// lno returns the 1-based line number containing offset.
// Only called when building diagnostics.
func (c *cursor) lno(offset int) int {
	lno := 1
	for i := 0; i < offset && i < len(c.src); i++ {
		if c.lineBreak(i) {
			lno++
		}
	}
	return lno
}

// lineBreak reports whether the byte at i ends a line. \n, \r and \r\n each
// count as one line break.
func (c *cursor) lineBreak(i int) bool {
	switch c.src[i] {
	case '\n':
		return true
	case '\r':
		return i+1 >= len(c.src) || c.src[i+1] != '\n'
	}
	return false
}

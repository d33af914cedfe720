package prop

import (
	"iter"
)

// An Entry is one key/value pair of a properties document, as yielded by
// [Entries].
type Entry struct {
	// Lno is the 1-based line number on which the key starts.
	Lno int
	// Offset is the byte offset at which the key starts.
	Offset int
	Key    string
	Value  string
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isTerminator(b byte) bool {
	return b == '\n' || b == '\t' || b == '\r'
}

func isComment(b byte) bool {
	return b == '#' || b == '!'
}

func isSeparator(b byte) bool {
	return b == '=' || b == ':'
}

// scanner splits the source into keys and values. The most recently
// extracted token is held in buf, which is reused between tokens.
type scanner struct {
	cur *cursor
	buf []byte

	// start is the offset of the first byte of the current token.
	start int
}

// skipWhitespace consumes whitespace and returns the first other byte.
func (s *scanner) skipWhitespace() (byte, bool) {
	for {
		b, ok := s.cur.next()
		if !ok {
			return 0, false
		}
		if !isSpace(b) {
			return b, true
		}
	}
}

// skipLine consumes the rest of the current line, including its terminator.
func (s *scanner) skipLine() {
	for {
		b, ok := s.cur.next()
		if !ok || isTerminator(b) {
			return
		}
	}
}

// skipWhitespaceAndComments consumes blank lines and full-line comments and
// returns the byte that starts real content. The returned byte has already
// been consumed.
func (s *scanner) skipWhitespaceAndComments() (byte, bool) {
	for {
		b, ok := s.skipWhitespace()
		if !ok {
			return 0, false
		}
		if !isComment(b) {
			return b, true
		}
		s.skipLine()
	}
}

// extractKey reads the next key into buf. Whitespace and comment lines are
// skipped before every byte of the key, so "a b = 1" has the key "ab". It
// returns false when the input ends before a separator, which silently ends
// the document.
func (s *scanner) extractKey() bool {
	s.buf = s.buf[:0]
	b, ok := s.skipWhitespaceAndComments()
	if !ok {
		return false
	}
	s.start = s.cur.offset() - 1
	for !isSeparator(b) {
		s.buf = append(s.buf, b)
		if b, ok = s.skipWhitespaceAndComments(); !ok {
			return false
		}
	}
	return true
}

// extractValue reads the rest of the line into buf. A single space after the
// separator is dropped.
func (s *scanner) extractValue() {
	s.buf = s.buf[:0]
	if b, ok := s.cur.peek(); ok && b == ' ' {
		s.cur.discard()
	}
	s.start = s.cur.offset()
	for {
		b, ok := s.cur.next()
		if !ok || isTerminator(b) {
			return
		}
		s.buf = append(s.buf, b)
	}
}

// token returns the current token as a string.
func (s *scanner) token() string {
	return string(s.buf)
}

// Entries iterates over the key/value pairs of a properties document in
// order. Comments and blank lines are skipped, and a trailing key with no
// separator is dropped, exactly as [Unmarshal] does.
//
// Duplicate keys are yielded each time they appear.
func Entries(data []byte) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		s := &scanner{cur: newCursor(data)}
		lno, lnoOffset := 1, 0
		for s.extractKey() {
			for ; lnoOffset < s.start; lnoOffset++ {
				if s.cur.lineBreak(lnoOffset) {
					lno++
				}
			}
			entry := Entry{Lno: lno, Offset: s.start, Key: s.token()}
			s.extractValue()
			entry.Value = s.token()
			if !yield(entry) {
				return
			}
		}
	}
}

package prop

import "testing"

func TestCursor(t *testing.T) {
	c := newStringCursor("a=\nb")
	if b, ok := c.peek(); !ok || b != 'a' {
		t.Fatalf("peek: got %q, %v", b, ok)
	}
	if b, _ := c.next(); b != 'a' {
		t.Fatalf("next: got %q", b)
	}
	c.discard()
	if c.offset() != 2 {
		t.Errorf("offset: got %d, want 2", c.offset())
	}
	for range 3 {
		c.next()
	}
	if _, ok := c.next(); ok {
		t.Error("expected end of input")
	}
	c.discard()
	if c.offset() != 4 {
		t.Errorf("offset past the end: got %d, want 4", c.offset())
	}

	for offset, want := range []int{1, 1, 1, 2, 2} {
		if got := c.lno(offset); got != want {
			t.Errorf("lno(%d): got %d, want %d", offset, got, want)
		}
	}
}

func TestCursorLineBreaks(t *testing.T) {
	c := newStringCursor("a\rb\r\nc\nd")
	for offset, want := range []int{1, 1, 2, 2, 2, 3, 3, 4} {
		if got := c.lno(offset); got != want {
			t.Errorf("lno(%d): got %d, want %d", offset, got, want)
		}
	}
}

func TestScannerSkipsCommentsInsideKeys(t *testing.T) {
	s := &scanner{cur: newStringCursor("fir st\n! note\n  name : Ada")}
	if !s.extractKey() || s.token() != "firstname" || s.start != 0 {
		t.Fatalf("key: got %q at %d", s.token(), s.start)
	}
	s.extractValue()
	if s.token() != "Ada" {
		t.Errorf("value: got %q", s.token())
	}
}

func TestScannerReusesBuffer(t *testing.T) {
	s := &scanner{cur: newStringCursor("long-key=v\nk=value")}
	if !s.extractKey() || s.token() != "long-key" {
		t.Fatalf("first key: got %q", s.token())
	}
	buf := s.buf[:1]
	s.extractValue()
	if s.token() != "v" || s.start != 9 {
		t.Fatalf("first value: got %q at %d", s.token(), s.start)
	}
	if !s.extractKey() || s.token() != "k" || s.start != 11 {
		t.Fatalf("second key: got %q at %d", s.token(), s.start)
	}
	if &buf[0] != &s.buf[0] {
		t.Error("expected the token buffer to be reused")
	}
	s.extractValue()
	if s.token() != "value" {
		t.Fatalf("second value: got %q", s.token())
	}
	if s.extractKey() {
		t.Error("expected no more keys")
	}
}

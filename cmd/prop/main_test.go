package main

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCanonical(t *testing.T) {
	input := "# comment\nb=2\na: 1\nb=3\nempty=\n"
	for _, test := range []struct {
		colon bool
		out   string
	}{
		{false, "a=1\nb=3\nempty=\n"},
		{true, "a: 1\nb: 3\nempty: \n"},
	} {
		out, err := canonical([]byte(input), formatter(test.colon))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(test.out, string(out)); diff != "" {
			t.Errorf("colon=%v mismatch (-want +got):\n%s", test.colon, diff)
		}
		again, err := canonical(out, formatter(test.colon))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(out, again) {
			t.Errorf("canonical form is not stable: %q became %q", out, again)
		}
	}

	out, err := canonical([]byte("\n# nothing here\n"), formatter(false))
	if err != nil || len(out) != 0 {
		t.Errorf("expected empty output, got %q, %v", out, err)
	}
}

func TestLookup(t *testing.T) {
	data := []byte("a=1\nb=\na=2")
	if v, ok := lookup(data, "a"); !ok || v != "2" {
		t.Errorf("lookup(a): got %q, %v", v, ok)
	}
	if v, ok := lookup(data, "b"); !ok || v != "" {
		t.Errorf("lookup(b): got %q, %v", v, ok)
	}
	if _, ok := lookup(data, "c"); ok {
		t.Error("lookup(c): expected not found")
	}
}

func TestPrintDiff(t *testing.T) {
	var buf bytes.Buffer
	printDiff(&buf, "a=1\nb=2\n", "a=1\nb=3\n")
	if diff := cmp.Diff(" a=1\n-b=2\n+b=3\n", buf.String()); diff != "" {
		t.Errorf("diff mismatch (-want +got):\n%s", diff)
	}
}

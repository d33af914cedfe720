package main

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReaders(t *testing.T) {
	want := document{{"name", "Ada"}, {"score", "100"}, {"retired", ""}, {"admin", "true"}}

	for _, test := range []struct {
		name  string
		read  func([]byte) (document, error)
		input string
	}{
		{"prop", readProp, "name=Ada\nscore=100\nretired=\nadmin=true\n"},
		{"json", readJSON, `{"name": "Ada", "score": 100, "retired": null, "admin": true}`},
		{"yaml", readYAML, "name: Ada\nscore: 100\nretired:\nadmin: true\n"},
		{"toml", readTOML, "name = \"Ada\"\nscore = 100\nretired = \"\"\nadmin = true\n"},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.read([]byte(test.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(want, got, cmp.AllowUnexported(pair{})); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadersRejectNesting(t *testing.T) {
	for _, test := range []struct {
		name  string
		read  func([]byte) (document, error)
		input string
	}{
		{"json", readJSON, `{"a": {"b": 1}}`},
		{"json array", readJSON, `[1, 2]`},
		{"yaml", readYAML, "a:\n  b: 1\n"},
		{"yaml list", readYAML, "- a\n- b\n"},
		{"toml", readTOML, "[a]\nb = 1\n"},
		{"toml array", readTOML, "a = [1, 2]\n"},
	} {
		t.Run(test.name, func(t *testing.T) {
			if _, err := test.read([]byte(test.input)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestDuplicateKeysKeepFirstPosition(t *testing.T) {
	got, err := readProp([]byte("a=1\nb=2\na=3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := document{{"a", "3"}, {"b", "2"}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(pair{})); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestWriters(t *testing.T) {
	doc := document{{"b", "x y"}, {"a", "1"}, {"c", ""}}

	for _, test := range []struct {
		name  string
		write func(*bytes.Buffer, document) error
		out   string
	}{
		{"prop", func(w *bytes.Buffer, d document) error { return writeProp(w, d, formatter(false)) }, "a=1\nb=x y\nc=\n"},
		{"json", func(w *bytes.Buffer, d document) error { return writeJSON(w, d) }, "{\n  \"b\": \"x y\",\n  \"a\": \"1\",\n  \"c\": \"\"\n}\n"},
		{"toml", func(w *bytes.Buffer, d document) error { return writeTOML(w, d) }, "a = \"1\"\nb = \"x y\"\nc = \"\"\n"},
	} {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := test.write(&buf, doc); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(test.out, buf.String()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	doc := document{{"b", "x y"}, {"a", "1"}, {"c", ""}, {"d", "true"}}
	var buf bytes.Buffer
	if err := writeYAML(&buf, doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := readYAML(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error reading %q: %v", buf.String(), err)
	}
	if diff := cmp.Diff(doc, got, cmp.AllowUnexported(pair{})); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

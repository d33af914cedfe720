package schema

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSchema(t *testing.T) {
	examples, err := os.ReadFile("testdata/examples.txt")
	if err != nil {
		t.Fatalf("Failed to read examples file: %v", err)
	}

	for _, example := range strings.Split(string(examples), "\n===\n") {
		parts := strings.SplitN(example+"\n", "\n---\n", 3)
		if len(parts) != 3 {
			t.Fatalf("Invalid example format: %s", example)
		}
		comment, _, _ := strings.Cut(parts[0], "\n")

		t.Run(strings.Trim(comment, "# "), func(t *testing.T) {
			s, err := Parse([]byte(parts[0]))
			if err != nil {
				t.Fatalf("couldn't parse schema: %v", err)
			}

			expected := []string{}
			for _, line := range strings.Split(strings.TrimSpace(parts[2]), "\n") {
				if line != "" {
					expected = append(expected, line)
				}
			}
			actual := []string{}
			for _, err := range s.Validate([]byte(parts[1])) {
				actual = append(actual, err.Error())
			}
			if diff := cmp.Diff(expected, actual); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string
		err   string
	}{
		{
			name:  "bad pattern",
			input: "version=[0-9",
			err:   "invalid schema: invalid pattern for version: ",
		},
		{
			name:  "required and optional",
			input: "id=.+\nid?=.*",
			err:   "invalid schema: id is both required and optional",
		},
		{
			name:  "key without separator",
			input: "\xff",
			err:   "",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.input))
			if test.err == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %q, got nil", test.err)
			}
			if !strings.HasPrefix(err.Error(), test.err) {
				t.Errorf("expected error %q, got %q", test.err, err.Error())
			}
		})
	}
}

func TestKeys(t *testing.T) {
	s, err := Parse([]byte("b=.*\na?=.*\n*=.*"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, s.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestValidationErrorPosition(t *testing.T) {
	s, err := Parse([]byte("a=.*"))
	if err != nil {
		t.Fatal(err)
	}
	errs := s.Validate([]byte("a=1\n  b=2"))
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if errs[0].Lno() != 2 || errs[0].Offset() != 6 || errs[0].Key() != "b" {
		t.Errorf("unexpected position: lno=%d offset=%d key=%q", errs[0].Lno(), errs[0].Offset(), errs[0].Key())
	}
	if errs[0].Msg() != "unexpected key b" {
		t.Errorf("unexpected message %q", errs[0].Msg())
	}
}

package prop_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MRepoApp/prop-go"
)

func entriesToJSON(input string) string {
	var pairs [][2]string
	for entry := range prop.Entries([]byte(input)) {
		pairs = append(pairs, [2]string{entry.Key, entry.Value})
	}
	bytes, _ := json.Marshal(pairs)
	return string(bytes)
}

func TestEquivalence(t *testing.T) {
	examples, err := os.ReadFile("testdata/examples.txt")
	if err != nil {
		t.Fatalf("Failed to read examples file: %v", err)
	}

	examplesStr := strings.ReplaceAll(string(examples), "␉", "\t")
	examplesStr = strings.ReplaceAll(examplesStr, "␊", "\r")

	for _, example := range strings.Split(examplesStr, "\n===\n") {
		parts := strings.SplitN(example, "\n---\n", 2)
		if len(parts) != 2 {
			t.Fatalf("Invalid example format: %s", example)
		}
		input, expected := parts[0], strings.TrimSpace(parts[1])

		if output := entriesToJSON(input); output != expected {
			t.Errorf("Mismatch:\nInput: %#v\nExpected: %#v\nGot: %#v", input, expected, output)
		}
	}
}

func TestEntriesPosition(t *testing.T) {
	input := "# header\n\nname=Ada\n  role: engineer\r\nretired="
	var got []prop.Entry
	for entry := range prop.Entries([]byte(input)) {
		got = append(got, entry)
	}
	want := []prop.Entry{
		{Lno: 3, Offset: 10, Key: "name", Value: "Ada"},
		{Lno: 4, Offset: 21, Key: "role", Value: "engineer"},
		{Lno: 5, Offset: 37, Key: "retired", Value: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
}

func TestEntriesStop(t *testing.T) {
	var keys []string
	for entry := range prop.Entries([]byte("a=1\nb=2\nc=3")) {
		keys = append(keys, entry.Key)
		if entry.Key == "b" {
			break
		}
	}
	if diff := cmp.Diff([]string{"a", "b"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

// package schema provides a mechanism to validate the keys and values
// of a properties document.
//
// A schema is itself a properties document. Each key names a key that may
// appear in the target document, and each value is a regular expression
// that the target's value must match. The regular expressions must match the
// entire value, so (for example): "a" matches "a", but not "cat".
//
// By default every key in the schema is required. A key ending in "?" is
// optional. The special key "*" matches any key not otherwise mentioned;
// without it, unexpected keys are reported as errors. An empty pattern means
// the value must be empty.
//
// # Examples
//
// This example schema
//
//	version=\d+
//	id?=[a-zA-Z]+
//
// matches the documents
//
//	version=1
//
// or,
//
//	version=1
//	id=elephant
//
// but not
//
//	id=elephant             # missing required key version
//
// or
//
//	version=1
//	name=The Elephant       # unexpected key name
//
// A document may also be checked for duplicates: a key that appears twice
// is always reported, since only the last value would survive decoding.
package schema

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/MRepoApp/prop-go"
)

// Any is the schema key that matches keys not otherwise listed.
const Any = "*"

// A Schema allows you to validate a properties document against a set of
// rules.
type Schema struct {
	rules    map[string]*rule
	required []string
	fallback *rule
}

type rule struct {
	raw     string
	pattern *regexp.Regexp
}

func (r *rule) match(value string) bool {
	return r.pattern.MatchString(value)
}

// Parse a schema from the given input.
// An error is returned if the input is not a valid properties document, or
// if it contains invalid regular expressions.
func Parse(input []byte) (*Schema, error) {
	defs := map[string]*string{}
	if err := prop.Unmarshal(input, &defs); err != nil {
		return nil, err
	}

	s := &Schema{rules: map[string]*rule{}}
	for key, raw := range defs {
		pattern := ""
		if raw != nil {
			pattern = *raw
		}
		re, err := regexp.Compile(`^(?:` + pattern + `)$`)
		if err != nil {
			return nil, fmt.Errorf("invalid schema: invalid pattern for %s: %w", key, err)
		}
		r := &rule{raw: pattern, pattern: re}

		if key == Any {
			s.fallback = r
			continue
		}
		if name, optional := strings.CutSuffix(key, "?"); optional {
			if _, dup := defs[name]; dup {
				return nil, fmt.Errorf("invalid schema: %s is both required and optional", name)
			}
			s.rules[name] = r
			continue
		}
		s.rules[key] = r
		s.required = append(s.required, key)
	}
	slices.Sort(s.required)
	return s, nil
}

// Validate validates the input against the schema.
// If the input matches the schema, nil is returned. Otherwise, it returns
// the problems in document order, followed by any missing required keys.
func (s *Schema) Validate(input []byte) []ValidationError {
	var errs []ValidationError
	seen := map[string]int{}
	lastLno := 1

	for entry := range prop.Entries(input) {
		lastLno = entry.Lno
		if first, dup := seen[entry.Key]; dup {
			errs = append(errs, ValidationError{
				lno:    entry.Lno,
				offset: entry.Offset,
				key:    entry.Key,
				msg:    fmt.Sprintf("duplicate key %s (first defined on line %d)", entry.Key, first),
			})
			continue
		}
		seen[entry.Key] = entry.Lno

		r, ok := s.rules[entry.Key]
		if !ok {
			r = s.fallback
		}
		if r == nil {
			errs = append(errs, ValidationError{
				lno:    entry.Lno,
				offset: entry.Offset,
				key:    entry.Key,
				msg:    "unexpected key " + entry.Key,
			})
			continue
		}
		if !r.match(entry.Value) {
			errs = append(errs, ValidationError{
				lno:    entry.Lno,
				offset: entry.Offset,
				key:    entry.Key,
				msg:    fmt.Sprintf("expected %s to match %s", entry.Key, describe(r.raw)),
			})
		}
	}

	for _, key := range s.required {
		if _, ok := seen[key]; !ok {
			errs = append(errs, ValidationError{
				lno:    lastLno,
				offset: -1,
				key:    key,
				msg:    "missing required key " + key,
			})
		}
	}
	return errs
}

// Keys returns the keys described by the schema, in sorted order.
// Optional keys are returned without their trailing "?".
func (s *Schema) Keys() []string {
	keys := make([]string, 0, len(s.rules))
	for k := range s.rules {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func describe(pattern string) string {
	if pattern == "" {
		return "no value"
	}
	return pattern
}

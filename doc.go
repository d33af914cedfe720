// Package prop implements parsing and serializing of properties documents.
//
// A properties document is a flat list of key/value pairs, one per line, in
// the style of Java .properties files:
//
//	# a basic properties document
//	! both # and ! start a comment
//	name=Ada
//	role: engineer
//	retired=
//
// Each line is split at the first = or :, and a single space after the
// separator is dropped. Whitespace inside a key is ignored, so "role : x"
// has the key "role". Comments must be on a line of their own; blank lines
// are ignored. There is no quoting, escaping, or nesting: a value runs to the
// end of the line. Any of \n, \r or \t ends a line.
//
// Like the builtin json package, prop can automatically convert between Go
// types and documents. For example, you could parse the above document into
// a struct defined in Go as:
//
//	type Person struct {
//	  Name    string  `prop:"name"`
//	  Role    string  `prop:"role"`
//	  Retired *string `prop:"retired"`
//	}
//
//	person := Person{}
//	prop.Unmarshal(data, &person)
//
// An empty value, like retired above, decodes to nil for pointers and is an
// error for strings and numbers.
//
// Since the format is flat, the top-level value must be a struct or a map,
// and every field must be a scalar: a string, bool, integer, float, pointer
// to one of those, a type implementing [encoding.TextMarshaler] and
// [encoding.TextUnmarshaler], or an [Enum]. Slices, arrays, []byte, and
// nested structs or maps always return an error rather than being
// flattened.
package prop

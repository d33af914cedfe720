package prop

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"unicode/utf8"
)

// Unmarshal updates the value v with the data from the properties document.
// v must be a non-nil pointer, usually to a struct or a map.
//
// For struct fields, the key is looked up in a `prop:"name"` tag, then in a
// `json:"name"` tag, and finally matched against the field name or its
// snake_case version. Keys that match no field are ignored. A field tagged
// `prop:"name,required"` must be present in the document.
//
// Scalars are parsed with the [strconv] package, unless the type implements
// [encoding.TextUnmarshaler] or [Enum]. An empty value decodes to nil for
// pointer fields, and is an error for strings and numbers.
//
// Slices, arrays, []byte, nested structs and nested maps cannot be
// represented and always return an error.
func Unmarshal(data []byte, v any) error {
	return unmarshal(newCursor(data), v, false)
}

// UnmarshalString is like [Unmarshal] but reads from a string.
func UnmarshalString(s string, v any) error {
	return unmarshal(newStringCursor(s), v, false)
}

// A Decoder reads a properties document from an input stream.
type Decoder struct {
	r                     io.Reader
	disallowUnknownFields bool
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// DisallowUnknownFields causes Decode to return an error when a key does
// not match any field of the destination struct.
func (dec *Decoder) DisallowUnknownFields() {
	dec.disallowUnknownFields = true
}

// Decode reads all of the input and decodes it into v, as [Unmarshal].
func (dec *Decoder) Decode(v any) error {
	data, err := io.ReadAll(dec.r)
	if err != nil {
		return errorf("read: %w", err)
	}
	return unmarshal(newCursor(data), v, dec.disallowUnknownFields)
}

// decodeState owns the cursor for the length of one call.
type decodeState struct {
	scan                  scanner
	disallowUnknownFields bool
}

func unmarshal(cur *cursor, v any, disallowUnknownFields bool) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &Error{Msg: "invalid target, must be a non-nil pointer", Offset: -1}
	}
	d := &decodeState{
		scan:                  scanner{cur: cur},
		disallowUnknownFields: disallowUnknownFields,
	}
	if err := d.document(rv.Elem()); err != nil {
		return d.locate(err, d.scan.start)
	}
	return d.end()
}

// locate attaches the position of the current token to err.
func (d *decodeState) locate(err error, offset int) error {
	var e *Error
	if !errors.As(err, &e) {
		e = &Error{Msg: err.Error(), err: err, Offset: -1}
	}
	if e.Offset < 0 {
		e.Offset = offset
		e.Lno = d.scan.cur.lno(offset)
	}
	return e
}

// end checks that the whole document was consumed.
func (d *decodeState) end() error {
	if _, ok := d.scan.cur.peek(); ok {
		return d.locate(errorf("unexpected trailing data"), d.scan.cur.offset())
	}
	return nil
}

// document decodes the top-level value. Maps and structs read entries;
// anything else is decoded from the (empty) current token.
func (d *decodeState) document(v reflect.Value) error {
	if _, ok := textUnmarshaler(v); ok {
		return d.scalar(v)
	}
	switch shapeOf(v.Type()) {
	case shapeMap:
		return d.mapEntries(v)
	case shapeStruct:
		return d.structEntries(v)
	default:
		return d.scalar(v)
	}
}

func (d *decodeState) mapEntries(v reflect.Value) error {
	t := v.Type()
	if !decodable(reflect.New(t.Key()).Elem()) {
		return errorf("invalid key type %s", t.Key())
	}
	if elem := reflect.New(t.Elem()).Elem(); !decodable(elem) {
		return unsupportedShape(t.Elem())
	}

	for d.scan.extractKey() {
		key := reflect.New(t.Key()).Elem()
		if err := d.scalar(key); err != nil {
			return errorf("invalid key: %w", err)
		}
		d.scan.extractValue()
		elem := reflect.New(t.Elem()).Elem()
		if err := d.scalar(elem); err != nil {
			return err
		}
		if v.IsNil() {
			v.Set(reflect.MakeMap(t))
		}
		v.SetMapIndex(key, elem)
	}
	return nil
}

func (d *decodeState) structEntries(v reflect.Value) error {
	fields := cachedFields(v.Type())
	for _, f := range fields.list {
		if fv := v.Field(f.index); !decodable(fv) {
			return unsupportedShape(fv.Type())
		}
	}

	var seen []bool
	for d.scan.extractKey() {
		i, ok := fields.byName[string(d.scan.buf)]
		if !ok {
			if d.disallowUnknownFields {
				return errorf("unknown field %q", d.scan.token())
			}
			d.scan.extractValue()
			continue
		}
		d.scan.extractValue()
		f := fields.list[i]
		if err := d.scalar(v.Field(f.index)); err != nil {
			return err
		}
		if seen == nil {
			seen = make([]bool, len(fields.list))
		}
		seen[i] = true
	}

	for i, f := range fields.list {
		if f.required && (seen == nil || !seen[i]) {
			return d.locate(errorf("missing field %q", f.name), d.scan.cur.offset())
		}
	}
	return nil
}

// decodable reports whether v can be decoded from a single token. Pointers
// are judged by what they point to.
func decodable(v reflect.Value) bool {
	for v.Kind() == reflect.Pointer {
		v = reflect.New(v.Type().Elem()).Elem()
	}
	if _, ok := textUnmarshaler(v); ok {
		return true
	}
	switch shapeOf(v.Type()) {
	case shapeMap, shapeStruct, shapeBytes, shapeSeq, shapeTuple, shapeUnsupported:
		return false
	}
	return true
}

// scalar decodes the current token into v. A token that is not valid UTF-8
// is treated as empty, except by UnmarshalText which sees the raw bytes.
func (d *decodeState) scalar(v reflect.Value) error {
	text := ""
	if utf8.Valid(d.scan.buf) {
		text = d.scan.token()
	}
	t := v.Type()

	if isEnum(t) {
		return decodeEnum(text, v)
	}
	if u, ok := textUnmarshaler(v); ok {
		if err := u.UnmarshalText(d.scan.buf); err != nil {
			return errorf("%w", err)
		}
		return nil
	}

	switch shapeOf(t) {
	case shapeBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return invalidValue(text, "boolean")
		}
		v.SetBool(b)
	case shapeInt:
		i, err := strconv.ParseInt(text, 10, t.Bits())
		if err != nil {
			return invalidValue(text, "signed integer")
		}
		v.SetInt(i)
	case shapeUint:
		u, err := strconv.ParseUint(text, 10, t.Bits())
		if err != nil {
			return invalidValue(text, "unsigned integer")
		}
		v.SetUint(u)
	case shapeFloat:
		f, err := strconv.ParseFloat(text, t.Bits())
		if err != nil {
			return invalidValue(text, "float")
		}
		v.SetFloat(f)
	case shapeString:
		if text == "" {
			return errorf("invalid length 0, expected length > 0")
		}
		v.SetString(text)
	case shapeOption:
		if text == "" {
			v.SetZero()
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
		return d.scalar(v.Elem())
	case shapeUnit:
		if text != "" {
			return invalidType(fmt.Sprintf("string %q", text), "unit")
		}
	case shapeAny:
		if text == "" {
			v.SetZero()
			return nil
		}
		v.Set(reflect.ValueOf(text))
	default:
		return unsupportedShape(t)
	}
	return nil
}

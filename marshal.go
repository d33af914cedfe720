package prop

import (
	"bytes"
	"io"
	"reflect"
	"slices"
	"strings"
)

// Marshal converts a go value to a properties document.
//
// Structs are written one field per line in declaration order, maps one
// entry per line sorted by key. Field names follow the same rules as
// [Unmarshal]; fields tagged `omitempty` are skipped when they hold the zero
// value. A nil pointer is written as an empty value.
//
// It returns an error if the value cannot be represented (for example if a
// field is a slice or a nested struct).
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalString is like [Marshal] but returns a string.
func MarshalString(v any) (string, error) {
	var buf strings.Builder
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// An Encoder writes properties documents to an output stream.
type Encoder struct {
	w         io.Writer
	formatter Formatter
}

// NewEncoder returns a new encoder that writes to w using a
// [CompactFormatter].
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, formatter: CompactFormatter{}}
}

// SetFormatter changes how scalars and delimiters are rendered.
func (enc *Encoder) SetFormatter(f Formatter) {
	enc.formatter = f
}

// Encode writes v to the stream. No newline is written after the last
// entry.
func (enc *Encoder) Encode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.IsValid() && rv.Kind() != reflect.Pointer {
		// make pointer-receiver MarshalText methods reachable
		addr := reflect.New(rv.Type()).Elem()
		addr.Set(rv)
		rv = addr
	}
	e := &encodeState{w: enc.w, f: enc.formatter}
	return e.document(rv)
}

type encodeState struct {
	w io.Writer
	f Formatter
}

func (e *encodeState) check(err error) error {
	if err != nil {
		return errorf("%w", err)
	}
	return nil
}

func (e *encodeState) document(v reflect.Value) error {
	if !v.IsValid() {
		return e.check(e.f.WriteNull(e.w))
	}
	if _, ok := textMarshaler(v); ok || isEnum(v.Type()) {
		return e.scalar(v)
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return e.check(e.f.WriteNull(e.w))
		}
		return e.document(v.Elem())
	}
	switch shapeOf(v.Type()) {
	case shapeMap:
		return e.mapEntries(v)
	case shapeStruct:
		return e.structEntries(v)
	default:
		return e.scalar(v)
	}
}

// compound writes the entries of one map or struct.
type compound struct {
	e     *encodeState
	first bool
}

func (c *compound) key(name string) error {
	if !c.first {
		if err := c.e.f.BeginKey(c.e.w); err != nil {
			return c.e.check(err)
		}
	}
	c.first = false
	if err := c.e.f.WriteString(c.e.w, name); err != nil {
		return c.e.check(err)
	}
	return c.e.check(c.e.f.EndKey(c.e.w))
}

func (c *compound) value(v reflect.Value) error {
	if err := c.e.f.BeginValue(c.e.w); err != nil {
		return c.e.check(err)
	}
	if err := c.e.scalar(v); err != nil {
		return err
	}
	return c.e.check(c.e.f.EndValue(c.e.w))
}

func (e *encodeState) structEntries(v reflect.Value) error {
	fields := cachedFields(v.Type()).list
	for _, f := range fields {
		if t := v.Type().Field(f.index).Type; !encodable(t) {
			return unsupportedShape(t)
		}
	}

	c := &compound{e: e, first: true}
	for _, f := range fields {
		fv := v.Field(f.index)
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		if err := c.key(f.name); err != nil {
			return err
		}
		if err := c.value(fv); err != nil {
			return err
		}
	}
	return nil
}

func (e *encodeState) mapEntries(v reflect.Value) error {
	if t := v.Type().Elem(); !encodable(t) {
		return unsupportedShape(t)
	}

	type entry struct {
		key   string
		value reflect.Value
	}
	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k, err := mapKey(iter.Key())
		if err != nil {
			return err
		}
		entries = append(entries, entry{k, iter.Value()})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.key, b.key)
	})

	c := &compound{e: e, first: true}
	for _, entry := range entries {
		if err := c.key(entry.key); err != nil {
			return err
		}
		if err := c.value(entry.value); err != nil {
			return err
		}
	}
	return nil
}

// encodable reports whether values of type t can be written in value
// position. Interfaces are checked once their dynamic type is known.
func encodable(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.Interface {
		return true
	}
	if t.Implements(textMarshalerType) || reflect.PointerTo(t).Implements(textMarshalerType) {
		return true
	}
	switch shapeOf(t) {
	case shapeMap, shapeStruct, shapeBytes, shapeSeq, shapeTuple, shapeUnsupported:
		return false
	}
	return true
}

// mapKey renders a map key. Only strings, enums and types that marshal
// themselves as text can be keys.
func mapKey(k reflect.Value) (string, error) {
	if isEnum(k.Type()) {
		return encodeEnum(k)
	}
	if m, ok := textMarshaler(k); ok {
		text, err := m.MarshalText()
		if err != nil {
			return "", errorf("%w", err)
		}
		return string(text), nil
	}
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	return "", errorf("key must be a string, got %s", k.Type())
}

// scalar writes v in value position.
func (e *encodeState) scalar(v reflect.Value) error {
	t := v.Type()
	if isEnum(t) {
		name, err := encodeEnum(v)
		if err != nil {
			return err
		}
		return e.check(e.f.WriteString(e.w, name))
	}
	if m, ok := textMarshaler(v); ok {
		text, err := m.MarshalText()
		if err != nil {
			return errorf("%w", err)
		}
		return e.check(e.f.WriteString(e.w, string(text)))
	}

	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return e.check(e.f.WriteNull(e.w))
		}
		return e.scalar(v.Elem())
	}

	switch shapeOf(t) {
	case shapeBool:
		return e.check(e.f.WriteBool(e.w, v.Bool()))
	case shapeInt:
		return e.check(e.f.WriteInt(e.w, v.Int(), t.Bits()))
	case shapeUint:
		return e.check(e.f.WriteUint(e.w, v.Uint(), t.Bits()))
	case shapeFloat:
		return e.check(e.f.WriteFloat(e.w, v.Float(), t.Bits()))
	case shapeString:
		return e.check(e.f.WriteString(e.w, v.String()))
	case shapeOption:
		if v.IsNil() {
			return e.check(e.f.WriteNull(e.w))
		}
		return e.scalar(v.Elem())
	case shapeUnit:
		return e.check(e.f.WriteNull(e.w))
	default:
		return unsupportedShape(t)
	}
}

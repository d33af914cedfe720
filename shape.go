package prop

import (
	"encoding"
	"reflect"
	"strings"
	"sync"
	"unicode"
)

// shape is what the codec needs to know about a Go type.
type shape int8

const (
	shapeUnsupported shape = iota
	shapeBool
	shapeInt
	shapeUint
	shapeFloat
	shapeString
	shapeEnum
	shapeOption
	shapeUnit
	shapeAny
	shapeMap
	shapeStruct
	shapeBytes
	shapeSeq
	shapeTuple
)

// shapeOf classifies t. Text marshalling is checked separately by the
// encoder and decoder since a type may only support one direction.
func shapeOf(t reflect.Type) shape {
	if isEnum(t) {
		return shapeEnum
	}
	switch t.Kind() {
	case reflect.Bool:
		return shapeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return shapeInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return shapeUint
	case reflect.Float32, reflect.Float64:
		return shapeFloat
	case reflect.String:
		return shapeString
	case reflect.Pointer:
		return shapeOption
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return shapeAny
		}
	case reflect.Map:
		return shapeMap
	case reflect.Struct:
		if t.NumField() == 0 {
			return shapeUnit
		}
		return shapeStruct
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return shapeBytes
		}
		return shapeSeq
	case reflect.Array:
		return shapeTuple
	}
	return shapeUnsupported
}

// unsupportedShape returns the error for types that have no representation
// in a properties document.
func unsupportedShape(t reflect.Type) *Error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch shapeOf(t) {
	case shapeMap:
		return unsupported("nested map " + t.String())
	case shapeStruct:
		return unsupported("nested struct " + t.String())
	case shapeBytes:
		return unsupported("bytes " + t.String())
	case shapeSeq:
		return unsupported("sequence " + t.String())
	case shapeTuple:
		return unsupported("tuple " + t.String())
	}
	return unsupported("type " + t.String())
}

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

func textUnmarshaler(v reflect.Value) (encoding.TextUnmarshaler, bool) {
	if v.Kind() == reflect.Pointer || !v.CanAddr() {
		return nil, false
	}
	if !reflect.PointerTo(v.Type()).Implements(textUnmarshalerType) {
		return nil, false
	}
	return v.Addr().Interface().(encoding.TextUnmarshaler), true
}

func textMarshaler(v reflect.Value) (encoding.TextMarshaler, bool) {
	if v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		return nil, false
	}
	if v.Type().Implements(textMarshalerType) {
		return v.Interface().(encoding.TextMarshaler), true
	}
	if v.CanAddr() && reflect.PointerTo(v.Type()).Implements(textMarshalerType) {
		return v.Addr().Interface().(encoding.TextMarshaler), true
	}
	return nil, false
}

type field struct {
	name      string
	index     int
	omitEmpty bool
	required  bool
}

type structFields struct {
	list   []field
	byName map[string]int
}

var fieldCache sync.Map // map[reflect.Type]*structFields

// cachedFields returns the field table of the struct type t.
func cachedFields(t reflect.Type) *structFields {
	if f, ok := fieldCache.Load(t); ok {
		return f.(*structFields)
	}
	f, _ := fieldCache.LoadOrStore(t, typeFields(t))
	return f.(*structFields)
}

// typeFields looks for the name in a `prop:"name"` tag, then in a
// `json:"name"` tag, and finally uses the field name (which can also be
// written in snake_case when decoding).
func typeFields(t reflect.Type) *structFields {
	fields := &structFields{byName: map[string]int{}}
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, ok := sf.Tag.Lookup("prop")
		if !ok {
			tag, ok = sf.Tag.Lookup("json")
		}
		if tag == "-" {
			continue
		}
		name, options, _ := strings.Cut(tag, ",")
		f := field{name: name, index: i}
		for _, opt := range strings.Split(options, ",") {
			switch opt {
			case "omitempty":
				f.omitEmpty = true
			case "required":
				f.required = true
			}
		}

		pos := len(fields.list)
		if name == "" {
			f.name = sf.Name
			if snake := toSnakeCase(sf.Name); snake != sf.Name {
				if _, taken := fields.byName[snake]; !taken {
					fields.byName[snake] = pos
				}
			}
		}
		fields.byName[f.name] = pos
		fields.list = append(fields.list, f)
	}
	return fields
}

func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}

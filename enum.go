package prop

import (
	"reflect"
	"strconv"
	"strings"
)

// VariantKind describes what data an enum variant carries.
type VariantKind int8

const (
	// UnitVariant carries no data and is identified only by its name.
	UnitVariant VariantKind = iota
	NewtypeVariant
	TupleVariant
	StructVariant
)

func (k VariantKind) String() string {
	switch k {
	case UnitVariant:
		return "unit variant"
	case NewtypeVariant:
		return "newtype variant"
	case TupleVariant:
		return "tuple variant"
	case StructVariant:
		return "struct variant"
	default:
		return "VariantKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// A Variant is one case of an [Enum].
type Variant struct {
	Name string
	Kind VariantKind
}

// Enum is implemented by types that hold one of a fixed set of named
// variants. The underlying kind of the type must be a string (holding the
// variant name) or an integer (holding the index into Variants).
//
// Only unit variants can be represented in a properties document; the other
// kinds are accepted in the table so that decoding them can report a clear
// error instead of "unknown variant".
//
//	type Level string
//
//	func (Level) Variants() []prop.Variant {
//	  return []prop.Variant{{Name: "debug"}, {Name: "info"}}
//	}
type Enum interface {
	Variants() []Variant
}

var enumType = reflect.TypeFor[Enum]()

func isEnumKind(k reflect.Kind) bool {
	switch k {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isEnum(t reflect.Type) bool {
	return isEnumKind(t.Kind()) && (t.Implements(enumType) || reflect.PointerTo(t).Implements(enumType))
}

func variantsOf(t reflect.Type) []Variant {
	if t.Implements(enumType) {
		return reflect.Zero(t).Interface().(Enum).Variants()
	}
	return reflect.New(t).Interface().(Enum).Variants()
}

func quoteNames(variants []Variant) string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = strconv.Quote(v.Name)
	}
	return strings.Join(names, ", ")
}

// decodeEnum stores the variant named text into v.
func decodeEnum(text string, v reflect.Value) error {
	variants := variantsOf(v.Type())
	for i, variant := range variants {
		if variant.Name != text {
			continue
		}
		if variant.Kind != UnitVariant {
			return invalidType("unit variant", variant.Kind.String())
		}
		switch v.Kind() {
		case reflect.String:
			v.SetString(text)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if v.OverflowInt(int64(i)) {
				return errorf("variant %q has index %d, which overflows %s", text, i, v.Type())
			}
			v.SetInt(int64(i))
		default:
			if v.OverflowUint(uint64(i)) {
				return errorf("variant %q has index %d, which overflows %s", text, i, v.Type())
			}
			v.SetUint(uint64(i))
		}
		return nil
	}
	return errorf("unknown variant %q, expected one of %s", text, quoteNames(variants))
}

// encodeEnum returns the name of the variant held by v.
func encodeEnum(v reflect.Value) (string, error) {
	variants := variantsOf(v.Type())
	var variant *Variant
	switch v.Kind() {
	case reflect.String:
		for i := range variants {
			if variants[i].Name == v.String() {
				variant = &variants[i]
				break
			}
		}
		if variant == nil {
			return "", errorf("unknown variant %q, expected one of %s", v.String(), quoteNames(variants))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i := v.Int(); i >= 0 && i < int64(len(variants)) {
			variant = &variants[i]
		} else {
			return "", errorf("unknown variant index %d of %s", i, v.Type())
		}
	default:
		if i := v.Uint(); i < uint64(len(variants)) {
			variant = &variants[i]
		} else {
			return "", errorf("unknown variant index %d of %s", i, v.Type())
		}
	}
	if variant.Kind != UnitVariant {
		return "", unsupported(variant.Kind.String())
	}
	return variant.Name, nil
}

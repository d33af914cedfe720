package prop

import (
	"io"
	"strconv"
)

// A Formatter controls how an [Encoder] renders scalars and the delimiters
// between keys and values. The encoder decides what is written; the
// formatter only decides how it looks.
//
// Implementations will usually embed [CompactFormatter] and override the
// methods they care about.
type Formatter interface {
	// WriteNull writes an absent value (a nil pointer or a unit).
	WriteNull(w io.Writer) error
	WriteBool(w io.Writer, v bool) error
	// WriteInt writes a signed integer of the given width in bits.
	WriteInt(w io.Writer, v int64, bitSize int) error
	// WriteUint writes an unsigned integer of the given width in bits.
	WriteUint(w io.Writer, v uint64, bitSize int) error
	// WriteFloat writes a float32 or float64, according to bitSize.
	WriteFloat(w io.Writer, v float64, bitSize int) error
	WriteString(w io.Writer, v string) error

	// BeginKey is called before every key except the first.
	BeginKey(w io.Writer) error
	// EndKey is called after every key.
	EndKey(w io.Writer) error
	BeginValue(w io.Writer) error
	EndValue(w io.Writer) error
}

// CompactFormatter is the default [Formatter]. It writes one key=value pair
// per line with no padding, and writes strings as-is.
type CompactFormatter struct{}

var _ Formatter = CompactFormatter{}

func (CompactFormatter) WriteNull(w io.Writer) error {
	return nil
}

func (CompactFormatter) WriteBool(w io.Writer, v bool) error {
	_, err := io.WriteString(w, strconv.FormatBool(v))
	return err
}

func (CompactFormatter) WriteInt(w io.Writer, v int64, bitSize int) error {
	var buf [20]byte
	_, err := w.Write(strconv.AppendInt(buf[:0], v, 10))
	return err
}

func (CompactFormatter) WriteUint(w io.Writer, v uint64, bitSize int) error {
	var buf [20]byte
	_, err := w.Write(strconv.AppendUint(buf[:0], v, 10))
	return err
}

// WriteFloat writes the shortest representation that parses back to v.
func (CompactFormatter) WriteFloat(w io.Writer, v float64, bitSize int) error {
	var buf [32]byte
	_, err := w.Write(strconv.AppendFloat(buf[:0], v, 'g', -1, bitSize))
	return err
}

func (CompactFormatter) WriteString(w io.Writer, v string) error {
	_, err := io.WriteString(w, v)
	return err
}

func (CompactFormatter) BeginKey(w io.Writer) error {
	_, err := io.WriteString(w, "\n")
	return err
}

func (CompactFormatter) EndKey(w io.Writer) error {
	_, err := io.WriteString(w, "=")
	return err
}

func (CompactFormatter) BeginValue(w io.Writer) error {
	return nil
}

func (CompactFormatter) EndValue(w io.Writer) error {
	return nil
}

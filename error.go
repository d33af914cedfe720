package prop

import (
	"fmt"
	"strconv"
)

// An Error describes why a document could not be decoded or a value could
// not be encoded. All failures in this package are reported as *Error; the
// kind of failure is only distinguished by the message.
type Error struct {
	Msg string
	// Offset is the byte offset in the document at which decoding stopped,
	// or -1 if the error did not come from a document.
	Offset int
	// Lno is the 1-based line of Offset, or 0 if unknown.
	Lno int

	err error
}

func (e *Error) Error() string {
	if e.Lno > 0 {
		return strconv.Itoa(e.Lno) + ": " + e.Msg
	}
	return e.Msg
}

// Unwrap returns the underlying error, if any (for example an error returned
// by UnmarshalText or by the io.Writer).
func (e *Error) Unwrap() error {
	return e.err
}

func errorf(format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{Msg: err.Error(), Offset: -1, err: unwrapOnce(err)}
}

func unwrapOnce(err error) error {
	if u, ok := err.(interface{ Unwrap() error }); ok {
		return u.Unwrap()
	}
	return nil
}

func invalidValue(text, expected string) *Error {
	return errorf("invalid value: string %q, expected %s", text, expected)
}

func invalidType(unexpected, expected string) *Error {
	return errorf("invalid type: %s, expected %s", unexpected, expected)
}

func unsupported(what string) *Error {
	return errorf("unsupported %s", what)
}

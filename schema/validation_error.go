package schema

import (
	"fmt"
)

// A ValidationError represents a single validation error.
// Use .Error() to get the message, and use .Lno() to get the line number.
type ValidationError struct {
	msg    string
	key    string
	lno    int
	offset int
}

// Lno returns the 1-indexed line number on which the error occurred.
// Missing keys are reported on the last line of the document.
func (ve *ValidationError) Lno() int {
	if ve.lno == 0 {
		return 1
	}
	return ve.lno
}

// Offset returns the byte offset of the offending key, or -1 for a missing
// key.
func (ve *ValidationError) Offset() int {
	return ve.offset
}

// Key returns the key the error is about.
func (ve *ValidationError) Key() string {
	return ve.key
}

// Msg returns a human-readable description of the problem suitable for
// showing to end-users.
func (ve *ValidationError) Msg() string {
	return ve.msg
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return fmt.Sprintf("%d: %s", ve.Lno(), ve.Msg())
}

// Package process decodes the per-process status record of /proc/[pid]/stat
package process

import (
	"errors"
	"fmt"
)

// ErrMalformed matches every decoding error returned by this package.
var ErrMalformed = errors.New("malformed stat line")

// FieldCountError is returned when a status line has fewer fields than required.
type FieldCountError struct {
	Got  int
	Want int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("stat line has %d fields, want at least %d", e.Got, e.Want)
}

func (e *FieldCountError) Is(target error) bool { return target == ErrMalformed }

// IntegerFormatError is returned when a numeric field failed to parse.
// Field is the 0-indexed position in the status line.
type IntegerFormatError struct {
	Field int
	Name  string
	Token string
	Err   error
}

func (e *IntegerFormatError) Error() string {
	return fmt.Sprintf("field %d (%s): bad integer %q: %v", e.Field, e.Name, e.Token, e.Err)
}

func (e *IntegerFormatError) Unwrap() error { return e.Err }
func (e *IntegerFormatError) Is(target error) bool { return target == ErrMalformed }

// UnknownStateError carries a state code that is not one of "RDSTZtXI".
type UnknownStateError struct {
	Token string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("unknown process state %q", e.Token)
}

func (e *UnknownStateError) Is(target error) bool { return target == ErrMalformed }

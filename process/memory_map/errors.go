package memory_map

import (
	"errors"
	"fmt"
)

// ErrMalformed matches every decoding error returned by this package.
var ErrMalformed = errors.New("malformed maps entry")

// FieldCountError is returned when a maps line has fewer fields than required.
type FieldCountError struct {
	Got  int
	Want int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("maps line has %d fields, want at least %d", e.Got, e.Want)
}

func (e *FieldCountError) Is(target error) bool { return target == ErrMalformed }

// AddressFormatError is returned when the address range is not two hex numbers joined by '-'.
type AddressFormatError struct {
	Token string
	Err   error
}

func (e *AddressFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bad address range %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("bad address range %q", e.Token)
}

func (e *AddressFormatError) Unwrap() error { return e.Err }
func (e *AddressFormatError) Is(target error) bool { return target == ErrMalformed }

// OffsetFormatError is returned when the file offset is not a hex number.
type OffsetFormatError struct {
	Token string
	Err   error
}

func (e *OffsetFormatError) Error() string {
	return fmt.Sprintf("bad offset %q: %v", e.Token, e.Err)
}

func (e *OffsetFormatError) Unwrap() error { return e.Err }
func (e *OffsetFormatError) Is(target error) bool { return target == ErrMalformed }

// DeviceFormatError is returned when a device is not "major:minor" in decimal.
type DeviceFormatError struct {
	Token string
	Err   error
}

func (e *DeviceFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bad device %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("bad device %q", e.Token)
}

func (e *DeviceFormatError) Unwrap() error { return e.Err }
func (e *DeviceFormatError) Is(target error) bool { return target == ErrMalformed }

// InodeFormatError is returned when the inode is not a decimal number.
type InodeFormatError struct {
	Token string
	Err   error
}

func (e *InodeFormatError) Error() string {
	return fmt.Sprintf("bad inode %q: %v", e.Token, e.Err)
}

func (e *InodeFormatError) Unwrap() error { return e.Err }
func (e *InodeFormatError) Is(target error) bool { return target == ErrMalformed }

// PermissionLengthError is returned when a permission string is not exactly 4 characters.
type PermissionLengthError struct {
	Token string
}

func (e *PermissionLengthError) Error() string {
	return fmt.Sprintf("permission string %q must be 4 characters", e.Token)
}

func (e *PermissionLengthError) Is(target error) bool { return target == ErrMalformed }

// UnknownPermissionError carries a permission character outside "rwx-ps".
type UnknownPermissionError struct {
	Char byte
}

func (e *UnknownPermissionError) Error() string {
	return fmt.Sprintf("unknown segment permission %q", e.Char)
}

func (e *UnknownPermissionError) Is(target error) bool { return target == ErrMalformed }

// UnknownSegmentTagError carries a bracketed pathname tag that has no SegmentType.
type UnknownSegmentTagError struct {
	Tag string
}

func (e *UnknownSegmentTagError) Error() string {
	return fmt.Sprintf("unknown segment type: %s", e.Tag)
}

func (e *UnknownSegmentTagError) Is(target error) bool { return target == ErrMalformed }

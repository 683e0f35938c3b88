package memory_map

import (
	"fmt"
	"strconv"
	"strings"
)

// Device identifies the block device backing a mapping by its major:minor pair.
// See https://linux-kernel-labs.github.io/refs/heads/master/labs/device_model.html#classes
type Device struct {
	Major uint32
	Minor uint32
}

// NewDevice creates a new device
func NewDevice(major, minor uint32) Device {
	return Device{Major: major, Minor: minor}
}

// ParseDevice parses the "major:minor" form used by /proc/[pid]/maps.
// Both halves are decimal.
func ParseDevice(s string) (Device, error) {
	majorText, minorText, ok := strings.Cut(s, ":")
	if !ok {
		return Device{}, &DeviceFormatError{Token: s}
	}

	major, err := strconv.ParseUint(majorText, 10, 32)
	if err != nil {
		return Device{}, &DeviceFormatError{Token: s, Err: err}
	}

	minor, err := strconv.ParseUint(minorText, 10, 32)
	if err != nil {
		return Device{}, &DeviceFormatError{Token: s, Err: err}
	}

	return Device{Major: uint32(major), Minor: uint32(minor)}, nil
}

// String returns the "major:minor" form, which ParseDevice accepts
func (d Device) String() string {
	return fmt.Sprintf("%d:%d", d.Major, d.Minor)
}

// IsZero reports whether the mapping has no backing device (00:00)
func (d Device) IsZero() bool {
	return d.Major == 0 && d.Minor == 0
}

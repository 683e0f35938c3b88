//go:build linux

package memory_map

import (
	"golang.org/x/sys/unix"
)

// Rdev returns the device number in the encoding used by stat(2)
func (d Device) Rdev() uint64 {
	return unix.Mkdev(d.Major, d.Minor)
}

// DeviceFromRdev splits a stat(2) device number into its major and minor parts
func DeviceFromRdev(rdev uint64) Device {
	return Device{Major: unix.Major(rdev), Minor: unix.Minor(rdev)}
}

// Package memory_map decodes the lines of /proc/[pid]/maps into typed segments
package memory_map

import (
	"sort"
)

// SortSegments orders segments by start address, which FindSegment requires.
// The kernel already prints maps in this order.
func SortSegments(segments []Segment) {
	sort.Slice(segments, func(i, j int) bool {
		return segments[i].Start < segments[j].Start
	})
}

// FindSegment returns the segment containing addr, or nil.
// segments must be sorted by start address.
func FindSegment(addr uint64, segments []Segment) *Segment {
	i := sort.Search(len(segments), func(i int) bool {
		return segments[i].End > addr
	})
	if i < len(segments) && segments[i].Start <= addr {
		return &segments[i]
	}

	return nil
}

// IsValidAddress checks if an address is within a readable mapping
func IsValidAddress(addr uint64, segments []Segment) bool {
	if seg := FindSegment(addr, segments); seg != nil {
		return seg.Permissions.CanRead()
	}
	return false
}

// FilterSegments returns the segments for which keep returns true
func FilterSegments(segments []Segment, keep func(Segment) bool) []Segment {
	var out []Segment
	for _, seg := range segments {
		if keep(seg) {
			out = append(out, seg)
		}
	}
	return out
}

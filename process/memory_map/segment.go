package memory_map

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// segmentFieldCount is the number of columns before the optional pathname
const segmentFieldCount = 5

// Segment is one mapped region in a process's virtual address space,
// decoded from a line of /proc/[pid]/maps.
type Segment struct {
	Start       uint64      // Start address
	End         uint64      // End address (exclusive)
	Permissions Permissions // e.g. "r-xp"
	Offset      uint64      // Offset into the file/whatever
	Device      Device      // Device (major:minor)
	Inode       uint64      // Inode on that device, 0 when unbacked
	Pathname    SegmentType // Usually the file that is backing the mapping
}

// ParseSegment decodes one line of /proc/[pid]/maps, e.g.
//
//	7ffea490d000-7ffea4a0f000 rw-p 00000000 00:00 0          [stack]
//
// The pathname is the rest of the line after the inode with the column
// padding removed, so paths containing spaces are kept whole.
func ParseSegment(line string) (Segment, error) {
	fields, rest := splitFields(line, segmentFieldCount)
	if len(fields) < segmentFieldCount {
		return Segment{}, &FieldCountError{Got: len(fields), Want: segmentFieldCount}
	}

	start, end, err := parseAddressRange(fields[0])
	if err != nil {
		return Segment{}, err
	}

	perms, err := ParsePermissions(fields[1])
	if err != nil {
		return Segment{}, err
	}

	offset, err := strconv.ParseUint(fields[2], 16, 64)
	if err != nil {
		return Segment{}, &OffsetFormatError{Token: fields[2], Err: err}
	}

	device, err := ParseDevice(fields[3])
	if err != nil {
		return Segment{}, err
	}

	inode, err := strconv.ParseUint(fields[4], 10, 64)
	if err != nil {
		return Segment{}, &InodeFormatError{Token: fields[4], Err: err}
	}

	pathname, err := ParseSegmentType(strings.TrimSpace(rest))
	if err != nil {
		return Segment{}, err
	}

	return Segment{
		Start:       start,
		End:         end,
		Permissions: perms,
		Offset:      offset,
		Device:      device,
		Inode:       inode,
		Pathname:    pathname,
	}, nil
}

func parseAddressRange(s string) (uint64, uint64, error) {
	startText, endText, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, &AddressFormatError{Token: s}
	}

	start, err := strconv.ParseUint(startText, 16, 64)
	if err != nil {
		return 0, 0, &AddressFormatError{Token: s, Err: err}
	}

	end, err := strconv.ParseUint(endText, 16, 64)
	if err != nil {
		return 0, 0, &AddressFormatError{Token: s, Err: err}
	}

	return start, end, nil
}

// splitFields returns up to n whitespace separated fields and whatever
// follows the last one, untouched.
func splitFields(line string, n int) ([]string, string) {
	fields := make([]string, 0, n)
	rest := line
	for len(fields) < n {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			break
		}
		i := strings.IndexFunc(rest, unicode.IsSpace)
		if i < 0 {
			fields = append(fields, rest)
			rest = ""
			break
		}
		fields = append(fields, rest[:i])
		rest = rest[i:]
	}
	return fields, rest
}

// String returns a fixed width dump of the segment for logs.
// It is not the /proc format.
func (s Segment) String() string {
	return fmt.Sprintf("%016x-%016x %s %016x %s %d %s",
		s.Start, s.End, s.Permissions, s.Offset, s.Device, s.Inode, s.Pathname)
}

// Size returns the length of the mapping in bytes
func (s Segment) Size() uint64 {
	return s.End - s.Start
}

// Contains reports whether addr falls inside the mapping
func (s Segment) Contains(addr uint64) bool {
	return addr >= s.Start && addr < s.End
}

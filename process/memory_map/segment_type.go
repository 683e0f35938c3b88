package memory_map

import (
	"fmt"
	"strings"
)

// SegmentKind is the variant of a SegmentType
type SegmentKind int

const (
	// Unbacked is an anonymous mapping for which the kernel printed no pathname
	Unbacked SegmentKind = iota
	// Stack is the initial process's (also known as the main thread's) stack
	Stack
	// SharedLibrary is the virtual dynamically linked shared object
	SharedLibrary
	// Data is a data segment, see DataSegment
	Data
	// Code is a mapping backed by a file, usually an executable or a library
	Code
	// Anonymous is a named private anonymous mapping
	Anonymous
	// SharedAnonymous is a named shared anonymous mapping
	SharedAnonymous
	// VirtualVariables is the kernel's vvar page
	VirtualVariables
	// VirtualSyscall is the legacy vsyscall page
	VirtualSyscall
	// VirtualClock is the vDSO clock page split out of vvar on 6.x kernels
	VirtualClock
	// Uprobes is the execute-out-of-line area of uprobes
	Uprobes
)

var segmentKindNames = [...]string{
	Unbacked:         "Unbacked",
	Stack:            "Stack",
	SharedLibrary:    "SharedLibrary",
	Data:             "Data",
	Code:             "Code",
	Anonymous:        "Anonymous",
	SharedAnonymous:  "SharedAnonymous",
	VirtualVariables: "VirtualVariables",
	VirtualSyscall:   "VirtualSyscall",
	VirtualClock:     "VirtualClock",
	Uprobes:          "Uprobes",
}

func (k SegmentKind) String() string {
	if k >= 0 && int(k) < len(segmentKindNames) {
		return segmentKindNames[k]
	}
	return "SegmentKind(?)"
}

// MarshalText encodes the kind by name
func (k SegmentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText
func (k *SegmentKind) UnmarshalText(text []byte) error {
	for i, name := range segmentKindNames {
		if name == string(text) {
			*k = SegmentKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown segment kind %q", text)
}

// DataSegment is the type of a data segment
type DataSegment int

const (
	// Heap is the process's heap
	Heap DataSegment = iota
	Initialized
	Uninitialized
)

// SegmentType classifies the pathname column of a maps line.
// Data is only meaningful for the Data kind; Value holds the path for Code
// and the name for Anonymous and SharedAnonymous.
type SegmentType struct {
	Kind  SegmentKind
	Data  DataSegment
	Value string
}

func NewCodeSegment(path string) SegmentType {
	return SegmentType{Kind: Code, Value: path}
}

func NewDataSegment(data DataSegment) SegmentType {
	return SegmentType{Kind: Data, Data: data}
}

func NewAnonymousSegment(name string) SegmentType {
	return SegmentType{Kind: Anonymous, Value: name}
}

func NewSharedAnonymousSegment(name string) SegmentType {
	return SegmentType{Kind: SharedAnonymous, Value: name}
}

const (
	anonPrefix      = "[anon:"
	anonShmemPrefix = "[anon_shmem:"
)

var segmentTags = map[string]SegmentType{
	"[stack]":       {Kind: Stack},
	"[vdso]":        {Kind: SharedLibrary},
	"[heap]":        {Kind: Data, Data: Heap},
	"[vvar]":        {Kind: VirtualVariables},
	"[vsyscall]":    {Kind: VirtualSyscall},
	"[vvar_vclock]": {Kind: VirtualClock},
	"[uprobes]":     {Kind: Uprobes},
}

// ParseSegmentType classifies a maps pathname.
// An empty pathname is an unbacked mapping, bracketed tags map to their fixed
// kind and anything else is taken verbatim as a file path.
func ParseSegmentType(s string) (SegmentType, error) {
	switch {
	case s == "":
		return SegmentType{Kind: Unbacked}, nil
	case strings.HasPrefix(s, anonPrefix) && strings.HasSuffix(s, "]"):
		return NewAnonymousSegment(s[len(anonPrefix) : len(s)-1]), nil
	case strings.HasPrefix(s, anonShmemPrefix) && strings.HasSuffix(s, "]"):
		return NewSharedAnonymousSegment(s[len(anonShmemPrefix) : len(s)-1]), nil
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		if t, ok := segmentTags[s]; ok {
			return t, nil
		}
		return SegmentType{}, &UnknownSegmentTagError{Tag: s}
	default:
		return NewCodeSegment(s), nil
	}
}

// String returns the pathname as the kernel prints it.
// Initialized and Uninitialized data have no kernel form and print as [data] and [bss].
func (t SegmentType) String() string {
	switch t.Kind {
	case Stack:
		return "[stack]"
	case SharedLibrary:
		return "[vdso]"
	case VirtualVariables:
		return "[vvar]"
	case VirtualSyscall:
		return "[vsyscall]"
	case VirtualClock:
		return "[vvar_vclock]"
	case Uprobes:
		return "[uprobes]"
	case Data:
		switch t.Data {
		case Heap:
			return "[heap]"
		case Initialized:
			return "[data]"
		default:
			return "[bss]"
		}
	case Code:
		return t.Value
	case Anonymous:
		return anonPrefix + t.Value + "]"
	case SharedAnonymous:
		return anonShmemPrefix + t.Value + "]"
	default:
		return ""
	}
}

// IsFileBacked reports whether the mapping has a file path
func (t SegmentType) IsFileBacked() bool {
	return t.Kind == Code
}

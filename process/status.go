package process

import (
	"fmt"
	"strconv"
	"strings"

	"libinspector/process/memory_map"
)

// Process is a full status snapshot of a process or thread, decoded from
// /proc/[pid]/stat. Field documentation follows proc(5).
type Process struct {
	ProcessID     ProcessID    // The process ID
	Name          string       // Filename of the executable, without the parentheses
	State         ProcessState // Process state
	ParentID      ProcessID    // The PID of the parent of this process
	ParentGroupID ProcessID    // The process group ID of the process
	SessionID     ProcessID    // The session ID of the process
	TTYNr         int32        // The controlling terminal of the process
	TPGID         int32        // Foreground process group of the controlling terminal, -1 if none
	Flags         uint32       // The kernel flags word of the process

	MinFlt  uint64 // Minor faults that did not require loading a page from disk
	CMinFlt uint64 // Minor faults of waited-for children
	MajFlt  uint64 // Major faults that required loading a page from disk
	CMajFlt uint64 // Major faults of waited-for children

	UTime  ClockTicks // Time scheduled in user mode
	STime  ClockTicks // Time scheduled in kernel mode
	CUTime int64      // Time waited-for children were scheduled in user mode
	CSTime int64      // Time waited-for children were scheduled in kernel mode

	Priority    int64      // Obsolete for non real-time processes
	Nice        int64      // The nice value
	NumThreads  int64      // Number of threads in this process
	ItRealValue int64      // Obsolete, always 0
	StartTime   ClockTicks // The time the process started after system boot

	VSize      uint64 // Virtual memory size in bytes
	RSS        int64  // Resident Set Size in pages
	RSSLim     uint64 // Current soft limit in bytes on the rss of the process
	StartCode  uint64 // The address above which program text can run
	EndCode    uint64 // The address below which program text can run
	StartStack uint64 // The address of the start (i.e., bottom) of the stack
	KStkESP    uint64 // Current value of ESP (stack pointer)
	KStkEIP    uint64 // Current EIP (instruction pointer)

	// Obsolete signal bitmaps, use /proc/[pid]/status instead
	Signal    uint64
	Blocked   uint64
	SigIgnore uint64
	SigCatch  uint64

	WChan  uint64 // Address of the kernel location where the process is sleeping
	NSwap  uint64 // Not maintained
	CNSwap uint64 // Not maintained

	ExitSignal          int32      // Signal to be sent to parent when we die
	Processor           int32      // CPU number last executed on
	RTPriority          uint32     // Real-time scheduling priority, 1 to 99, or 0
	Policy              uint32     // Scheduling policy
	DelayAcctBlkioTicks ClockTicks // Aggregated block I/O delays
	GuestTime           ClockTicks // Time spent running a virtual CPU for a guest
	CGuestTime          int64      // Guest time of the process's children

	StartData uint64 // Address above which initialized and BSS data are placed
	EndData   uint64 // Address below which initialized and BSS data are placed
	StartBrk  uint64 // Address above which the heap can be expanded with brk(2)
	ArgStart  uint64 // Address above which argv is placed
	ArgEnd    uint64 // Address below which argv is placed
	EnvStart  uint64 // Address above which the environment is placed
	EnvEnd    uint64 // Address below which the environment is placed
	ExitCode  int32  // Exit status in the form reported by waitpid(2)

	// Threads of this process, nil until a caller resolves and attaches them.
	// Threads are described by the same record as processes.
	Threads []*Process
	// Segments in the process's virtual address space, empty until attached
	Segments []memory_map.Segment
}

// ParseProcess decodes one /proc/[pid]/stat line.
//
// The name is taken between the first '(' and the last ')' so names holding
// spaces or parentheses decode correctly; lines without parentheses are split
// on whitespace only. Fields past StatFieldCount are ignored.
func ParseProcess(line string) (*Process, error) {
	tokens := splitStat(line)
	if len(tokens) < StatFieldCount {
		return nil, &FieldCountError{Got: len(tokens), Want: StatFieldCount}
	}

	state, err := ParseProcessState(tokens[statState])
	if err != nil {
		return nil, err
	}

	d := statDecoder{tokens: tokens}
	p := &Process{
		ProcessID:     ProcessID(d.i32(statPID)),
		Name:          tokens[statComm],
		State:         state,
		ParentID:      ProcessID(d.i32(statPPID)),
		ParentGroupID: ProcessID(d.i32(statPGRP)),
		SessionID:     ProcessID(d.i32(statSession)),
		TTYNr:         d.i32(statTTYNr),
		TPGID:         d.i32(statTPGID),
		Flags:         d.u32(statFlags),

		MinFlt:  d.u64(statMinFlt),
		CMinFlt: d.u64(statCMinFlt),
		MajFlt:  d.u64(statMajFlt),
		CMajFlt: d.u64(statCMajFlt),

		UTime:  d.u64(statUTime),
		STime:  d.u64(statSTime),
		CUTime: d.i64(statCUTime),
		CSTime: d.i64(statCSTime),

		Priority:    d.i64(statPriority),
		Nice:        d.i64(statNice),
		NumThreads:  d.i64(statNumThreads),
		ItRealValue: d.i64(statItRealValue),
		StartTime:   d.u64(statStartTime),

		VSize:      d.u64(statVSize),
		RSS:        d.i64(statRSS),
		RSSLim:     d.u64(statRSSLim),
		StartCode:  d.u64(statStartCode),
		EndCode:    d.u64(statEndCode),
		StartStack: d.u64(statStartStack),
		KStkESP:    d.u64(statKStkESP),
		KStkEIP:    d.u64(statKStkEIP),

		Signal:    d.u64(statSignal),
		Blocked:   d.u64(statBlocked),
		SigIgnore: d.u64(statSigIgnore),
		SigCatch:  d.u64(statSigCatch),

		WChan:  d.u64(statWChan),
		NSwap:  d.u64(statNSwap),
		CNSwap: d.u64(statCNSwap),

		ExitSignal:          d.i32(statExitSignal),
		Processor:           d.i32(statProcessor),
		RTPriority:          d.u32(statRTPriority),
		Policy:              d.u32(statPolicy),
		DelayAcctBlkioTicks: d.u64(statDelayAcctBlkioTicks),
		GuestTime:           d.u64(statGuestTime),
		CGuestTime:          d.i64(statCGuestTime),

		StartData: d.u64(statStartData),
		EndData:   d.u64(statEndData),
		StartBrk:  d.u64(statStartBrk),
		ArgStart:  d.u64(statArgStart),
		ArgEnd:    d.u64(statArgEnd),
		EnvStart:  d.u64(statEnvStart),
		EnvEnd:    d.u64(statEnvEnd),
		ExitCode:  d.i32(statExitCode),

		Segments: []memory_map.Segment{},
	}
	if d.err != nil {
		return nil, d.err
	}

	return p, nil
}

func splitStat(line string) []string {
	open := strings.IndexByte(line, '(')
	end := strings.LastIndexByte(line, ')')
	if open < 0 || end < open {
		return strings.Fields(line)
	}

	tokens := strings.Fields(line[:open])
	tokens = append(tokens, line[open+1:end])
	return append(tokens, strings.Fields(line[end+1:])...)
}

// statDecoder parses numeric tokens and keeps the first error
type statDecoder struct {
	tokens []string
	err    error
}

func (d *statDecoder) parse(i int, signed bool, bits int) (uint64, int64) {
	if d.err != nil {
		return 0, 0
	}

	var (
		u   uint64
		s   int64
		err error
	)
	if signed {
		s, err = strconv.ParseInt(d.tokens[i], 10, bits)
	} else {
		u, err = strconv.ParseUint(d.tokens[i], 10, bits)
	}
	if err != nil {
		d.err = &IntegerFormatError{Field: i, Name: StatFieldName(i), Token: d.tokens[i], Err: err}
	}
	return u, s
}

func (d *statDecoder) u64(i int) uint64 {
	u, _ := d.parse(i, false, 64)
	return u
}

func (d *statDecoder) u32(i int) uint32 {
	u, _ := d.parse(i, false, 32)
	return uint32(u)
}

func (d *statDecoder) i64(i int) int64 {
	_, s := d.parse(i, true, 64)
	return s
}

func (d *statDecoder) i32(i int) int32 {
	_, s := d.parse(i, true, 32)
	return int32(s)
}

// String returns a one line summary for display, e.g. "Process 1 (systemd): InterruptibleSleep"
func (p *Process) String() string {
	return fmt.Sprintf("Process %d (%s): %s", p.ProcessID, p.Name, p.State.Name())
}

// IsThreaded reports whether threads have been attached to the process
func (p *Process) IsThreaded() bool {
	return p.Threads != nil
}

// AttachThreads sets the resolved threads of the process
func (p *Process) AttachThreads(threads []*Process) {
	p.Threads = threads
}

// AttachSegments sets the mapped regions of the process
func (p *Process) AttachSegments(segments []memory_map.Segment) {
	p.Segments = segments
}

// RSSBytes converts the resident set size from pages to bytes
func (p *Process) RSSBytes(pageSize int) uint64 {
	if p.RSS < 0 {
		return 0
	}
	return uint64(p.RSS) * uint64(pageSize)
}

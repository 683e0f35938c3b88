package process

// Positions of the fields in /proc/[pid]/stat (0-indexed), see proc(5).
// The layout is tied to the kernel version; a kernel that inserts a field
// only needs this block and statFieldNames updated.
const (
	statPID = iota
	statComm
	statState
	statPPID
	statPGRP
	statSession
	statTTYNr
	statTPGID
	statFlags
	statMinFlt
	statCMinFlt
	statMajFlt
	statCMajFlt
	statUTime
	statSTime
	statCUTime
	statCSTime
	statPriority
	statNice
	statNumThreads
	statItRealValue
	statStartTime
	statVSize
	statRSS
	statRSSLim
	statStartCode
	statEndCode
	statStartStack
	statKStkESP
	statKStkEIP
	statSignal
	statBlocked
	statSigIgnore
	statSigCatch
	statWChan
	statNSwap
	statCNSwap
	statExitSignal
	statProcessor
	statRTPriority
	statPolicy
	statDelayAcctBlkioTicks
	statGuestTime
	statCGuestTime
	statStartData
	statEndData
	statStartBrk
	statArgStart
	statArgEnd
	statEnvStart
	statEnvEnd
	statExitCode

	// StatFieldCount is the minimum number of fields in a status line
	StatFieldCount
)

var statFieldNames = [StatFieldCount]string{
	statPID:                 "pid",
	statComm:                "comm",
	statState:               "state",
	statPPID:                "ppid",
	statPGRP:                "pgrp",
	statSession:             "session",
	statTTYNr:               "tty_nr",
	statTPGID:               "tpgid",
	statFlags:               "flags",
	statMinFlt:              "minflt",
	statCMinFlt:             "cminflt",
	statMajFlt:              "majflt",
	statCMajFlt:             "cmajflt",
	statUTime:               "utime",
	statSTime:               "stime",
	statCUTime:              "cutime",
	statCSTime:              "cstime",
	statPriority:            "priority",
	statNice:                "nice",
	statNumThreads:          "num_threads",
	statItRealValue:         "itrealvalue",
	statStartTime:           "starttime",
	statVSize:               "vsize",
	statRSS:                 "rss",
	statRSSLim:              "rsslim",
	statStartCode:           "startcode",
	statEndCode:             "endcode",
	statStartStack:          "startstack",
	statKStkESP:             "kstkesp",
	statKStkEIP:             "kstkeip",
	statSignal:              "signal",
	statBlocked:             "blocked",
	statSigIgnore:           "sigignore",
	statSigCatch:            "sigcatch",
	statWChan:               "wchan",
	statNSwap:               "nswap",
	statCNSwap:              "cnswap",
	statExitSignal:          "exit_signal",
	statProcessor:           "processor",
	statRTPriority:          "rt_priority",
	statPolicy:              "policy",
	statDelayAcctBlkioTicks: "delayacct_blkio_ticks",
	statGuestTime:           "guest_time",
	statCGuestTime:          "cguest_time",
	statStartData:           "start_data",
	statEndData:             "end_data",
	statStartBrk:            "start_brk",
	statArgStart:            "arg_start",
	statArgEnd:              "arg_end",
	statEnvStart:            "env_start",
	statEnvEnd:              "env_end",
	statExitCode:            "exit_code",
}

// StatFieldName returns the proc(5) name of the field at index i
func StatFieldName(i int) string {
	if i < 0 || i >= StatFieldCount {
		return "unknown"
	}
	return statFieldNames[i]
}

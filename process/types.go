package process

// ProcessID represents a unique identifier for a process or thread
type ProcessID int32

// ClockTicks is a CPU time or start time counter in units of the kernel's
// USER_HZ (see sysconf(_SC_CLK_TCK))
type ClockTicks = uint64

package process

// ProcessState represents the state of a process, as the single letter
// code printed in the third field of /proc/[pid]/stat
type ProcessState string

const (
	ProcessRunning              ProcessState = "R" // Running
	ProcessUninterruptibleSleep ProcessState = "D" // Waiting in uninterruptible disk sleep
	ProcessInterruptibleSleep   ProcessState = "S" // Sleeping in an interruptible wait
	ProcessStopped              ProcessState = "T" // Stopped (on a signal)
	ProcessZombie               ProcessState = "Z" // Zombie
	ProcessTracing              ProcessState = "t" // Tracing stop
	ProcessDead                 ProcessState = "X" // Dead
	ProcessIdle                 ProcessState = "I" // Idle kernel thread
)

var processStateNames = map[ProcessState]string{
	ProcessRunning:              "Running",
	ProcessUninterruptibleSleep: "UninterruptibleSleep",
	ProcessInterruptibleSleep:   "InterruptibleSleep",
	ProcessStopped:              "Stopped",
	ProcessZombie:               "Zombie",
	ProcessTracing:              "Tracing",
	ProcessDead:                 "Dead",
	ProcessIdle:                 "Idle",
}

// ParseProcessState decodes a state code. Only the exact codes above are accepted.
func ParseProcessState(s string) (ProcessState, error) {
	state := ProcessState(s)
	if _, ok := processStateNames[state]; !ok {
		return "", &UnknownStateError{Token: s}
	}
	return state, nil
}

// String returns the state code, which ParseProcessState accepts
func (s ProcessState) String() string {
	return string(s)
}

// Name returns the readable name of the state, e.g. "Zombie"
func (s ProcessState) Name() string {
	if name, ok := processStateNames[s]; ok {
		return name
	}
	return "Unknown(" + string(s) + ")"
}

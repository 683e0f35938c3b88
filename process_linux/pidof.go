//go:build linux

package process_linux

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"libinspector/process"

	"golang.org/x/sys/unix"
)

// ListByName returns all processes whose decoded stat name or exe basename
// equals name. The stat name is cut to 15 characters by the kernel, so long
// names only match through exe. The match is case-sensitive, like pidof.
// The calling process is skipped.
func (in *Inspector) ListByName(name string) ([]*process.Process, error) {
	if name == "" {
		return nil, errors.New("empty name")
	}

	entries, err := os.ReadDir(in.root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", in.root, err)
	}

	selfPID := os.Getpid()
	var out []*process.Process

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(e.Name())
		if err != nil || pid <= 0 {
			continue // not a PID dir
		}
		if pid == selfPID {
			continue
		}

		p, err := in.ReadProcess(process.ProcessID(pid))
		if err != nil {
			// gone, or a kernel we cannot decode
			in.log.Debugln("Skipping pid", pid, err)
			continue
		}
		if p.Name == name {
			out = append(out, p)
			continue
		}

		// Resolve /proc/<pid>/exe symlink; may fail if zombie or permission
		exe, _ := os.Readlink(in.pidPath(process.ProcessID(pid), "exe"))
		if exe != "" && filepath.Base(exe) == name {
			out = append(out, p)
		}
	}

	return out, nil
}

// OneByName returns the match for name with the lowest PID, or os.ErrNotExist if none.
func (in *Inspector) OneByName(name string) (*process.Process, error) {
	ps, err := in.ListByName(name)
	if err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return nil, os.ErrNotExist
	}

	minIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i].ProcessID < ps[minIdx].ProcessID {
			minIdx = i
		}
	}
	return ps[minIdx], nil
}

// Exists reports whether pid has an entry under the proc root
func (in *Inspector) Exists(pid process.ProcessID) bool {
	_, err := os.Stat(in.pidPath(pid))
	if err == nil {
		return true
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	// For transient errors (permission, EIO): fall back to kill 0
	return unix.Kill(int(pid), 0) == nil
}

//go:build linux

package process_linux

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"libinspector/process"
	"libinspector/process/memory_map"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// DefaultProcRoot is where procfs is normally mounted
const DefaultProcRoot = "/proc"

// Inspector reads process status and memory maps from a procfs tree and
// decodes them with the process and memory_map packages.
type Inspector struct {
	root string
	log  *logger.Logger

	// Strict makes ReadSegments fail on maps lines with an unknown
	// bracketed tag instead of logging and skipping them. Any other
	// malformed line always fails.
	Strict bool
}

// InspectOptions selects what Inspect attaches to the returned process
type InspectOptions struct {
	Threads  bool
	Segments bool
}

// NewInspector creates an Inspector for the procfs tree at root.
// An empty root means DefaultProcRoot.
func NewInspector(root string) *Inspector {
	if root == "" {
		root = DefaultProcRoot
	}
	return &Inspector{
		root: root,
		log:  logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "inspector")),
	}
}

// Root returns the procfs mount point in use
func (in *Inspector) Root() string {
	return in.root
}

func (in *Inspector) pidPath(pid process.ProcessID, elem ...string) string {
	return filepath.Join(append([]string{in.root, strconv.Itoa(int(pid))}, elem...)...)
}

// ReadProcess reads and decodes /proc/<pid>/stat
func (in *Inspector) ReadProcess(pid process.ProcessID) (*process.Process, error) {
	return readStat(in.pidPath(pid, "stat"))
}

func readStat(path string) (*process.Process, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	p, err := process.ParseProcess(string(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return p, nil
}

// ReadSegments reads and decodes every line of /proc/<pid>/maps.
// Errors carry the path and the 1-based line number.
func (in *Inspector) ReadSegments(pid process.ProcessID) ([]memory_map.Segment, error) {
	path := in.pidPath(pid, "maps")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer file.Close()

	var segments []memory_map.Segment
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		segment, err := memory_map.ParseSegment(line)
		if err != nil {
			var tagErr *memory_map.UnknownSegmentTagError
			if !in.Strict && errors.As(err, &tagErr) {
				in.log.Warn("Skipping ", path, " line ", lineNo, ": ", err)
				continue
			}
			return nil, fmt.Errorf("decode %s line %d: %w", path, lineNo, err)
		}

		segments = append(segments, segment)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return segments, nil
}

// ReadThreads decodes /proc/<pid>/task/<tid>/stat for every thread, ordered by tid.
// Threads that exit while being read are skipped.
func (in *Inspector) ReadThreads(pid process.ProcessID) ([]*process.Process, error) {
	taskDir := in.pidPath(pid, "task")
	entries, err := os.ReadDir(taskDir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", taskDir, err)
	}

	var tids []int
	for _, e := range entries {
		tid, err := strconv.Atoi(e.Name())
		if err != nil || tid <= 0 {
			continue
		}
		tids = append(tids, tid)
	}
	sort.Ints(tids)

	threads := make([]*process.Process, 0, len(tids))
	for _, tid := range tids {
		thread, err := readStat(filepath.Join(taskDir, strconv.Itoa(tid), "stat"))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				in.log.Debugln("Thread", tid, "exited while reading")
				continue
			}
			return nil, err
		}
		threads = append(threads, thread)
	}

	return threads, nil
}

// Inspect reads the status of pid and attaches what opts asks for.
// Threads are only attached to processes with more than one thread.
func (in *Inspector) Inspect(pid process.ProcessID, opts InspectOptions) (*process.Process, error) {
	p, err := in.ReadProcess(pid)
	if err != nil {
		return nil, err
	}

	if opts.Threads && p.NumThreads > 1 {
		threads, err := in.ReadThreads(pid)
		if err != nil {
			return nil, err
		}
		p.AttachThreads(threads)
	}

	if opts.Segments {
		segments, err := in.ReadSegments(pid)
		if err != nil {
			return nil, err
		}
		p.AttachSegments(segments)
	}

	in.log.Debugln("Inspected", p, "threads:", len(p.Threads), "segments:", len(p.Segments))

	return p, nil
}

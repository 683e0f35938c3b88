//go:build linux

package process_linux

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"libinspector/process"
	"libinspector/process/memory_map"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statTemplate = "%PID% (%NAME%) S 1 %PID% %PID% 0 -1 4194560 120 0 0 0 3 1 0 0 20 0 %THREADS% 0 4711 12345678 300 18446744073709551615 1 1 0 0 0 0 0 0 0 0 0 0 17 0 0 0 0 0 0 0 0 0 0 0 0 0 0\n"

const mapsFixture = `00400000-00452000 r-xp 00000000 08:02 173521      /usr/bin/demo
00e03000-00e24000 rw-p 00000000 00:00 0          [heap]
7f1c2a600000-7f1c2a60d000 rw-p 00000000 00:00 0
7ffd1b7c0000-7ffd1b7c4000 r--p 00000000 00:00 0  [vectors]
7ffea490d000-7ffea4a0f000 rw-p 00000000 00:00 0  [stack]
`

func statLine(pid int, name string, threads int) string {
	r := strings.NewReplacer("%PID%", strconv.Itoa(pid), "%NAME%", name, "%THREADS%", strconv.Itoa(threads))
	return r.Replace(statTemplate)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fakeProc builds a procfs tree with a two-thread "demo" process 4100100 and a
// single-thread "other" process 4100200.
func fakeProc(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "4100100", "stat"), statLine(4100100, "demo", 2))
	writeFile(t, filepath.Join(root, "4100100", "maps"), mapsFixture)
	writeFile(t, filepath.Join(root, "4100100", "task", "4100100", "stat"), statLine(4100100, "demo", 2))
	writeFile(t, filepath.Join(root, "4100100", "task", "4100101", "stat"), statLine(4100101, "demo worker", 2))

	writeFile(t, filepath.Join(root, "4100200", "stat"), statLine(4100200, "other", 1))
	writeFile(t, filepath.Join(root, "4100200", "maps"), "")

	writeFile(t, filepath.Join(root, "4100300", "stat"), statLine(4100300, "demo", 1))
	writeFile(t, filepath.Join(root, "meminfo"), "MemTotal: 1 kB\n")

	return root
}

func TestNewInspector_DefaultRoot(t *testing.T) {
	assert.Equal(t, DefaultProcRoot, NewInspector("").Root())
}

func TestInspector_ReadProcess(t *testing.T) {
	in := NewInspector(fakeProc(t))

	p, err := in.ReadProcess(4100100)
	require.NoError(t, err)
	assert.Equal(t, process.ProcessID(4100100), p.ProcessID)
	assert.Equal(t, "demo", p.Name)
	assert.Equal(t, int32(-1), p.TPGID)
	assert.Equal(t, int64(2), p.NumThreads)
}

func TestInspector_ReadProcessMissing(t *testing.T) {
	in := NewInspector(fakeProc(t))

	_, err := in.ReadProcess(4100999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestInspector_ReadProcessMalformed(t *testing.T) {
	root := fakeProc(t)
	writeFile(t, filepath.Join(root, "4100400", "stat"), "4100400 (short) R 1 2 3\n")

	_, err := NewInspector(root).ReadProcess(4100400)

	var countErr *process.FieldCountError
	require.True(t, errors.As(err, &countErr))
	assert.True(t, errors.Is(err, process.ErrMalformed))
}

func TestInspector_ReadSegmentsLenient(t *testing.T) {
	in := NewInspector(fakeProc(t))

	segments, err := in.ReadSegments(4100100)
	require.NoError(t, err)
	require.Len(t, segments, 4, "the [vectors] line is skipped")

	assert.Equal(t, memory_map.NewCodeSegment("/usr/bin/demo"), segments[0].Pathname)
	assert.Equal(t, memory_map.NewDataSegment(memory_map.Heap), segments[1].Pathname)
	assert.Equal(t, memory_map.Unbacked, segments[2].Pathname.Kind)
	assert.Equal(t, memory_map.Stack, segments[3].Pathname.Kind)
}

func TestInspector_ReadSegmentsStrict(t *testing.T) {
	in := NewInspector(fakeProc(t))
	in.Strict = true

	_, err := in.ReadSegments(4100100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4")

	var tagErr *memory_map.UnknownSegmentTagError
	assert.True(t, errors.As(err, &tagErr))
}

func TestInspector_ReadSegmentsLenientStillFailsOnBadFields(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		check func(t *testing.T, err error)
	}{
		{"hex device", "7f1c2a400000-7f1c2a428000 r--p 00000000 fe:00 1838252 /usr/lib/libc.so.6", func(t *testing.T, err error) {
			var devErr *memory_map.DeviceFormatError
			assert.True(t, errors.As(err, &devErr))
		}},
		{"bad offset", "7f1c2a400000-7f1c2a428000 r--p 0000zz00 08:01 1838252 /usr/lib/libc.so.6", func(t *testing.T, err error) {
			var offErr *memory_map.OffsetFormatError
			assert.True(t, errors.As(err, &offErr))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := fakeProc(t)
			writeFile(t, filepath.Join(root, "4100100", "maps"),
				"00400000-00452000 r-xp 00000000 08:02 173521 /usr/bin/demo\n"+tt.line+"\n")

			in := NewInspector(root)
			require.False(t, in.Strict)

			segments, err := in.ReadSegments(4100100)
			require.Error(t, err)
			assert.Nil(t, segments)
			assert.Contains(t, err.Error(), "line 2")
			assert.True(t, errors.Is(err, memory_map.ErrMalformed))
			tt.check(t, err)

			_, err = in.Inspect(4100100, InspectOptions{Segments: true})
			assert.Error(t, err)
		})
	}
}

func TestInspector_ReadThreads(t *testing.T) {
	in := NewInspector(fakeProc(t))

	threads, err := in.ReadThreads(4100100)
	require.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, process.ProcessID(4100100), threads[0].ProcessID)
	assert.Equal(t, process.ProcessID(4100101), threads[1].ProcessID)
	assert.Equal(t, "demo worker", threads[1].Name)
}

func TestInspector_Inspect(t *testing.T) {
	in := NewInspector(fakeProc(t))

	p, err := in.Inspect(4100100, InspectOptions{Threads: true, Segments: true})
	require.NoError(t, err)
	assert.True(t, p.IsThreaded())
	assert.Len(t, p.Threads, 2)
	assert.Len(t, p.Segments, 4)

	seg := memory_map.FindSegment(0x00e03100, p.Segments)
	require.NotNil(t, seg)
	assert.Equal(t, memory_map.Data, seg.Pathname.Kind)
}

func TestInspector_InspectSingleThread(t *testing.T) {
	in := NewInspector(fakeProc(t))

	p, err := in.Inspect(4100200, InspectOptions{Threads: true, Segments: true})
	require.NoError(t, err)
	assert.False(t, p.IsThreaded())
	assert.Empty(t, p.Segments)
}

func TestInspector_InspectNothingAttached(t *testing.T) {
	in := NewInspector(fakeProc(t))

	p, err := in.Inspect(4100100, InspectOptions{})
	require.NoError(t, err)
	assert.Nil(t, p.Threads)
	assert.Empty(t, p.Segments)
}

func TestInspector_ListByName(t *testing.T) {
	in := NewInspector(fakeProc(t))

	ps, err := in.ListByName("demo")
	require.NoError(t, err)
	assert.Len(t, ps, 2)

	one, err := in.OneByName("demo")
	require.NoError(t, err)
	assert.Equal(t, process.ProcessID(4100100), one.ProcessID)
}

func TestInspector_ListByNameExeFallback(t *testing.T) {
	root := fakeProc(t)
	writeFile(t, filepath.Join(root, "4100500", "stat"), statLine(4100500, "a-very-long-bin", 1))
	require.NoError(t, os.Symlink("/opt/tools/a-very-long-binary-name", filepath.Join(root, "4100500", "exe")))

	in := NewInspector(root)

	ps, err := in.ListByName("a-very-long-binary-name")
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, process.ProcessID(4100500), ps[0].ProcessID)

	ps, err = in.ListByName("a-very-long-bin")
	require.NoError(t, err)
	assert.Len(t, ps, 1)
}

func TestInspector_OneByNameMissing(t *testing.T) {
	in := NewInspector(fakeProc(t))

	_, err := in.OneByName("nope")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = in.ListByName("")
	assert.Error(t, err)
}

func TestInspector_Exists(t *testing.T) {
	in := NewInspector(fakeProc(t))

	assert.True(t, in.Exists(4100100))
	assert.False(t, in.Exists(4100999))
}

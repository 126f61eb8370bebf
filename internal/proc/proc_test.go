//go:build unix

package proc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProc(t *testing.T, root, pid, comm string, args ...string) {
	t.Helper()
	dir := filepath.Join(root, pid)
	require.NoError(t, os.MkdirAll(dir, 0755))
	if comm != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "comm"), []byte(comm+"\n"), 0644))
	}
	if len(args) > 0 {
		cmdline := strings.Join(args, "\x00") + "\x00"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "cmdline"), []byte(cmdline), 0644))
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeProc(t, root, "100", "mctl", "mctl", "-d", "/dev/ttyACM0", "control")
	writeProc(t, root, "200", "bash")
	writeProc(t, root, "300", "") // no comm, skipped
	writeProc(t, root, "self", "mctl")
	require.NoError(t, os.WriteFile(filepath.Join(root, "400"), nil, 0644))

	procs, err := Scan(root)
	require.NoError(t, err)

	uid := uint32(os.Getuid())
	assert.ElementsMatch(t, []Process{
		{PID: 100, UID: uid, Comm: "mctl", Args: []string{"mctl", "-d", "/dev/ttyACM0", "control"}},
		{PID: 200, UID: uid, Comm: "bash"},
	}, procs)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestOthers(t *testing.T) {
	procs := []Process{
		{PID: 10, UID: 1000, Comm: "mctl"},
		{PID: 11, UID: 1000, Comm: "mctl"},
		{PID: 12, UID: 0, Comm: "mctl"},
		{PID: 13, UID: 1000, Comm: "mctl-helper"},
	}

	got := Others(procs, Self{PID: 10, UID: 1000}, "mctl")
	assert.Equal(t, []Process{{PID: 11, UID: 1000, Comm: "mctl"}}, got)
}

func TestExclude(t *testing.T) {
	procs := []Process{
		{PID: 1, Args: []string{"mctl", "percent", "50"}},
		{PID: 2, Args: []string{"mctl", "control"}},
		{PID: 3},
	}

	got := Exclude(procs, func(p Process) bool {
		return len(p.Args) > 1 && p.Args[1] == "control"
	})
	assert.Equal(t, []Process{procs[0], procs[2]}, got)
}

func TestTerminate(t *testing.T) {
	var killed []int
	kill := func(pid int) error {
		killed = append(killed, pid)
		switch pid {
		case 2:
			return ErrGone
		case 3:
			return errors.New("not permitted")
		}
		return nil
	}

	procs := []Process{{PID: 1}, {PID: 2}, {PID: 3}, {PID: 4}}
	err := Terminate(procs, kill, zerolog.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "kill 3")
	assert.Equal(t, []int{1, 2, 3, 4}, killed)
}

func TestCurrent(t *testing.T) {
	self := Current()
	assert.Equal(t, os.Getpid(), self.PID)
	assert.Equal(t, uint32(os.Geteuid()), self.UID)
}

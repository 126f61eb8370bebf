// Package proc finds and stops other running instances of a command.
package proc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// ErrGone reports that the process exited before it could be signalled.
var ErrGone = errors.New("process already exited")

// Process describes one entry of a procfs tree.
type Process struct {
	PID  int
	UID  uint32
	Comm string
	// Args is the command line, nil when the kernel hides it
	Args []string
}

// Self identifies the calling process.
type Self struct {
	PID int
	UID uint32
}

// Scan reads every numeric directory of a procfs tree rooted at root.
// Entries that vanish or cannot be read are skipped.
func Scan(root string) ([]Process, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", root, err)
	}

	var procs []Process
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())

		info, err := os.Stat(dir)
		if err != nil {
			continue
		}
		uid, ok := ownerUID(info)
		if !ok {
			continue
		}

		comm, err := os.ReadFile(filepath.Join(dir, "comm"))
		if err != nil {
			continue
		}

		procs = append(procs, Process{
			PID:  pid,
			UID:  uid,
			Comm: strings.TrimSpace(string(comm)),
			Args: readCmdline(filepath.Join(dir, "cmdline")),
		})
	}
	return procs, nil
}

// readCmdline splits a NUL separated cmdline file
func readCmdline(path string) []string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	line := strings.TrimRight(string(raw), "\x00")
	if line == "" {
		return nil
	}
	return strings.Split(line, "\x00")
}

// Others returns the processes named name that belong to self's user,
// excluding self.
func Others(procs []Process, self Self, name string) []Process {
	var out []Process
	for _, p := range procs {
		if p.PID == self.PID || p.UID != self.UID || p.Comm != name {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Exclude returns procs without those for which skip reports true.
func Exclude(procs []Process, skip func(Process) bool) []Process {
	var out []Process
	for _, p := range procs {
		if !skip(p) {
			out = append(out, p)
		}
	}
	return out
}

// Killer asks a process to terminate.
type Killer func(pid int) error

// Terminate stops every process with kill, or SIGTERM when kill is nil.
// Processes that already exited are ignored; the first other failure is
// returned after all were tried.
func Terminate(procs []Process, kill Killer, logger zerolog.Logger) error {
	if kill == nil {
		kill = sigterm
	}

	var first error
	for _, p := range procs {
		logger.Info().Int("pid", p.PID).Str("comm", p.Comm).Msg("stopping existing instance")
		err := kill(p.PID)
		if err == nil || errors.Is(err, ErrGone) {
			continue
		}
		if first == nil {
			first = fmt.Errorf("kill %d: %w", p.PID, err)
		}
	}
	return first
}

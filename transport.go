package ledmatrix

import (
	"fmt"
	"io"
	"sort"
	"time"
)

// Transport is an open, byte-oriented serial connection to one matrix.
//
// Read must return ErrReadTimeout rather than (0, nil) when the read timeout
// elapses, so that io.ReadFull never spins on an idle line.
type Transport interface {
	io.ReadWriteCloser

	// Flush blocks until written bytes have been handed to the wire
	Flush() error

	SetReadTimeout(timeout time.Duration) error

	// Name returns the device name, if the backend knows one
	Name() (string, bool)
}

// Opener opens a transport for the device at path.
type Opener func(path string, config Config) (Transport, error)

var backends = map[string]Opener{
	"termios": openTermios,
	"bugst":   openBugst,
	"tarm":    openTarm,
}

// LookupBackend returns the opener registered under name
func LookupBackend(name string) (Opener, error) {
	opener, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	return opener, nil
}

// Backends lists the registered backend names in sorted order
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

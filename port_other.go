//go:build !linux

package ledmatrix

import "fmt"

// DefaultBackend is the transport backend used when none is configured
const DefaultBackend = "bugst"

func openTermios(path string, _ Config) (Transport, error) {
	return nil, fmt.Errorf("termios %s: %w", path, ErrBackendUnavailable)
}

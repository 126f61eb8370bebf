//go:build !unix

package proc

import (
	"errors"
	"os"
)

// Current returns the identity of the running process
func Current() Self {
	return Self{PID: os.Getpid()}
}

func ownerUID(os.FileInfo) (uint32, bool) {
	return 0, false
}

func sigterm(int) error {
	return errors.ErrUnsupported
}

package ledmatrix

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"go.bug.st/serial"
)

// Error kinds. Every transport failure surfaced by a Matrix matches exactly
// one of these with errors.Is.
var (
	ErrIO           = errors.New("serial device IO error")
	ErrInvalidInput = errors.New("invalid serial device parameter")
	ErrNoDevice     = errors.New("serial device not available")
	ErrUnknown      = errors.New("unknown serial error")
)

// Predefined error types for robust error handling
var (
	ErrValidation  = errors.New("invalid argument")
	ErrEnumeration = errors.New("cannot enumerate serial devices")

	ErrDeviceNotFound   = errors.New("serial device not found")
	ErrPermissionDenied = errors.New("permission denied accessing serial device")
	ErrDeviceInUse      = errors.New("serial device already in use")
	ErrInvalidBaudRate  = errors.New("invalid baud rate")
	ErrInvalidConfig    = errors.New("invalid serial configuration")
	ErrPortClosed       = errors.New("serial port is closed")
	ErrReadTimeout      = errors.New("read operation timed out")

	ErrUnknownBackend     = errors.New("unknown serial backend")
	ErrBackendUnavailable = errors.New("serial backend not available on this platform")

	// USB-related errors
	ErrUSBInfoNotAvailable  = errors.New("USB device information not available")
	ErrUSBResetNotAvailable = errors.New("usbreset utility not available")
)

// DeviceError reports a failure of one transport. Kind is one of ErrIO,
// ErrInvalidInput, ErrNoDevice or ErrUnknown.
type DeviceError struct {
	Device string
	Op     string
	Kind   error
	Err    error
}

func (e *DeviceError) Error() string {
	if e.Device == "" {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Device, e.Kind, e.Err)
}

func (e *DeviceError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// wrapDeviceError classifies err and tags it with the device and operation.
// Errors that are already a *DeviceError are returned unchanged.
func wrapDeviceError(op, device string, err error) error {
	if err == nil {
		return nil
	}
	var de *DeviceError
	if errors.As(err, &de) {
		return err
	}
	kind := classify(err)
	if kind == ErrUnknown && op != "open" {
		// a port that opened fine only fails at the IO layer
		kind = ErrIO
	}
	return &DeviceError{Device: device, Op: op, Kind: kind, Err: err}
}

// classify maps a backend error onto one of the error kinds.
func classify(err error) error {
	for _, kind := range []error{ErrIO, ErrInvalidInput, ErrNoDevice, ErrUnknown} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	switch {
	case errors.Is(err, ErrReadTimeout), errors.Is(err, os.ErrDeadlineExceeded),
		errors.Is(err, ErrPortClosed), errors.Is(err, os.ErrClosed),
		errors.Is(err, ErrPermissionDenied), errors.Is(err, os.ErrPermission):
		return ErrIO
	case errors.Is(err, ErrDeviceNotFound), errors.Is(err, ErrDeviceInUse),
		errors.Is(err, os.ErrNotExist):
		return ErrNoDevice
	case errors.Is(err, ErrInvalidBaudRate), errors.Is(err, ErrInvalidConfig),
		errors.Is(err, ErrUnknownBackend), errors.Is(err, ErrBackendUnavailable):
		return ErrInvalidInput
	}

	var portErr *serial.PortError
	if errors.As(err, &portErr) {
		switch portErr.Code() {
		case serial.PortNotFound, serial.PortBusy:
			return ErrNoDevice
		case serial.PermissionDenied:
			return ErrIO
		case serial.InvalidSpeed, serial.InvalidDataBits, serial.InvalidParity,
			serial.InvalidStopBits, serial.InvalidTimeoutValue, serial.InvalidSerialPort:
			return ErrInvalidInput
		case serial.PortClosed:
			return ErrIO
		default:
			return ErrUnknown
		}
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ENOENT, syscall.ENODEV, syscall.ENXIO, syscall.EBUSY:
			return ErrNoDevice
		case syscall.EINVAL, syscall.ENOTTY:
			return ErrInvalidInput
		default:
			return ErrIO
		}
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return ErrIO
	}
	return ErrUnknown
}

package ledmatrix

import (
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// usbResetSettle is how long a reset device is given to re-enumerate
var usbResetSettle = 2 * time.Second

// ResetUSBDevice performs a USB-level reset of the matrix at portPath. This
// recovers a module whose firmware stopped answering on the serial line.
//
// Requirements:
// - usbreset utility must be installed (from usbutils package)
// - Requires appropriate permissions (typically root/sudo)
//
// Returns:
// - nil if reset successful
// - ErrUSBResetNotAvailable if usbreset utility not found
// - ErrUSBInfoNotAvailable if device is not USB or metadata unavailable
// - error if reset fails
func ResetUSBDevice(portPath string) error {
	info, err := GetPortInfo(portPath)
	if err != nil {
		return fmt.Errorf("failed to get port info: %w", err)
	}
	return resetUSB(info)
}

// ResetMatrices resets every attached LED matrix and returns the paths that
// were reset. Failures are joined; devices after a failure are still reset.
func ResetMatrices() ([]string, error) {
	ports, err := DefaultEnumerator().Ports()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnumeration, err)
	}

	var reset []string
	var errs []error
	for i := range ports {
		if !ports[i].IsMatrix() {
			continue
		}
		if err := resetUSB(&ports[i]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ports[i].Path, err))
			continue
		}
		reset = append(reset, ports[i].Path)
	}
	return reset, errors.Join(errs...)
}

func resetUSB(info *PortInfo) error {
	if info.BusNumber == "" || info.DeviceNumber == "" {
		return ErrUSBInfoNotAvailable
	}

	if !IsUSBResetAvailable() {
		return ErrUSBResetNotAvailable
	}

	cmd := exec.Command("usbreset", formatUSBPath(info.BusNumber, info.DeviceNumber))
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("usbreset failed: %w (output: %s)", err, string(output))
	}

	time.Sleep(usbResetSettle)
	return nil
}

// formatUSBPath builds the BBB/DDD argument expected by usbreset
func formatUSBPath(bus, device string) string {
	return zeroPad(bus) + "/" + zeroPad(device)
}

func zeroPad(s string) string {
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

// IsUSBResetAvailable checks if usbreset utility is available in PATH
func IsUSBResetAvailable() bool {
	_, err := exec.LookPath("usbreset")
	return err == nil
}

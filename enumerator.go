package ledmatrix

import (
	"path/filepath"
	"runtime"

	"go.bug.st/serial/enumerator"
)

// Enumerator lists the serial endpoints visible to the host.
type Enumerator interface {
	Ports() ([]PortInfo, error)
}

// EnumeratorFunc adapts a function to the Enumerator interface
type EnumeratorFunc func() ([]PortInfo, error)

func (f EnumeratorFunc) Ports() ([]PortInfo, error) {
	return f()
}

// DefaultEnumerator returns the sysfs enumerator on Linux and the
// go.bug.st/serial enumerator elsewhere
func DefaultEnumerator() Enumerator {
	if runtime.GOOS == "linux" {
		return SysfsEnumerator{}
	}
	return DetailedEnumerator{}
}

// DetailedEnumerator lists ports through go.bug.st/serial/enumerator, which
// covers Windows and macOS.
type DetailedEnumerator struct{}

// Ports implements Enumerator
func (DetailedEnumerator) Ports() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}

	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		ports = append(ports, portInfoFromDetails(d))
	}
	return ports, nil
}

func portInfoFromDetails(d *enumerator.PortDetails) PortInfo {
	info := PortInfo{
		Name:        filepath.Base(d.Name),
		Path:        d.Name,
		Description: getPortDescription(filepath.Base(d.Name)),
	}
	if d.IsUSB {
		info.VendorID = d.VID
		info.ProductID = d.PID
		info.SerialNumber = d.SerialNumber
		info.Product = d.Product
	}
	return info
}

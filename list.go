package ledmatrix

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// USB identity of the LED matrix module.
const (
	VendorID  uint16 = 0x32AC
	ProductID uint16 = 0x0020
)

// PortInfo describes a serial endpoint and, for USB devices, its bus
// descriptor. VendorID and ProductID are hex strings as reported by the host.
type PortInfo struct {
	Name            string
	Path            string
	Description     string
	VendorID        string
	ProductID       string
	SerialNumber    string
	InterfaceNumber string
	BusNumber       string
	DeviceNumber    string
	Manufacturer    string
	Product         string
}

// IsUSB reports whether USB descriptor information is present
func (p PortInfo) IsUSB() bool {
	return p.VendorID != "" && p.ProductID != ""
}

// IsMatrix reports whether the endpoint is an LED matrix module
func (p PortInfo) IsMatrix() bool {
	if !p.IsUSB() {
		return false
	}
	vid, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(p.VendorID), "0x"), 16, 16)
	if err != nil {
		return false
	}
	pid, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(p.ProductID), "0x"), 16, 16)
	if err != nil {
		return false
	}
	return uint16(vid) == VendorID && uint16(pid) == ProductID
}

// ListDevices returns the paths of every attached LED matrix in enumeration
// order. No matching device is not an error.
func ListDevices() ([]string, error) {
	return listDevices(DefaultEnumerator())
}

func listDevices(e Enumerator) ([]string, error) {
	ports, err := e.Ports()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnumeration, err)
	}
	return FilterDevices(ports), nil
}

// FilterDevices keeps the paths of LED matrix endpoints, preserving order
func FilterDevices(ports []PortInfo) []string {
	devices := []string{}
	for _, p := range ports {
		if p.IsMatrix() {
			devices = append(devices, p.Path)
		}
	}
	return devices
}

// Regular expressions for different types of serial devices
var serialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^ttyUSB\d+$`), // USB serial adapters
	regexp.MustCompile(`^ttyACM\d+$`), // USB CDC/ACM devices
	regexp.MustCompile(`^ttyS\d+$`),   // Standard serial ports
	regexp.MustCompile(`^ttyAMA\d+$`), // ARM/Raspberry Pi serial
	regexp.MustCompile(`^ttymxc\d+$`), // i.MX serial ports
	regexp.MustCompile(`^ttyO\d+$`),   // OMAP serial ports
	regexp.MustCompile(`^ttySAC\d+$`), // Samsung serial ports
	regexp.MustCompile(`^ttyTHS\d+$`), // Tegra serial ports
}

// Exclude patterns for virtual terminals and other non-serial devices
var excludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^tty\d+$`),  // Virtual terminals (tty1, tty2, etc.)
	regexp.MustCompile(`^console$`), // Console
	regexp.MustCompile(`^ptmx$`),    // Pseudo-terminal multiplexer
	regexp.MustCompile(`^pty.*$`),   // Pseudo-terminals
	regexp.MustCompile(`^pts/.*$`),  // Pseudo-terminal slaves
}

func matchesSerialPattern(name string) bool {
	for _, pattern := range excludePatterns {
		if pattern.MatchString(name) {
			return false
		}
	}
	for _, pattern := range serialPatterns {
		if pattern.MatchString(name) {
			return true
		}
	}
	return false
}

// ListPorts returns a list of available serial ports on the system
// Filters for communication-capable devices and excludes virtual terminals
func ListPorts() ([]string, error) {
	return SysfsEnumerator{}.paths()
}

// isCharacterDevice checks if the given path is a character device
func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// GetPortInfo returns detailed information about a specific port
func GetPortInfo(portPath string) (*PortInfo, error) {
	return SysfsEnumerator{}.info(portPath)
}

// getPortDescription provides human-readable descriptions for different port types
func getPortDescription(name string) string {
	switch {
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial Port"
	case strings.HasPrefix(name, "ttySAC"):
		return "Samsung Serial Port"
	case strings.HasPrefix(name, "ttyTHS"):
		return "Tegra Serial Port"
	case strings.HasPrefix(name, "ttyO"):
		return "OMAP Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	default:
		return "Serial Port"
	}
}

// SysfsEnumerator lists tty devices under DevDir and reads their USB
// descriptors from SysDir. Empty fields mean /dev and /sys.
type SysfsEnumerator struct {
	DevDir string
	SysDir string
}

func (e SysfsEnumerator) devDir() string {
	if e.DevDir == "" {
		return "/dev"
	}
	return e.DevDir
}

func (e SysfsEnumerator) sysDir() string {
	if e.SysDir == "" {
		return "/sys"
	}
	return e.SysDir
}

// Ports implements Enumerator
func (e SysfsEnumerator) Ports() ([]PortInfo, error) {
	paths, err := e.paths()
	if err != nil {
		return nil, err
	}

	ports := make([]PortInfo, 0, len(paths))
	for _, path := range paths {
		info, err := e.info(path)
		if err != nil {
			// Removed between listing and inspection.
			continue
		}
		ports = append(ports, *info)
	}
	return ports, nil
}

func (e SysfsEnumerator) paths() ([]string, error) {
	devDir := e.devDir()
	entries, err := os.ReadDir(devDir)
	if err != nil {
		return nil, err
	}

	var ports []string
	for _, entry := range entries {
		if !matchesSerialPattern(entry.Name()) {
			continue
		}
		fullPath := filepath.Join(devDir, entry.Name())
		if isCharacterDevice(fullPath) {
			ports = append(ports, fullPath)
		}
	}

	sort.Strings(ports)
	return ports, nil
}

func (e SysfsEnumerator) info(portPath string) (*PortInfo, error) {
	if !isCharacterDevice(portPath) {
		return nil, ErrDeviceNotFound
	}

	name := filepath.Base(portPath)
	info := &PortInfo{
		Name:        name,
		Path:        portPath,
		Description: getPortDescription(name),
	}

	if strings.HasPrefix(name, "ttyUSB") || strings.HasPrefix(name, "ttyACM") {
		enrichUSBInfo(e.sysDir(), info)
	}
	return info, nil
}

// enrichUSBInfo fills the USB fields from sysfs. The tty's device link points
// at the USB interface directory, whose parent is the USB device.
func enrichUSBInfo(sysDir string, info *PortInfo) {
	devicePath := filepath.Join(sysDir, "class", "tty", info.Name, "device")
	interfacePath, err := filepath.EvalSymlinks(devicePath)
	if err != nil {
		return
	}
	// ttyUSB devices sit one level below their interface.
	if strings.HasPrefix(filepath.Base(interfacePath), "ttyUSB") {
		interfacePath = filepath.Dir(interfacePath)
	}
	info.InterfaceNumber = readSysfsFile(filepath.Join(interfacePath, "bInterfaceNumber"))

	usbDevicePath := filepath.Dir(interfacePath)
	info.VendorID = readSysfsFile(filepath.Join(usbDevicePath, "idVendor"))
	info.ProductID = readSysfsFile(filepath.Join(usbDevicePath, "idProduct"))
	info.SerialNumber = readSysfsFile(filepath.Join(usbDevicePath, "serial"))
	info.Manufacturer = readSysfsFile(filepath.Join(usbDevicePath, "manufacturer"))
	info.Product = readSysfsFile(filepath.Join(usbDevicePath, "product"))
	info.BusNumber = readSysfsFile(filepath.Join(usbDevicePath, "busnum"))
	info.DeviceNumber = readSysfsFile(filepath.Join(usbDevicePath, "devnum"))
}

// readSysfsFile returns the trimmed contents of a sysfs attribute, or "" if
// it cannot be read
func readSysfsFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

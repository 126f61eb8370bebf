package ledmatrix

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListPorts(t *testing.T) {
	ports, err := ListPorts()
	if err != nil {
		t.Errorf("ListPorts failed: %v", err)
	}

	for _, port := range ports {
		if !strings.HasPrefix(port, "/dev/") {
			t.Errorf("Port path doesn't start with /dev/: %s", port)
		}
		if !isCharacterDevice(port) {
			t.Errorf("Port is not a character device: %s", port)
		}
	}

	for i := 1; i < len(ports); i++ {
		if ports[i-1] > ports[i] {
			t.Errorf("Ports are not sorted: %s > %s", ports[i-1], ports[i])
		}
	}
}

func TestIsCharacterDevice(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/dev/null", true},
		{"/dev/zero", true},
		{os.TempDir(), false},
		{"/nonexistent", false},
	}

	for _, test := range tests {
		result := isCharacterDevice(test.path)
		if result != test.expected {
			t.Errorf("isCharacterDevice(%s) = %v, expected %v", test.path, result, test.expected)
		}
	}
}

func TestGetPortDescription(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"ttyUSB0", "USB Serial Port"},
		{"ttyACM0", "USB CDC/ACM Device"},
		{"ttyS0", "Standard Serial Port"},
		{"ttyAMA0", "ARM Serial Port"},
		{"ttymxc0", "i.MX Serial Port"},
		{"ttyO0", "OMAP Serial Port"},
		{"ttySAC0", "Samsung Serial Port"},
		{"ttyTHS0", "Tegra Serial Port"},
		{"unknown", "Serial Port"},
	}

	for _, test := range tests {
		result := getPortDescription(test.name)
		if result != test.expected {
			t.Errorf("getPortDescription(%s) = %s, expected %s", test.name, result, test.expected)
		}
	}
}

func TestGetPortInfo(t *testing.T) {
	info, err := GetPortInfo("/dev/null")
	if err != nil {
		t.Fatalf("GetPortInfo failed for /dev/null: %v", err)
	}
	if info.Name != "null" {
		t.Errorf("Expected name 'null', got '%s'", info.Name)
	}
	if info.Path != "/dev/null" {
		t.Errorf("Expected path '/dev/null', got '%s'", info.Path)
	}
	if info.IsUSB() {
		t.Error("/dev/null should not carry USB information")
	}

	_, err = GetPortInfo("/dev/nonexistent")
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("Expected ErrDeviceNotFound, got %v", err)
	}
}

func TestPortFiltering(t *testing.T) {
	testDevices := []struct {
		name        string
		shouldMatch bool
	}{
		{"ttyUSB0", true},
		{"ttyUSB1", true},
		{"ttyACM0", true},
		{"ttyS0", true},
		{"ttyAMA0", true},
		{"tty1", false},
		{"tty2", false},
		{"console", false},
		{"ptmx", false},
		{"ptyp0", false},
		{"random", false},
		{"urandom", false},
	}

	for _, device := range testDevices {
		if got := matchesSerialPattern(device.name); got != device.shouldMatch {
			t.Errorf("Device %s: expected match=%v, got %v", device.name, device.shouldMatch, got)
		}
	}
}

func TestIsMatrix(t *testing.T) {
	tests := []struct {
		vid, pid string
		expected bool
	}{
		{"32ac", "0020", true},
		{"32AC", "0020", true},
		{"0x32ac", "0x0020", true},
		{"32ac", "0021", false},
		{"0403", "0020", false},
		{"", "", false},
		{"zz", "0020", false},
	}

	for _, tt := range tests {
		info := PortInfo{VendorID: tt.vid, ProductID: tt.pid}
		if got := info.IsMatrix(); got != tt.expected {
			t.Errorf("IsMatrix(%q, %q) = %v, expected %v", tt.vid, tt.pid, got, tt.expected)
		}
	}
}

func TestFilterDevices(t *testing.T) {
	ports := []PortInfo{
		{Path: "/dev/ttyACM2", VendorID: "32ac", ProductID: "0020"},
		{Path: "/dev/ttyS0"},
		{Path: "/dev/ttyUSB0", VendorID: "0403", ProductID: "6001"},
		{Path: "/dev/ttyACM0", VendorID: "32ac", ProductID: "0020"},
		{Path: "/dev/ttyACM1", VendorID: "32ac", ProductID: "0012"},
		{Path: "/dev/ttyACM5", VendorID: "32AC", ProductID: "0020"},
	}

	got := FilterDevices(ports)
	expected := []string{"/dev/ttyACM2", "/dev/ttyACM0", "/dev/ttyACM5"}
	if strings.Join(got, ",") != strings.Join(expected, ",") {
		t.Errorf("FilterDevices = %v, expected %v", got, expected)
	}

	if got := FilterDevices(ports[1:3]); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}

func TestListDevicesErrors(t *testing.T) {
	failing := EnumeratorFunc(func() ([]PortInfo, error) {
		return nil, os.ErrPermission
	})
	if _, err := listDevices(failing); !errors.Is(err, ErrEnumeration) {
		t.Errorf("Expected ErrEnumeration, got %v", err)
	}

	empty := EnumeratorFunc(func() ([]PortInfo, error) { return nil, nil })
	devices, err := listDevices(empty)
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if len(devices) != 0 {
		t.Errorf("Expected no devices, got %v", devices)
	}
}

// TestSysfsEnumerator builds a fake /dev of symlinks to /dev/null and a fake
// sysfs tree describing one matrix and one FTDI adapter.
func TestSysfsEnumerator(t *testing.T) {
	devDir := t.TempDir()
	sysDir := t.TempDir()

	for _, name := range []string{"ttyACM0", "ttyUSB0", "ttyS0", "tty1", "console"} {
		if err := os.Symlink("/dev/null", filepath.Join(devDir, name)); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}

	matrixDevice := filepath.Join(sysDir, "devices", "usb3", "3-4")
	writeUSBDevice(t, matrixDevice, map[string]string{
		"idVendor":  "32ac",
		"idProduct": "0020",
		"serial":    "FRAKDEBZ0100000000",
		"product":   "LED Matrix Input Module",
		"busnum":    "3",
		"devnum":    "9",
	})
	matrixIface := filepath.Join(matrixDevice, "3-4:1.0")
	linkTTY(t, sysDir, "ttyACM0", matrixIface)

	ftdiDevice := filepath.Join(sysDir, "devices", "usb1", "1-1")
	writeUSBDevice(t, ftdiDevice, map[string]string{
		"idVendor":  "0403",
		"idProduct": "6001",
	})
	ftdiTTY := filepath.Join(ftdiDevice, "1-1:1.0", "ttyUSB0")
	linkTTY(t, sysDir, "ttyUSB0", ftdiTTY)

	e := SysfsEnumerator{DevDir: devDir, SysDir: sysDir}
	ports, err := e.Ports()
	if err != nil {
		t.Fatalf("Ports failed: %v", err)
	}
	if len(ports) != 3 {
		t.Fatalf("Expected 3 ports, got %d: %+v", len(ports), ports)
	}

	devices := FilterDevices(ports)
	if len(devices) != 1 || devices[0] != filepath.Join(devDir, "ttyACM0") {
		t.Errorf("Expected only ttyACM0, got %v", devices)
	}

	for _, p := range ports {
		switch p.Name {
		case "ttyACM0":
			if p.SerialNumber != "FRAKDEBZ0100000000" || p.BusNumber != "3" {
				t.Errorf("ttyACM0 metadata wrong: %+v", p)
			}
		case "ttyUSB0":
			if p.VendorID != "0403" {
				t.Errorf("ttyUSB0 VendorID = %q", p.VendorID)
			}
		case "ttyS0":
			if p.IsUSB() {
				t.Errorf("ttyS0 should not be USB: %+v", p)
			}
		default:
			t.Errorf("Unexpected port %s", p.Name)
		}
	}
}

func writeUSBDevice(t *testing.T, dir string, attrs map[string]string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", dir, err)
	}
	for name, value := range attrs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

func linkTTY(t *testing.T, sysDir, name, target string) {
	t.Helper()
	if err := os.MkdirAll(target, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", target, err)
	}
	classDir := filepath.Join(sysDir, "class", "tty", name)
	if err := os.MkdirAll(classDir, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", classDir, err)
	}
	if err := os.Symlink(target, filepath.Join(classDir, "device")); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}
}

func BenchmarkFilterDevices(b *testing.B) {
	ports := make([]PortInfo, 64)
	for i := range ports {
		ports[i] = PortInfo{Path: "/dev/ttyACM0", VendorID: "32ac", ProductID: "0020"}
	}
	for i := 0; i < b.N; i++ {
		FilterDevices(ports)
	}
}

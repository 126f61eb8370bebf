package ledmatrix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestReadSysfsFile tests the sysfs file reading helper
func TestReadSysfsFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		expected string
		setup    func(string) error
	}{
		{
			name:     "normal file",
			expected: "32ac",
			setup: func(path string) error {
				return os.WriteFile(path, []byte("32ac\n"), 0644)
			},
		},
		{
			name:     "file with spaces",
			expected: "LED Matrix Input Module",
			setup: func(path string) error {
				return os.WriteFile(path, []byte("  LED Matrix Input Module  \n"), 0644)
			},
		},
		{
			name:     "nonexistent file",
			expected: "",
			setup:    func(path string) error { return nil },
		},
		{
			name:     "empty file",
			expected: "",
			setup: func(path string) error {
				return os.WriteFile(path, []byte(""), 0644)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(tmpDir, tt.name)
			if err := tt.setup(testFile); err != nil {
				t.Fatalf("Setup failed: %v", err)
			}

			result := readSysfsFile(testFile)
			if result != tt.expected {
				t.Errorf("readSysfsFile() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

// TestEnrichUSBInfo tests USB metadata extraction with a mock sysfs structure:
//
//	class/tty/ttyACM0/device -> devices/usb5/5-2.3.1/5-2.3.1:1.0
func TestEnrichUSBInfo(t *testing.T) {
	sysDir := t.TempDir()

	devicePath := filepath.Join(sysDir, "devices", "usb5", "5-2.3.1")
	interfacePath := filepath.Join(devicePath, "5-2.3.1:1.0")

	writeUSBDevice(t, devicePath, map[string]string{
		"idVendor":     "32ac",
		"idProduct":    "0020",
		"serial":       "FRAKDEBZ0100000000",
		"manufacturer": "Framework",
		"product":      "LED Matrix Input Module",
		"busnum":       "5",
		"devnum":       "7",
	})
	linkTTY(t, sysDir, "ttyACM0", interfacePath)
	if err := os.WriteFile(filepath.Join(interfacePath, "bInterfaceNumber"), []byte("00\n"), 0644); err != nil {
		t.Fatalf("Failed to write interface number: %v", err)
	}

	info := &PortInfo{Name: "ttyACM0", Path: "/dev/ttyACM0"}
	enrichUSBInfo(sysDir, info)

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"VendorID", info.VendorID, "32ac"},
		{"ProductID", info.ProductID, "0020"},
		{"SerialNumber", info.SerialNumber, "FRAKDEBZ0100000000"},
		{"InterfaceNumber", info.InterfaceNumber, "00"},
		{"BusNumber", info.BusNumber, "5"},
		{"DeviceNumber", info.DeviceNumber, "7"},
		{"Manufacturer", info.Manufacturer, "Framework"},
		{"Product", info.Product, "LED Matrix Input Module"},
	}

	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("%s = %q, expected %q", tt.name, tt.got, tt.expected)
		}
	}
	if !info.IsMatrix() {
		t.Error("Expected enriched port to be recognised as a matrix")
	}
}

// TestEnrichUSBInfoGracefulFailure tests that enrichUSBInfo handles missing files gracefully
func TestEnrichUSBInfoGracefulFailure(t *testing.T) {
	info := &PortInfo{
		Name: "ttyUSB999",
		Path: "/dev/ttyUSB999",
	}

	enrichUSBInfo(t.TempDir(), info)

	if info.VendorID != "" {
		t.Errorf("VendorID should be empty, got %q", info.VendorID)
	}
	if info.ProductID != "" {
		t.Errorf("ProductID should be empty, got %q", info.ProductID)
	}
	if info.SerialNumber != "" {
		t.Errorf("SerialNumber should be empty, got %q", info.SerialNumber)
	}
}

// TestUSBResetFormatting tests the USB path formatting logic
func TestUSBResetFormatting(t *testing.T) {
	tests := []struct {
		bus      string
		device   string
		expected string
	}{
		{"5", "7", "005/007"},
		{"1", "2", "001/002"},
		{"123", "456", "123/456"},
		{"1", "10", "001/010"},
	}

	for _, tt := range tests {
		formatted := formatUSBPath(tt.bus, tt.device)
		if formatted != tt.expected {
			t.Errorf("formatUSBPath(%q, %q) = %q, expected %q",
				tt.bus, tt.device, formatted, tt.expected)
		}
	}
}

func TestResetUSBWithoutBusInfo(t *testing.T) {
	err := resetUSB(&PortInfo{Name: "ttyACM0", VendorID: "32ac", ProductID: "0020"})
	if !errors.Is(err, ErrUSBInfoNotAvailable) {
		t.Errorf("Expected ErrUSBInfoNotAvailable, got %v", err)
	}
}

func TestResetUSBDeviceNotFound(t *testing.T) {
	err := ResetUSBDevice("/dev/nonexistent")
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("Expected ErrDeviceNotFound, got %v", err)
	}
}

// TestIsUSBResetAvailable tests the availability check
func TestIsUSBResetAvailable(t *testing.T) {
	t.Logf("usbreset available: %v", IsUSBResetAvailable())
}

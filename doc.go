// Package ledmatrix drives the USB-serial LED matrix input module: a 9x34
// grid of single-colour LEDs controlled through a small command protocol.
//
// A Matrix wraps either one device or an ordered group of devices and offers
// the same operations for both. Group operations are applied to every member
// in order.
//
// # Basic Usage
//
// Open every attached matrix (115200 baud, 20ms read timeout):
//
//	matrix, err := ledmatrix.OpenAll()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer matrix.Close()
//
//	err = matrix.SetBrightness(40)
//	err = matrix.Percent(75)
//
// Queries return one value per device:
//
//	levels, err := matrix.Brightness()
//	asleep, err := matrix.Sleep()
//
// # Drawing
//
// A Frame is nine columns of 34 pixel intensities. DrawColumns stages each
// column and then shows them together:
//
//	var frame ledmatrix.Frame
//	frame[4][17] = 255
//	err = matrix.DrawColumns(frame)
//
// # Device Discovery
//
//	devices, err := ledmatrix.ListDevices()
//	matrix, err := ledmatrix.OpenMany(devices)
//
// Discovery matches the USB vendor and product IDs of the module. On Linux
// it reads sysfs; elsewhere it uses go.bug.st/serial/enumerator.
//
// # Configuration Options
//
//	matrix, err := ledmatrix.Open("/dev/ttyACM0",
//	    ledmatrix.WithReadTimeout(50*time.Millisecond),
//	    ledmatrix.WithBackend("bugst"),
//	    ledmatrix.WithLogger(logger),
//	)
//
// # Error Handling
//
// Device failures are *DeviceError values classified as ErrIO,
// ErrInvalidInput, ErrNoDevice or ErrUnknown. Bad arguments return
// ErrValidation without touching the wire:
//
//	if errors.Is(err, ledmatrix.ErrNoDevice) {
//	    // unplugged
//	}
//
// Nothing is retried. A failing group member stops the operation, leaving
// earlier members updated.
package ledmatrix

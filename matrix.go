package ledmatrix

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Kind tells whether a Matrix drives one device or a group of devices.
type Kind int

const (
	KindSingle Kind = iota
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Matrix drives one LED matrix or an ordered group of them through the same
// set of operations. Group operations are applied to every member in order
// and stop at the first failing member, so a failure can leave earlier
// members updated and later ones untouched.
//
// A Matrix owns its transports and is not safe for concurrent use.
type Matrix struct {
	kind   Kind
	ports  []Transport
	logger zerolog.Logger
}

// NewSingle wraps one open transport.
func NewSingle(t Transport) *Matrix {
	return &Matrix{kind: KindSingle, ports: []Transport{t}, logger: zerolog.Nop()}
}

// NewGroup wraps zero or more open transports of the same device type.
func NewGroup(ts []Transport) *Matrix {
	ports := make([]Transport, len(ts))
	copy(ports, ts)
	return &Matrix{kind: KindGroup, ports: ports, logger: zerolog.Nop()}
}

// Open opens a single matrix at path
func Open(path string, opts ...Option) (*Matrix, error) {
	config, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	t, err := openTransport(path, config)
	if err != nil {
		return nil, err
	}

	m := NewSingle(t)
	m.logger = config.Logger
	return m, nil
}

// OpenMany opens every path in order as one group. If any path fails to open
// the transports opened so far are closed and no Matrix is returned.
func OpenMany(paths []string, opts ...Option) (*Matrix, error) {
	config, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return openMany(paths, config)
}

// OpenAll discovers every attached matrix and opens them as one group.
func OpenAll(opts ...Option) (*Matrix, error) {
	config, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	ports, err := config.Enumerator.Ports()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnumeration, err)
	}
	paths := FilterDevices(ports)
	config.Logger.Debug().Strs("devices", paths).Msg("discovered LED matrices")

	return openMany(paths, config)
}

func openMany(paths []string, config Config) (*Matrix, error) {
	ports := make([]Transport, 0, len(paths))
	for _, path := range paths {
		t, err := openTransport(path, config)
		if err != nil {
			for _, opened := range ports {
				opened.Close()
			}
			return nil, err
		}
		ports = append(ports, t)
	}

	m := NewGroup(ports)
	m.logger = config.Logger
	return m, nil
}

func openTransport(path string, config Config) (Transport, error) {
	t, err := config.opener(path, config)
	if err != nil {
		return nil, wrapDeviceError("open", path, err)
	}
	config.Logger.Debug().
		Str("device", path).
		Str("backend", config.Backend).
		Dur("read_timeout", config.ReadTimeout).
		Msg("opened LED matrix")
	return t, nil
}

// Kind reports whether m is a single device or a group
func (m *Matrix) Kind() Kind {
	return m.kind
}

// Len returns the number of devices driven by m
func (m *Matrix) Len() int {
	return len(m.ports)
}

// Names returns the device names in order, "unnamed" where unknown
func (m *Matrix) Names() []string {
	names := make([]string, len(m.ports))
	for i, p := range m.ports {
		names[i] = transportName(p)
	}
	return names
}

func (m *Matrix) String() string {
	if m.kind == KindSingle {
		return "LED matrix " + transportName(m.ports[0])
	}
	return "LED matrices " + strings.Join(m.Names(), ", ")
}

func transportName(t Transport) string {
	if name, ok := t.Name(); ok {
		return name
	}
	return "unnamed"
}

// Close closes every transport and returns the joined errors
func (m *Matrix) Close() error {
	var errs []error
	for _, p := range m.ports {
		if err := p.Close(); err != nil {
			errs = append(errs, wrapDeviceError("close", transportName(p), err))
		}
	}
	return errors.Join(errs...)
}

// SetReadTimeout changes the read timeout of every transport
func (m *Matrix) SetReadTimeout(timeout time.Duration) error {
	if timeout < 0 {
		return fmt.Errorf("%w: negative read timeout %v", ErrValidation, timeout)
	}
	for _, p := range m.ports {
		if err := p.SetReadTimeout(timeout); err != nil {
			return wrapDeviceError("set timeout", transportName(p), err)
		}
	}
	return nil
}

// send writes the frame to every transport in order, stopping at the first
// failure.
func (m *Matrix) send(cmd Command) error {
	frame := cmd.Frame()
	for _, p := range m.ports {
		name := transportName(p)
		m.logger.Trace().Str("device", name).Hex("frame", frame).Msg("send")

		if _, err := p.Write(frame); err != nil {
			return wrapDeviceError("write", name, err)
		}
		if err := p.Flush(); err != nil {
			return wrapDeviceError("flush", name, err)
		}
	}
	return nil
}

// receive reads one reply from every transport in order and returns the
// status bytes.
func (m *Matrix) receive() ([]byte, error) {
	var resp [ResponseSize]byte
	status := make([]byte, 0, len(m.ports))
	for _, p := range m.ports {
		name := transportName(p)
		if _, err := io.ReadFull(p, resp[:]); err != nil {
			return nil, wrapDeviceError("read", name, err)
		}
		m.logger.Trace().Str("device", name).Uint8("status", resp[0]).Msg("receive")
		status = append(status, decodeStatus(&resp))
	}
	return status, nil
}

// exec sends cmd and, for commands that expect a reply, reads one status
// byte from every device. Commands without a reply return a nil status.
func (m *Matrix) exec(cmd Command) ([]byte, error) {
	if err := m.send(cmd); err != nil {
		return nil, err
	}
	if !cmd.Reply {
		return nil, nil
	}
	return m.receive()
}

func (m *Matrix) execBool(cmd Command) ([]bool, error) {
	status, err := m.exec(cmd)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(status))
	for i, s := range status {
		out[i] = decodeBool(s)
	}
	return out, nil
}

// Brightness returns the brightness of every device
func (m *Matrix) Brightness() ([]byte, error) {
	return m.exec(getBrightnessCmd())
}

// SetBrightness sets the global brightness (0-255)
func (m *Matrix) SetBrightness(level byte) error {
	return m.send(setBrightnessCmd(level))
}

// Percent fills the matrix to the given level (0-100)
func (m *Matrix) Percent(percent uint8) error {
	if percent > 100 {
		return fmt.Errorf("%w: percent %d exceeds 100", ErrValidation, percent)
	}
	return m.send(percentCmd(percent))
}

// ShowPattern displays a preset pattern
func (m *Matrix) ShowPattern(p Pattern) error {
	if _, ok := patternNames[p]; !ok {
		return fmt.Errorf("%w: unknown pattern 0x%02x", ErrValidation, byte(p))
	}
	return m.send(patternCmd(p))
}

// Gradient shows the vertical brightness gradient
func (m *Matrix) Gradient() error { return m.ShowPattern(PatternGradient) }

// DoubleGradient shows a gradient fading from the middle to both edges
func (m *Matrix) DoubleGradient() error { return m.ShowPattern(PatternDoubleGradient) }

// LotusHorizontal shows the "LOTUS" text running horizontally
func (m *Matrix) LotusHorizontal() error { return m.ShowPattern(PatternLotusHorizontal) }

// Zigzag shows a zigzag line
func (m *Matrix) Zigzag() error { return m.ShowPattern(PatternZigzag) }

// FullBrightness lights every LED at full brightness
func (m *Matrix) FullBrightness() error { return m.ShowPattern(PatternFullBrightness) }

// Panic shows the firmware's panic image
func (m *Matrix) Panic() error { return m.ShowPattern(PatternPanic) }

// LotusVertical shows the "LOTUS" text running vertically
func (m *Matrix) LotusVertical() error { return m.ShowPattern(PatternLotusVertical) }

// Test shows the firmware test pattern
func (m *Matrix) Test() error { return m.ShowPattern(PatternTest) }

// Sleep reports whether each device is asleep
func (m *Matrix) Sleep() ([]bool, error) {
	return m.execBool(getToggleCmd(opSleep))
}

// SetSleep puts every device to sleep or wakes it up
func (m *Matrix) SetSleep(sleep bool) error {
	return m.send(setToggleCmd(opSleep, sleep))
}

// Animate reports whether each device is animating its current image
func (m *Matrix) Animate() ([]bool, error) {
	return m.execBool(getToggleCmd(opAnimate))
}

// SetAnimate starts or stops the firmware animating the current image
func (m *Matrix) SetAnimate(animate bool) error {
	return m.send(setToggleCmd(opAnimate, animate))
}

// DrawBuffer uploads and shows a full black/white frame in one command
func (m *Matrix) DrawBuffer(buf Buffer) error {
	return m.send(drawBufferCmd(&buf))
}

// StageColumn uploads one column without showing it
func (m *Matrix) StageColumn(index uint8, col Column) error {
	if index >= Width {
		return fmt.Errorf("%w: column %d out of range [0, %d)", ErrValidation, index, Width)
	}
	return m.send(stageColumnCmd(index, &col))
}

// FlushColumns shows the staged columns
func (m *Matrix) FlushColumns() error {
	return m.send(flushColumnsCmd())
}

// DrawColumns stages every column of the frame in order and flushes them.
// A failure part way leaves the staging area partially updated.
func (m *Matrix) DrawColumns(frame Frame) error {
	for i := range frame {
		if err := m.StageColumn(uint8(i), frame[i]); err != nil {
			return err
		}
	}
	return m.FlushColumns()
}

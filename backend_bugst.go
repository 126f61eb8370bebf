package ledmatrix

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// bugstPort adapts a go.bug.st/serial port, which reports a read timeout as
// (0, nil).
type bugstPort struct {
	port serial.Port
	path string
}

var _ Transport = (*bugstPort)(nil)

func openBugst(path string, config Config) (Transport, error) {
	mode := &serial.Mode{
		BaudRate: config.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	p, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if err := p.SetReadTimeout(config.ReadTimeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", path, err)
	}
	return &bugstPort{port: p, path: path}, nil
}

func (b *bugstPort) Read(buf []byte) (int, error) {
	n, err := b.port.Read(buf)
	if n == 0 && err == nil && len(buf) > 0 {
		return 0, ErrReadTimeout
	}
	return n, err
}

func (b *bugstPort) Write(data []byte) (int, error) {
	return b.port.Write(data)
}

func (b *bugstPort) Flush() error {
	return b.port.Drain()
}

func (b *bugstPort) SetReadTimeout(timeout time.Duration) error {
	return b.port.SetReadTimeout(timeout)
}

func (b *bugstPort) Name() (string, bool) {
	return b.path, b.path != ""
}

func (b *bugstPort) Close() error {
	return b.port.Close()
}

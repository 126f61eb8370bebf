package ledmatrix

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/tarm/serial"
)

// tarmPort adapts github.com/tarm/serial. The library fixes the read timeout
// when the port is opened, so changing it reopens the port.
type tarmPort struct {
	mu     sync.Mutex
	port   *serial.Port
	config serial.Config
}

var _ Transport = (*tarmPort)(nil)

func openTarm(path string, config Config) (Transport, error) {
	c := serial.Config{
		Name:        path,
		Baud:        config.BaudRate,
		ReadTimeout: config.ReadTimeout,
	}
	p, err := serial.OpenPort(&c)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &tarmPort{port: p, config: c}, nil
}

func (t *tarmPort) current() (*serial.Port, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return nil, ErrPortClosed
	}
	return t.port, nil
}

func (t *tarmPort) Read(buf []byte) (int, error) {
	p, err := t.current()
	if err != nil {
		return 0, err
	}
	n, err := p.Read(buf)
	if n == 0 && len(buf) > 0 && (err == nil || errors.Is(err, io.EOF)) {
		return 0, ErrReadTimeout
	}
	return n, err
}

func (t *tarmPort) Write(data []byte) (int, error) {
	p, err := t.current()
	if err != nil {
		return 0, err
	}
	return p.Write(data)
}

// Flush is a no-op: tarm's Flush discards queued output instead of draining
// it, and Write returns once the kernel owns the bytes.
func (t *tarmPort) Flush() error {
	_, err := t.current()
	return err
}

func (t *tarmPort) SetReadTimeout(timeout time.Duration) error {
	if timeout < 0 {
		return ErrInvalidConfig
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return ErrPortClosed
	}
	if timeout == t.config.ReadTimeout {
		return nil
	}
	if err := t.port.Close(); err != nil {
		return err
	}
	t.port = nil

	c := t.config
	c.ReadTimeout = timeout
	p, err := serial.OpenPort(&c)
	if err != nil {
		return fmt.Errorf("failed to reopen %s: %w", c.Name, err)
	}
	t.port = p
	t.config = c
	return nil
}

func (t *tarmPort) Name() (string, bool) {
	return t.config.Name, t.config.Name != ""
}

func (t *tarmPort) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.port == nil {
		return ErrPortClosed
	}
	err := t.port.Close()
	t.port = nil
	return err
}

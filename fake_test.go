package ledmatrix

import (
	"bytes"
	"time"
)

// fakeDevice simulates the matrix firmware: it records every frame and
// answers queries from its own state.
type fakeDevice struct {
	name    string
	unnamed bool

	frames  [][]byte
	replies bytes.Buffer

	brightness byte
	sleep      bool
	animate    bool
	timeout    time.Duration

	writeErr error
	flushErr error
	readErr  error
	closeErr error
	closed   bool
	flushes  int
}

var _ Transport = (*fakeDevice)(nil)

func newFakeDevice(name string) *fakeDevice {
	return &fakeDevice{name: name}
}

func (f *fakeDevice) Write(p []byte) (int, error) {
	if f.closed {
		return 0, ErrPortClosed
	}
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	frame := append([]byte(nil), p...)
	f.frames = append(f.frames, frame)
	f.handle(frame)
	return len(p), nil
}

func (f *fakeDevice) handle(frame []byte) {
	if len(frame) < 3 || frame[0] != prefix0 || frame[1] != prefix1 {
		return
	}
	op, args := frame[2], frame[3:]
	switch op {
	case opBrightness:
		if len(args) == 0 {
			f.reply(f.brightness)
		} else {
			f.brightness = args[0]
		}
	case opSleep:
		if len(args) == 0 {
			f.reply(encodeBool(f.sleep))
		} else {
			f.sleep = decodeBool(args[0])
		}
	case opAnimate:
		if len(args) == 0 {
			f.reply(encodeBool(f.animate))
		} else {
			f.animate = decodeBool(args[0])
		}
	}
}

// reply queues a full-size response with junk padding after the status.
func (f *fakeDevice) reply(status byte) {
	resp := bytes.Repeat([]byte{0xEE}, ResponseSize)
	resp[0] = status
	f.replies.Write(resp)
}

// Read hands out at most 8 bytes at a time to exercise short reads.
func (f *fakeDevice) Read(p []byte) (int, error) {
	if f.closed {
		return 0, ErrPortClosed
	}
	if f.readErr != nil {
		return 0, f.readErr
	}
	if f.replies.Len() == 0 {
		return 0, ErrReadTimeout
	}
	if len(p) > 8 {
		p = p[:8]
	}
	return f.replies.Read(p)
}

func (f *fakeDevice) Flush() error {
	if f.flushErr != nil {
		return f.flushErr
	}
	f.flushes++
	return nil
}

func (f *fakeDevice) SetReadTimeout(timeout time.Duration) error {
	if f.closed {
		return ErrPortClosed
	}
	f.timeout = timeout
	return nil
}

func (f *fakeDevice) Name() (string, bool) {
	if f.unnamed {
		return "", false
	}
	return f.name, true
}

func (f *fakeDevice) Close() error {
	if f.closed {
		return ErrPortClosed
	}
	f.closed = true
	return f.closeErr
}

// wire returns every byte written, in order.
func (f *fakeDevice) wire() []byte {
	return bytes.Join(f.frames, nil)
}

// fakeBus opens fakeDevices by path and records the order of opens.
type fakeBus struct {
	devices map[string]*fakeDevice
	fail    map[string]error
	opened  []string
	config  Config
}

func newFakeBus(paths ...string) *fakeBus {
	b := &fakeBus{devices: map[string]*fakeDevice{}, fail: map[string]error{}}
	for _, p := range paths {
		b.devices[p] = newFakeDevice(p)
	}
	return b
}

func (b *fakeBus) open(path string, config Config) (Transport, error) {
	b.config = config
	if err := b.fail[path]; err != nil {
		return nil, err
	}
	d, ok := b.devices[path]
	if !ok {
		return nil, ErrDeviceNotFound
	}
	d.timeout = config.ReadTimeout
	b.opened = append(b.opened, path)
	return d, nil
}

package ledmatrix

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	// BaudRate is the line speed of the matrix firmware.
	BaudRate = 115200

	// DefaultReadTimeout bounds how long a status read may block per device.
	DefaultReadTimeout = 20 * time.Millisecond
)

// Config holds the configuration used to open matrix transports
type Config struct {
	BaudRate    int
	ReadTimeout time.Duration
	Backend     string
	Enumerator  Enumerator
	Logger      zerolog.Logger

	opener Opener
}

// Option is a functional option for configuring a matrix handle
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaudRate:    BaudRate,
		ReadTimeout: DefaultReadTimeout,
		Backend:     DefaultBackend,
		Enumerator:  DefaultEnumerator(),
		Logger:      zerolog.Nop(),
	}
}

func newConfig(opts []Option) (Config, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return Config{}, err
		}
	}
	if config.opener == nil {
		opener, err := LookupBackend(config.Backend)
		if err != nil {
			return Config{}, err
		}
		config.opener = opener
	}
	return config, nil
}

// WithBaudRate sets the baud rate
func WithBaudRate(rate int) Option {
	return func(c *Config) error {
		if !validBaudRate(rate) {
			return ErrInvalidBaudRate
		}
		c.BaudRate = rate
		return nil
	}
}

// WithReadTimeout sets the per-read timeout of every transport
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout < 0 {
			return ErrInvalidConfig
		}
		c.ReadTimeout = timeout
		return nil
	}
}

// WithBackend selects a registered transport backend by name
func WithBackend(name string) Option {
	return func(c *Config) error {
		opener, err := LookupBackend(name)
		if err != nil {
			return err
		}
		c.Backend = name
		c.opener = opener
		return nil
	}
}

// WithOpener opens transports with a custom function instead of a named backend
func WithOpener(opener Opener) Option {
	return func(c *Config) error {
		if opener == nil {
			return ErrInvalidConfig
		}
		c.Backend = "custom"
		c.opener = opener
		return nil
	}
}

// WithEnumerator sets the enumerator used by OpenAll
func WithEnumerator(e Enumerator) Option {
	return func(c *Config) error {
		if e == nil {
			return ErrInvalidConfig
		}
		c.Enumerator = e
		return nil
	}
}

// WithLogger sets the logger used by the handle
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

var baudRates = []int{
	50, 75, 110, 134, 150, 200, 300, 600, 1200, 1800, 2400, 4800, 9600,
	19200, 38400, 57600, 115200, 230400, 460800, 500000, 576000, 921600,
	1000000, 1152000, 1500000, 2000000, 2500000, 3000000, 3500000, 4000000,
}

func validBaudRate(rate int) bool {
	for _, r := range baudRates {
		if r == rate {
			return true
		}
	}
	return false
}

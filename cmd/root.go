/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/allbin/go-ledmatrix"
	"github.com/allbin/go-ledmatrix/internal/proc"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time with -ldflags "-X .../cmd.version=..."
var version = "dev"

var (
	cfgFile string
	v       = viper.New()
	logger  = zerolog.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mctl",
	Short: "Control USB LED matrix modules",
	Long: `mctl drives the 9x34 LED matrix input modules attached over USB serial.

Every attached matrix is discovered automatically and driven as one group
unless --device selects specific ports. Display commands light the matrix,
wait --timeout seconds and clear it again. A new invocation stops any mctl
still waiting so the latest command always owns the display. Running
"mctl control" sessions are never stopped.

Settings can also come from MCTL_* environment variables or an mctl.yaml
config file (see --config).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		s, err := loadSettings(v)
		if err != nil {
			return err
		}
		logger = newLogger(s)
		logger.Info().Str("version", version).Msg("mctl")
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen once
// to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/mctl/mctl.yaml)")
	flags.IntP("brightness", "b", 20, "Default pixel brightness, 0 to 255")
	flags.IntP("timeout", "t", 2, "Seconds after which the matrix is cleared")
	flags.BoolP("quiet", "q", false, "Don't print log messages")
	flags.Bool("no-lock", false, "Don't stop other running mctl instances")
	flags.StringSliceP("device", "d", nil, "Serial port of a matrix (repeatable, default: all discovered)")
	flags.String("backend", ledmatrix.DefaultBackend,
		fmt.Sprintf("Serial backend: %s", strings.Join(ledmatrix.Backends(), ", ")))
	flags.Duration("read-timeout", ledmatrix.DefaultReadTimeout, "How long to wait for a device reply")
	flags.String("log-level", "warn", "Log level: trace, debug, info, warn, error")

	for _, name := range []string{"brightness", "timeout", "quiet", "no-lock", "device", "backend", "read-timeout", "log-level"} {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in the config file and MCTL_* environment variables.
func initConfig() error {
	v.SetEnvPrefix("MCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("mctl")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "mctl"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// settings is the resolved view of flags, environment and config file
type settings struct {
	Brightness  byte
	Timeout     time.Duration
	Quiet       bool
	NoLock      bool
	Devices     []string
	Backend     string
	ReadTimeout time.Duration
	LogLevel    zerolog.Level
}

func loadSettings(v *viper.Viper) (settings, error) {
	brightness := v.GetInt("brightness")
	if brightness < 0 || brightness > 255 {
		return settings{}, fmt.Errorf("brightness %d out of range 0-255", brightness)
	}

	timeout := v.GetInt("timeout")
	if timeout < 0 {
		return settings{}, fmt.Errorf("timeout %d must not be negative", timeout)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("log-level")))
	if err != nil {
		return settings{}, fmt.Errorf("log level: %w", err)
	}

	return settings{
		Brightness:  byte(brightness),
		Timeout:     time.Duration(timeout) * time.Second,
		Quiet:       v.GetBool("quiet"),
		NoLock:      v.GetBool("no-lock"),
		Devices:     v.GetStringSlice("device"),
		Backend:     v.GetString("backend"),
		ReadTimeout: v.GetDuration("read-timeout"),
		LogLevel:    level,
	}, nil
}

func newLogger(s settings) zerolog.Logger {
	if s.Quiet {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(s.LogLevel).
		With().
		Timestamp().
		Logger()
}

func (s settings) options() []ledmatrix.Option {
	opts := []ledmatrix.Option{
		ledmatrix.WithReadTimeout(s.ReadTimeout),
		ledmatrix.WithLogger(logger),
	}
	if s.Backend != "" {
		opts = append(opts, ledmatrix.WithBackend(s.Backend))
	}
	return opts
}

func currentSettings() (settings, error) {
	return loadSettings(v)
}

// openMatrix opens the configured devices, or every attached matrix.
func openMatrix(s settings) (*ledmatrix.Matrix, error) {
	var (
		m   *ledmatrix.Matrix
		err error
	)
	if len(s.Devices) > 0 {
		m, err = ledmatrix.OpenMany(s.Devices, s.options()...)
	} else {
		m, err = ledmatrix.OpenAll(s.options()...)
	}
	if err != nil {
		return nil, err
	}
	if m.Len() == 0 {
		m.Close()
		return nil, fmt.Errorf("no LED matrix found: %w", ledmatrix.ErrDeviceNotFound)
	}
	logger.Info().Msgf("Connected to %s", m)
	return m, nil
}

// commName is the name the kernel reports for this binary in /proc/<pid>/comm
func commName() string {
	name := filepath.Base(os.Args[0])
	if len(name) > 15 {
		name = name[:15]
	}
	return name
}

// stopOthers terminates other instances of mctl owned by the same user so
// their pending clear does not overwrite this invocation's display.
// Interactive control sessions are left running.
func stopOthers(s settings) {
	if s.NoLock {
		return
	}
	procs, err := proc.Scan("/proc")
	if err != nil {
		logger.Warn().Err(err).Msg("cannot list running processes")
		return
	}
	others := proc.Exclude(proc.Others(procs, proc.Current(), commName()), isControlSession)
	if err := proc.Terminate(others, nil, logger); err != nil {
		logger.Warn().Err(err).Msg("cannot stop other instance")
	}
}

// isControlSession reports whether p runs the control command
func isControlSession(p proc.Process) bool {
	if len(p.Args) < 2 {
		return false
	}
	c, _, err := rootCmd.Find(p.Args[1:])
	return err == nil && c == controlCmd
}

// display runs the shared flow of every drawing command: stop other
// instances, open, set the default brightness, draw, wait and clear.
func display(draw func(m *ledmatrix.Matrix) error) error {
	s, err := currentSettings()
	if err != nil {
		return err
	}

	stopOthers(s)

	m, err := openMatrix(s)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.SetBrightness(s.Brightness); err != nil {
		return err
	}
	if err := draw(m); err != nil {
		return err
	}

	// SIGTERM from a newer instance must not clear its display
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return waitAndClear(ctx, m, s.Timeout)
}

// waitAndClear blanks the matrix after timeout, or as soon as ctx is done.
func waitAndClear(ctx context.Context, m *ledmatrix.Matrix, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		logger.Debug().Msg("interrupted, clearing early")
	}
	return m.Percent(0)
}

// parseOnOff accepts the states understood by the toggle commands
func parseOnOff(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "on", "high", "true", "1":
		return true, nil
	case "off", "low", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: expected on or off, got %q", ledmatrix.ErrValidation, arg)
}

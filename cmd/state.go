/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/allbin/go-ledmatrix"
	"github.com/spf13/cobra"
)

// brightnessCmd represents the brightness command
var brightnessCmd = &cobra.Command{
	Use:   "brightness [level]",
	Short: "Get or set the global brightness",
	Long: `Without an argument, print the global brightness of every matrix.
With a level from 0 to 255, set it on every matrix.

Examples:
  mctl brightness
  mctl brightness 120 --device /dev/ttyACM0`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return withMatrix(func(m *ledmatrix.Matrix) error {
				levels, err := m.Brightness()
				if err != nil {
					return err
				}
				printStates(os.Stdout, m.Names(), levels, func(b byte) string { return strconv.Itoa(int(b)) })
				return nil
			})
		}

		level, err := strconv.ParseUint(args[0], 10, 8)
		if err != nil {
			return fmt.Errorf("%w: brightness must be 0-255, got %q", ledmatrix.ErrValidation, args[0])
		}
		return withMatrix(func(m *ledmatrix.Matrix) error {
			if err := m.SetBrightness(byte(level)); err != nil {
				return err
			}
			fmt.Printf("Brightness set to %d on %s\n", level, m)
			return nil
		})
	},
}

// sleepCmd represents the sleep command
var sleepCmd = &cobra.Command{
	Use:       "sleep [on|off]",
	Short:     "Get or set the sleep state",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggle("Sleep", args, (*ledmatrix.Matrix).Sleep, (*ledmatrix.Matrix).SetSleep)
	},
}

// animateCmd represents the animate command
var animateCmd = &cobra.Command{
	Use:       "animate [on|off]",
	Short:     "Get or set whether the firmware animates the display",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return toggle("Animate", args, (*ledmatrix.Matrix).Animate, (*ledmatrix.Matrix).SetAnimate)
	},
}

func init() {
	rootCmd.AddCommand(brightnessCmd)
	rootCmd.AddCommand(sleepCmd)
	rootCmd.AddCommand(animateCmd)
}

// withMatrix opens the configured matrices for a command that leaves the
// display as it is
func withMatrix(fn func(m *ledmatrix.Matrix) error) error {
	s, err := currentSettings()
	if err != nil {
		return err
	}
	m, err := openMatrix(s)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

func toggle(label string, args []string, get func(*ledmatrix.Matrix) ([]bool, error), set func(*ledmatrix.Matrix, bool) error) error {
	if len(args) == 0 {
		return withMatrix(func(m *ledmatrix.Matrix) error {
			states, err := get(m)
			if err != nil {
				return err
			}
			printStates(os.Stdout, m.Names(), states, onOff)
			return nil
		})
	}

	on, err := parseOnOff(args[0])
	if err != nil {
		return err
	}
	return withMatrix(func(m *ledmatrix.Matrix) error {
		if err := set(m, on); err != nil {
			return err
		}
		fmt.Printf("%s set to %s on %s\n", label, onOff(on), m)
		return nil
	})
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// printStates prints one "device: value" line per matrix
func printStates[T any](w io.Writer, names []string, values []T, format func(T) string) {
	for i, v := range values {
		name := "?"
		if i < len(names) {
			name = names[i]
		}
		fmt.Fprintf(w, "%s: %s\n", name, format(v))
	}
}

/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/allbin/go-ledmatrix"
	"github.com/allbin/go-ledmatrix/internal/icons"
	"github.com/spf13/cobra"
)

// speakerCmd represents the speaker command
var speakerCmd = &cobra.Command{
	Use:       "speaker on|off",
	Short:     "Show the speaker or muted speaker icon",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		if on {
			return drawIcon(icons.SpeakerOn)
		}
		return drawIcon(icons.SpeakerMute)
	},
}

// iconCmd represents the icon command
var iconCmd = &cobra.Command{
	Use:   "icon <name>",
	Short: "Draw a built-in icon",
	Long: fmt.Sprintf(`Draw one of the built-in icons. Lit pixels are drawn at full value and
dimmed by the global --brightness.

Available icons: %s`, strings.Join(icons.Names(), ", ")),
	Args:      cobra.ExactArgs(1),
	ValidArgs: icons.Names(),
	RunE: func(cmd *cobra.Command, args []string) error {
		icon, ok := icons.Lookup(args[0])
		if !ok {
			return fmt.Errorf("%w: unknown icon %q (available: %s)",
				ledmatrix.ErrValidation, args[0], strings.Join(icons.Names(), ", "))
		}
		return drawIcon(icon)
	},
}

func init() {
	rootCmd.AddCommand(speakerCmd)
	rootCmd.AddCommand(iconCmd)
}

// drawIcon shows icon for the configured timeout
func drawIcon(icon icons.Icon) error {
	return display(func(m *ledmatrix.Matrix) error {
		return showIcon(m, icon)
	})
}

// showIcon draws icon with its pixels at full value. The global brightness
// set by display is what dims it on the device.
func showIcon(m *ledmatrix.Matrix, icon icons.Icon) error {
	frame, err := icon.Render(math.MaxUint8)
	if err != nil {
		return err
	}
	return m.DrawColumns(frame)
}

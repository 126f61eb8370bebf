/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"

	"github.com/allbin/go-ledmatrix/internal/tui/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// controlCmd represents the control command
var controlCmd = &cobra.Command{
	Use:   "control",
	Short: "Control the matrices interactively",
	Long: `Open an interactive terminal UI showing the brightness, sleep and
animate state of every matrix.

Keys:
  +/-   brightness up/down
  0-9   fill 0-90%
  p/P   next/previous preset pattern
  s     toggle sleep
  a     toggle animate
  r     refresh state
  ?     toggle help
  q     quit

The display is left as it is on exit. Other mctl commands draw over the
session's display but never stop it.`,
	Args: cobra.NoArgs,
}

// runControl is attached in init to break the initialization cycle through
// stopOthers and isControlSession, which refer back to controlCmd.
func runControl(cmd *cobra.Command, args []string) error {
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

	p := tea.NewProgram(models.NewControl(m, s.Backend), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running control UI: %w", err)
	}
	return nil
}

func init() {
	controlCmd.RunE = runControl
	rootCmd.AddCommand(controlCmd)
}

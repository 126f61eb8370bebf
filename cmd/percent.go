/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/allbin/go-ledmatrix"
	"github.com/spf13/cobra"
)

// percentCmd represents the percent command
var percentCmd = &cobra.Command{
	Use:     "percent <0-100>",
	Aliases: []string{"p"},
	Short:   "Fill the matrix to a percentage",
	Long: `Light the matrix from the bottom up to the given percentage, for
example as a volume or progress indicator.

Examples:
  mctl percent 40
  mctl p 75 --timeout 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		percent, err := parsePercent(args[0])
		if err != nil {
			return err
		}
		return display(func(m *ledmatrix.Matrix) error {
			return m.Percent(percent)
		})
	},
}

func init() {
	rootCmd.AddCommand(percentCmd)
}

func parsePercent(arg string) (uint8, error) {
	n, err := strconv.ParseUint(arg, 10, 8)
	if err != nil || n > 100 {
		return 0, fmt.Errorf("%w: percent must be 0-100, got %q", ledmatrix.ErrValidation, arg)
	}
	return uint8(n), nil
}

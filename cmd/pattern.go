/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/allbin/go-ledmatrix"
	"github.com/spf13/cobra"
)

// patternCmd represents the pattern command
var patternCmd = &cobra.Command{
	Use:   "pattern <name>",
	Short: "Show a preset pattern built into the firmware",
	Long: fmt.Sprintf(`Show one of the preset patterns built into the matrix firmware.

Available patterns: %s`, strings.Join(patternNames(), ", ")),
	Args:      cobra.ExactArgs(1),
	ValidArgs: patternNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := ledmatrix.ParsePattern(strings.ToLower(args[0]))
		if err != nil {
			return err
		}
		return display(func(m *ledmatrix.Matrix) error {
			return m.ShowPattern(p)
		})
	},
}

func init() {
	rootCmd.AddCommand(patternCmd)
}

func patternNames() []string {
	patterns := ledmatrix.Patterns()
	names := make([]string, len(patterns))
	for i, p := range patterns {
		names[i] = p.String()
	}
	return names
}

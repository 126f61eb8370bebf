/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/allbin/go-ledmatrix"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List attached LED matrices",
	Long: `List the serial ports of every attached LED matrix, identified by
USB vendor ID 32ac and product ID 0020.

With --all every serial port is listed, matrix or not, which helps when a
module does not show up.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		tableFormat, _ := cmd.Flags().GetBool("table")

		ports, err := ledmatrix.DefaultEnumerator().Ports()
		if err != nil {
			return fmt.Errorf("%w: %w", ledmatrix.ErrEnumeration, err)
		}
		if !all {
			ports = matricesOnly(ports)
		}

		if len(ports) == 0 {
			if all {
				fmt.Println("No serial ports found")
			} else {
				fmt.Println("No LED matrix found")
			}
			return nil
		}

		if tableFormat {
			renderTable(os.Stdout, ports)
		} else {
			renderSimple(os.Stdout, ports)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("all", "a", false, "List every serial port, not only LED matrices")
	listCmd.Flags().Bool("table", false, "Display output in a styled table format")
}

func matricesOnly(ports []ledmatrix.PortInfo) []ledmatrix.PortInfo {
	var out []ledmatrix.PortInfo
	for _, p := range ports {
		if p.IsMatrix() {
			out = append(out, p)
		}
	}
	return out
}

// renderTable renders the port list in a styled static table format
func renderTable(w io.Writer, ports []ledmatrix.PortInfo) {
	fmt.Fprintf(w, "Found %d port(s):\n\n", len(ports))

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Port", "Matrix", "VID:PID", "Serial", "Description")

	for _, p := range ports {
		usbID := "-"
		if p.IsUSB() {
			usbID = p.VendorID + ":" + p.ProductID
		}
		matrix := "no"
		if p.IsMatrix() {
			matrix = "yes"
		}
		t.Row(p.Path, matrix, usbID, valueOr(p.SerialNumber, "-"), p.Description)
	}

	fmt.Fprintln(w, t.Render())
}

// renderSimple renders the port list in simple text format
func renderSimple(w io.Writer, ports []ledmatrix.PortInfo) {
	for _, p := range ports {
		fmt.Fprintln(w, p.Path)
	}
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

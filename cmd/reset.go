/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/allbin/go-ledmatrix"
	"github.com/spf13/cobra"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset [port]",
	Short: "USB reset a hung LED matrix",
	Long: `Perform a USB-level reset on a matrix. This recovers a module whose
firmware stopped answering without physically unplugging it.

Without a port every attached matrix is reset. The device re-enumerates after
the reset, so its port path may change.

Requirements:
- usbreset utility must be installed (from usbutils package)
- Root/sudo permissions required for USB operations

Examples:
  sudo mctl reset
  sudo mctl reset /dev/ttyACM0`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ledmatrix.IsUSBResetAvailable() {
			fmt.Fprintln(os.Stderr, "Install with: sudo apt-get install usbutils")
			return ledmatrix.ErrUSBResetNotAvailable
		}

		if len(args) == 1 {
			fmt.Printf("Resetting USB device: %s\n", args[0])
			if err := ledmatrix.ResetUSBDevice(args[0]); err != nil {
				if errors.Is(err, ledmatrix.ErrUSBInfoNotAvailable) {
					fmt.Fprintln(os.Stderr, "This device does not appear to be a USB device")
				}
				return err
			}
			fmt.Println("USB device reset successfully")
		} else {
			reset, err := ledmatrix.ResetMatrices()
			for _, path := range reset {
				fmt.Printf("Reset %s\n", path)
			}
			if err != nil {
				return err
			}
			if len(reset) == 0 {
				fmt.Println("No LED matrix found")
				return nil
			}
		}

		fmt.Println("Device will re-enumerate (port path may change)")
		fmt.Println("\nUse 'mctl list --table' to see updated device list")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

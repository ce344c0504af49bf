package vkbd

import (
	"fmt"

	"github.com/dasdy/vkbd/inject"
	"github.com/spf13/cobra"
)

// devicesCmd represents the devices command.
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List serial ports that look like bridges",
	RunE: func(cmd *cobra.Command, _ []string) error {
		names, err := inject.AvailableDevices()
		if err != nil {
			return err
		}

		if len(names) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No serial ports found")

			return nil
		}

		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

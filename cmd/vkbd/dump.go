package vkbd

import (
	"github.com/spf13/cobra"
)

// dumpCmd represents the dump command.
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the arranged layouts",
	Long:  `Loads and arranges the layout file, then prints every layout, row and key with its geometry.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		kb, err := buildKeyboard()
		if err != nil {
			return err
		}

		return kb.Dump(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

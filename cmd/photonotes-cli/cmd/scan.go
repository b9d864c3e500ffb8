package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [folder]",
	Short: "Read every photo of a folder",
	Long: `Read every photo of a folder and report how many could be loaded.
Files that cannot be read are listed on stderr.

Examples:
  photonotes-cli scan
  photonotes-cli scan ~/Pictures/Holiday`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := ""
		if len(args) == 1 {
			root = args[0]
		}

		result, err := loadLibrary(cmd.Context(), root)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

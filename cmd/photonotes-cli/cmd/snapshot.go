package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"photonotes/internal/application/commands"
)

var importDryRun bool

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export notes and edits as JSON",
	Long: `Write every saved note and edit to a JSON snapshot. Without a file,
or with "-", the snapshot is printed.

Examples:
  photonotes-cli export backup.json
  photonotes-cli export | jq .`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}

		a := GetApp()
		result, err := commands.NewExportCommand(a.Store, a.Snapshots, path).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if result.Path == "" {
			os.Stdout.Write(result.Data)
			fmt.Println()
			return nil
		}
		fmt.Println(result.Message)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace notes and edits with a JSON snapshot",
	Long: `Replace every saved note and edit with the contents of a snapshot.
An invalid file leaves the saved data untouched. Use --dry-run to see what
would change.

Examples:
  photonotes-cli import backup.json
  photonotes-cli import --dry-run backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if importDryRun {
			return runDiff(cmd, args[0])
		}

		a := GetApp()
		result, err := commands.NewImportCommand(a.Store, a.Snapshots, a.Sessions, nil, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff <file>",
	Short: "Compare saved notes and edits with a JSON snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiff(cmd, args[0])
	},
}

func runDiff(cmd *cobra.Command, path string) error {
	a := GetApp()
	result, err := commands.NewDiffCommand(a.Store, a.Snapshots, path).Execute(cmd.Context())
	if err != nil {
		return err
	}
	if result.Changed {
		fmt.Print(result.Diff)
		return nil
	}
	fmt.Println(result.Message)
	return nil
}

func init() {
	importCmd.Flags().BoolVarP(&importDryRun, "dry-run", "n", false, "show the changes without importing")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(diffCmd)
}

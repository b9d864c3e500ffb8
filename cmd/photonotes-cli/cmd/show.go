package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"photonotes/internal/application"
	"photonotes/internal/domain"
)

var showCmd = &cobra.Command{
	Use:   "show <identity>",
	Short: "Show every attribute of one photo",
	Long: `Show the attributes of one photo, read from the file and merged with
any saved notes and edits. When the file is gone the saved values are shown.

Examples:
  photonotes-cli show Pictures/2023/IMG_0042.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		identity := args[0]

		r, err := buildRecord(ctx, identity)
		if err == nil {
			printRecord(r)
			return nil
		}

		stored, getErr := GetApp().Store.Get(ctx, identity)
		if getErr != nil {
			return getErr
		}
		if stored == nil {
			return fmt.Errorf("%w: %s (%v)", application.ErrNotFound, identity, err)
		}
		printStored(stored)
		return nil
	},
}

// buildRecord reads a single photo of the library without scanning the
// whole folder
func buildRecord(ctx context.Context, identity string) (*domain.ImageRecord, error) {
	a := GetApp()
	path, err := a.Viewer.Resolve(identity)
	if err != nil {
		return nil, err
	}
	file, err := a.Files.Stat(a.Config.LibraryPath(), path)
	if err != nil {
		return nil, err
	}
	return a.Builder.Build(ctx, file)
}

var openCmd = &cobra.Command{
	Use:   "open <identity>",
	Short: "Open a photo in the system viewer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return GetApp().Viewer.OpenIdentity(args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(openCmd)
}

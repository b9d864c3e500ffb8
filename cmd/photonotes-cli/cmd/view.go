package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"photonotes/internal/application/commands"
	"photonotes/internal/domain"
)

var (
	viewNotesOnly bool
	viewModel     string
	viewOrder     string
	viewMonth     string
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "List photos grouped by month",
	Long: `List the photos of the library grouped by the month they were taken.
Photos without a readable date are listed last.

Examples:
  photonotes-cli view
  photonotes-cli view --order asc --notes
  photonotes-cli view --model "X100V"
  photonotes-cli view --month 2023-5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		direction, err := domain.ParseSortDirection(viewOrder)
		if err != nil {
			return err
		}
		if _, err := loadLibrary(ctx, ""); err != nil {
			return err
		}

		filter := domain.FilterSpec{NotesOnly: viewNotesOnly, Model: viewModel}
		result, err := commands.NewViewCommand(GetApp().Gallery, filter, direction, viewMonth).Execute(ctx)
		if err != nil {
			return err
		}

		if result.Selection != nil {
			printIdentities(result.Selection.Matching)
			return nil
		}
		printView(result.View)
		return nil
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the camera models of the library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadLibrary(cmd.Context(), ""); err != nil {
			return err
		}
		for _, m := range GetApp().Gallery.Models() {
			fmt.Println(m)
		}
		return nil
	},
}

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "List the months of the library with photo counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadLibrary(cmd.Context(), ""); err != nil {
			return err
		}
		for _, p := range GetApp().Gallery.Timeline() {
			fmt.Printf("%-8s %-16s %4d  %s\n", p.Key, p.Label, p.Count, p.Anchor)
		}
		return nil
	},
}

func init() {
	viewCmd.Flags().BoolVarP(&viewNotesOnly, "notes", "n", false, "only photos with notes")
	viewCmd.Flags().StringVarP(&viewModel, "model", "m", "", "only photos taken with this camera model")
	viewCmd.Flags().StringVarP(&viewOrder, "order", "o", "desc", "sort by date: asc or desc")
	viewCmd.Flags().StringVar(&viewMonth, "month", "", "only list one month, e.g. 2023-5 or unknown")

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(timelineCmd)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"photonotes/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find photos by path, notes or camera",
	Long: `Search the photos of the library with fuzzy matching on the file path,
the notes, the camera make and model and the artist.

Examples:
  photonotes-cli search sunset
  photonotes-cli search "x100"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if _, err := loadLibrary(ctx, ""); err != nil {
			return err
		}

		results, err := commands.NewSearchCommand(GetApp().Gallery, strings.Join(args, " ")).Execute(ctx)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No matches.")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%-40s %s\n", r.Record.Identity, firstLine(r.MatchedText))
		}
		return nil
	},
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

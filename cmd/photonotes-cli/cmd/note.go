package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"photonotes/internal/adapters/editor"
	"photonotes/internal/application/commands"
	"photonotes/internal/domain"
)

var noteClear bool

var noteCmd = &cobra.Command{
	Use:   "note <identity> [text...]",
	Short: "Write the notes of a photo",
	Long: `Replace the notes of a photo. Without text the current notes are
opened in $EDITOR.

Examples:
  photonotes-cli note Holiday/IMG_001.jpg "First swim of the year"
  photonotes-cli note Holiday/IMG_001.jpg
  photonotes-cli note --clear Holiday/IMG_001.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		identity := args[0]

		var notes string
		switch {
		case noteClear:
			notes = ""
		case len(args) > 1:
			notes = strings.Join(args[1:], " ")
		default:
			text, err := editNotes(ctx, identity)
			if err != nil {
				return err
			}
			notes = text
		}

		result, err := commands.NewNoteCommand(GetApp().Store, nil, identity, notes).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

// editNotes opens the saved notes of identity in the user's editor and
// returns the edited text
func editNotes(ctx context.Context, identity string) (string, error) {
	a := GetApp()
	stored, err := a.Store.Get(ctx, identity)
	if err != nil {
		return "", err
	}

	current := ""
	if stored != nil {
		current, _ = stored.Override.Get(domain.FieldNotes)
	}

	draft, err := editor.NewDraft(current)
	if err != nil {
		return "", err
	}
	defer draft.Remove()

	if err := a.Editor.OpenFile(draft.Path); err != nil {
		return "", fmt.Errorf("editor failed: %w", err)
	}
	return draft.Read()
}

var editCmd = &cobra.Command{
	Use:   "edit <identity> <field> <value>",
	Short: "Correct one attribute of a photo",
	Long: `Override one attribute of a photo. Fields are dateCreated, make, model,
software, artist and notes. An empty value restores what the file says.

Examples:
  photonotes-cli edit Holiday/IMG_001.jpg dateCreated "2023-05-15 10:30:00"
  photonotes-cli edit Holiday/IMG_001.jpg model ""`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := commands.PatchField(args[1], args[2])
		if err != nil {
			return err
		}

		result, err := commands.NewEditCommand(GetApp().Store, nil, args[0], patch).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	noteCmd.Flags().BoolVar(&noteClear, "clear", false, "remove the notes")

	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(editCmd)
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"photonotes/internal/app"
	"photonotes/internal/application"
	"photonotes/internal/application/commands"
	"photonotes/internal/config"
)

var (
	libraryPath string
	dbPath      string
	workers     int
	verbose     bool

	svc *app.App
)

var rootCmd = &cobra.Command{
	Use:   "photonotes-cli",
	Short: "CLI for annotating a folder of photos",
	Long: `photonotes-cli reads the photos of a folder, groups them by the month
they were taken and keeps notes and corrected metadata for each of them.

Notes and edits are saved in a local database and can be exported to, or
replaced from, a JSON snapshot file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg := config.Load()
		if cmd.Flags().Changed("library") {
			cfg.Library = libraryPath
		}
		if cmd.Flags().Changed("db") {
			cfg.Database = dbPath
		}
		if cmd.Flags().Changed("workers") {
			cfg.Workers = workers
		}

		svc = app.Open(context.Background(), cfg, app.Options{
			Name:       "photonotes-cli",
			NoTerminal: !verbose,
		})
		if svc.Degraded {
			fmt.Fprintln(os.Stderr, "warning: metadata database unavailable, changes will not be saved")
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if svc == nil {
			return nil
		}
		return svc.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&libraryPath, "library", "l", config.DefaultLibraryPath, "folder of photos")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "metadata database file")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", config.DefaultWorkers, "photos read in parallel")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log to stderr")
}

// GetApp returns the initialized application
func GetApp() *app.App {
	return svc
}

// loadLibrary scans root, or the configured library when root is empty,
// into the gallery. Files that could not be read are reported on stderr.
func loadLibrary(ctx context.Context, root string) (*commands.IngestResult, error) {
	a := GetApp()
	if root == "" {
		root = a.Config.LibraryPath()
	}

	scan := commands.NewIngestCommand(a.Files, a.Builder, a.Sessions, a.Gallery, a.Log, root, a.Config.Workers)
	result, err := scan.Execute(ctx)
	if err != nil {
		var batch *application.BatchError
		if errors.As(err, &batch) {
			printFailures(batch.Failures)
		}
		return nil, err
	}
	printFailures(result.Failures)
	return result, nil
}

func printFailures(failures []application.FileError) {
	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "skipped %s: %v\n", f.Identity, f.Err)
	}
}

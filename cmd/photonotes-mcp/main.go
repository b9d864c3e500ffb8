package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "photonotes/internal/adapters/mcp"
	"photonotes/internal/app"
	"photonotes/internal/application/commands"
	"photonotes/internal/config"
)

func main() {
	cfg := config.Load()
	libraryFlag := flag.String("library", cfg.LibraryPath(), "folder of photos to load on start")
	noScan := flag.Bool("no-scan", false, "do not scan the library on start")
	flag.Parse()

	ctx := context.Background()
	a := app.Open(ctx, cfg, app.Options{Name: "photonotes-mcp"})
	defer a.Close()

	deps := &mcpadapter.Deps{
		Store:     a.Store,
		Files:     a.Files,
		Snapshots: a.Snapshots,
		Builder:   a.Builder,
		Sessions:  a.Sessions,
		Gallery:   a.Gallery,
		Log:       a.Log.Named("mcp"),
		Library:   *libraryFlag,
		Workers:   cfg.Workers,
	}

	mcpServer := server.NewMCPServer(
		"photonotes-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if a.Degraded {
				return mcp.NewToolResultText("pong (metadata database unavailable, edits are not saved)"), nil
			}
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	if !*noScan {
		go func() {
			scan := commands.NewIngestCommand(a.Files, a.Builder, a.Sessions, a.Gallery, deps.Log, *libraryFlag, cfg.Workers)
			result, err := scan.Execute(ctx)
			if err != nil {
				deps.Log.Warn("initial scan of %s: %v", *libraryFlag, err)
				return
			}
			deps.Log.Info("%s", result.Message)
		}()
	}

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("photonotes-mcp: %v", err)
	}
}

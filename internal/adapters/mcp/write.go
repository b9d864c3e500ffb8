package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"photonotes/internal/application/commands"
)

// RegisterWriteTools adds the tools that change saved metadata to the MCP server.
func RegisterWriteTools(s *server.MCPServer, d *Deps) {
	s.AddTool(saveNoteTool(), saveNoteHandler(d))
	s.AddTool(editMetadataTool(), editMetadataHandler(d))
	s.AddTool(exportSnapshotTool(), exportSnapshotHandler(d))
	s.AddTool(importSnapshotTool(), importSnapshotHandler(d))
	s.AddTool(diffSnapshotTool(), diffSnapshotHandler(d))
}

// --- save_note ---

func saveNoteTool() mcp.Tool {
	return mcp.NewTool("save_note",
		mcp.WithDescription("Replace the notes of a photo. An empty text clears them."),
		mcp.WithString("identity",
			mcp.Description("Photo identity, e.g. Holiday/IMG_001.jpg"),
			mcp.Required(),
		),
		mcp.WithString("notes",
			mcp.Description("Free text notes"),
			mcp.Required(),
		),
	)
}

func saveNoteHandler(d *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		identity := req.GetString("identity", "")
		notes := req.GetString("notes", "")

		result, err := commands.NewNoteCommand(d.Store, d.Gallery, identity, notes).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- edit_metadata ---

func editMetadataTool() mcp.Tool {
	return mcp.NewTool("edit_metadata",
		mcp.WithDescription("Override one attribute of a photo. An empty value restores the value read from the file."),
		mcp.WithString("identity",
			mcp.Description("Photo identity, e.g. Holiday/IMG_001.jpg"),
			mcp.Required(),
		),
		mcp.WithString("field",
			mcp.Description("Attribute to change"),
			mcp.Enum("dateCreated", "make", "model", "software", "artist", "notes"),
			mcp.Required(),
		),
		mcp.WithString("value",
			mcp.Description("New value. Dates use the form 2023-05-15 10:30:00."),
			mcp.Required(),
		),
	)
}

func editMetadataHandler(d *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		patch, err := commands.PatchField(req.GetString("field", ""), req.GetString("value", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewEditCommand(d.Store, d.Gallery, req.GetString("identity", ""), patch).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- export_snapshot ---

func exportSnapshotTool() mcp.Tool {
	return mcp.NewTool("export_snapshot",
		mcp.WithDescription("Export every saved note and edit as a JSON snapshot. Without a path the snapshot is returned."),
		mcp.WithString("path",
			mcp.Description("File to write"),
		),
	)
}

func exportSnapshotHandler(d *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewExportCommand(d.Store, d.Snapshots, req.GetString("path", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if result.Path == "" {
			return mcp.NewToolResultText(string(result.Data)), nil
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- import_snapshot ---

func importSnapshotTool() mcp.Tool {
	return mcp.NewTool("import_snapshot",
		mcp.WithDescription("Replace all saved notes and edits with the contents of a JSON snapshot file. Nothing changes if the file is invalid."),
		mcp.WithString("path",
			mcp.Description("Snapshot file to import"),
			mcp.Required(),
		),
	)
}

func importSnapshotHandler(d *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewImportCommand(d.Store, d.Snapshots, d.Sessions, d.Gallery, req.GetString("path", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- diff_snapshot ---

func diffSnapshotTool() mcp.Tool {
	return mcp.NewTool("diff_snapshot",
		mcp.WithDescription("Show what importing a snapshot file would change, as a unified diff."),
		mcp.WithString("path",
			mcp.Description("Snapshot file to compare"),
			mcp.Required(),
		),
	)
}

func diffSnapshotHandler(d *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDiffCommand(d.Store, d.Snapshots, req.GetString("path", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if !result.Changed {
			return mcp.NewToolResultText(result.Message), nil
		}
		return mcp.NewToolResultText(result.Diff), nil
	}
}

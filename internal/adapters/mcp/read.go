package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"photonotes/internal/application"
	"photonotes/internal/application/commands"
	"photonotes/internal/domain"
)

// RegisterReadTools adds the scanning and browsing tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, d *Deps) {
	s.AddTool(scanTool(), scanHandler(d))
	s.AddTool(viewTool(), viewHandler(d))
	s.AddTool(getMetadataTool(), getMetadataHandler(d))
	s.AddTool(modelsTool(), modelsHandler(d))
	s.AddTool(timelineTool(), timelineHandler(d))
	s.AddTool(navigateTool(), navigateHandler(d))
	s.AddTool(searchTool(), searchHandler(d))
}

// --- scan ---

func scanTool() mcp.Tool {
	return mcp.NewTool("scan",
		mcp.WithDescription("Scan a folder of photos and load them, merging any saved notes and edits. Replaces the previously loaded folder."),
		mcp.WithString("path",
			mcp.Description("Folder to scan. Defaults to the configured library."),
		),
	)
}

func scanHandler(d *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root := req.GetString("path", d.Library)

		cmd := commands.NewIngestCommand(d.Files, d.Builder, d.Sessions, d.Gallery, d.Log, root, d.Workers)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- view ---

func viewTool() mcp.Tool {
	return mcp.NewTool("view",
		mcp.WithDescription("List the loaded photos grouped by month. Photos without a capture date are listed last."),
		mcp.WithBoolean("notes_only",
			mcp.Description("Only list photos that have notes"),
		),
		mcp.WithString("model",
			mcp.Description("Only list photos taken with this camera model"),
		),
		mcp.WithString("order",
			mcp.Description("Sort order by capture date"),
			mcp.Enum("desc", "asc"),
		),
		mcp.WithString("month",
			mcp.Description("Mark the photos of one month, e.g. 2023-5 or unknown"),
		),
	)
}

func viewHandler(d *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		direction, err := domain.ParseSortDirection(req.GetString("order", "desc"))
		if err != nil {
			return toolError(err)
		}
		filter := domain.FilterSpec{
			NotesOnly: req.GetBool("notes_only", false),
			Model:     req.GetString("model", ""),
		}

		cmd := commands.NewViewCommand(d.Gallery, filter, direction, req.GetString("month", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		selected := map[string]bool{}
		if result.Selection != nil {
			for _, id := range result.Selection.Matching {
				selected[id] = true
			}
		}
		return mcp.NewToolResultText(result.Message + "\n\n" + formatView(result.View, selected)), nil
	}
}

// --- get_metadata ---

func getMetadataTool() mcp.Tool {
	return mcp.NewTool("get_metadata",
		mcp.WithDescription("Show every attribute of one photo. Falls back to the saved edits when the photo is not loaded."),
		mcp.WithString("identity",
			mcp.Description("Photo identity, e.g. Holiday/IMG_001.jpg"),
			mcp.Required(),
		),
	)
}

func getMetadataHandler(d *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		identity := req.GetString("identity", "")
		if err := application.ValidateRequired("identity", identity); err != nil {
			return toolError(err)
		}

		if r, ok := d.Gallery.Record(identity); ok {
			return mcp.NewToolResultText(formatRecord(r)), nil
		}

		m, err := d.Store.Get(ctx, identity)
		if err != nil {
			return toolError(err)
		}
		if m == nil {
			return toolError(fmt.Errorf("%w: %s", application.ErrNotFound, identity))
		}
		return mcp.NewToolResultText(formatStored(m)), nil
	}
}

// --- models ---

func modelsTool() mcp.Tool {
	return mcp.NewTool("models",
		mcp.WithDescription("List the camera models of the loaded photos."),
	)
}

func modelsHandler(d *Deps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return formatEntities(d.Gallery.Models(), func(m string) string { return m })
	}
}

// --- timeline ---

func timelineTool() mcp.Tool {
	return mcp.NewTool("timeline",
		mcp.WithDescription("List the months of the current view with photo counts and the first photo of each month."),
	)
}

func timelineHandler(d *Deps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return formatEntities(d.Gallery.Timeline(), formatTimePoint)
	}
}

// --- navigate ---

func navigateTool() mcp.Tool {
	return mcp.NewTool("navigate",
		mcp.WithDescription("Select a month of the current view and return its photos. Selecting the same month again clears the selection."),
		mcp.WithString("month",
			mcp.Description("Month to select, e.g. 2023-5 or unknown"),
			mcp.Required(),
		),
	)
}

func navigateHandler(d *Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := application.ValidateMonth(req.GetString("month", ""))
		if err != nil {
			return toolError(err)
		}

		res := d.Gallery.Select(key)
		switch {
		case res.Deselected:
			return mcp.NewToolResultText(fmt.Sprintf("Cleared selection of %s.", key.Label())), nil
		case !res.Found():
			return mcp.NewToolResultText(fmt.Sprintf("No photos in %s.", key.Label())), nil
		}

		return formatEntities(res.Matching, func(id string) string {
			if id == res.Anchor {
				return id + "  (anchor)"
			}
			return id
		})
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Fuzzy search the loaded photos by path, notes, camera and artist."),
		mcp.WithString("query",
			mcp.Description("Text to look for, at least two characters"),
			mcp.Required(),
		),
	)
}

func searchHandler(d *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		results, err := commands.NewSearchCommand(d.Gallery, req.GetString("query", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(results, func(r commands.SearchResult) string {
			return fmt.Sprintf("%s  (%s)", r.Record.Identity, r.MatchedText)
		})
	}
}

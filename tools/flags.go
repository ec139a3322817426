package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"compiledb-mcp/compdb"
)

// FlagsArgs defines the input parameters for the compiledb_flags tool.
type FlagsArgs struct {
	File string `json:"file" jsonschema:"Source file path (absolute or relative to the server working directory)"`
}

// FlagsHandler holds the dependencies for the flags tool.
type FlagsHandler struct {
	Projects  *compdb.Holder
	Normalize compdb.PathNormalizer // nil means compdb.NormalizePath
	Logger    *slog.Logger
}

// Handle processes a compiledb_flags request. Files absent from the index
// get a best-effort answer inferred from the closest known entry.
func (h *FlagsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args FlagsArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.File == "" {
		h.Logger.Warn("compiledb_flags called with empty file")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "Error: file parameter is required"}},
			IsError: true,
		}, nil, nil
	}

	normalize := h.Normalize
	if normalize == nil {
		normalize = compdb.NormalizePath
	}
	filename := normalize(args.File)

	entry, ok := h.Projects.Current().FindEntry(filename)
	if !ok {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "No compile flags available: the index is empty."}},
		}, nil, nil
	}

	h.Logger.Info("compiledb_flags",
		"file", filename,
		"inferred", entry.IsInferred,
		"args", len(entry.Args),
		"elapsed", time.Since(start),
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatEntry(entry)}},
	}, nil, nil
}

package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ReloadArgs defines the input parameters for the compiledb_reload tool.
type ReloadArgs struct{}

// ReloadFunc is the function signature for the reload operation.
// It is provided by main.go to avoid circular dependencies.
type ReloadFunc func() (entryCount int, elapsed string, err error)

// ReloadHandler holds the dependencies for the reload tool.
type ReloadHandler struct {
	DoReload ReloadFunc
	Logger   *slog.Logger
}

// Handle processes a compiledb_reload request.
func (h *ReloadHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ReloadArgs) (*mcp.CallToolResult, any, error) {
	h.Logger.Info("compiledb_reload started")

	entryCount, elapsed, err := h.DoReload()
	if err != nil {
		h.Logger.Error("compiledb_reload failed", "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Reload error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	h.Logger.Info("compiledb_reload complete",
		"entries", entryCount,
		"elapsed", elapsed,
	)

	output := fmt.Sprintf("reloaded: %d compile entries in %s", entryCount, elapsed)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: output}},
	}, nil, nil
}

package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"compiledb-mcp/compdb"
)

// IncludeDirsArgs defines the input parameters for the
// compiledb_include_dirs tool (none required).
type IncludeDirsArgs struct{}

// IncludeDirsHandler holds the dependencies for the include-dirs tool.
type IncludeDirsHandler struct {
	Projects *compdb.Holder
	Logger   *slog.Logger
}

// Handle processes a compiledb_include_dirs request, listing the quote
// and angle include search paths discovered during loading.
func (h *IncludeDirsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args IncludeDirsArgs) (*mcp.CallToolResult, any, error) {
	project := h.Projects.Current()

	h.Logger.Info("compiledb_include_dirs",
		"quote", len(project.QuoteIncludeDirectories),
		"angle", len(project.AngleIncludeDirectories),
	)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Quote include directories (%d):\n", len(project.QuoteIncludeDirectories)))
	for _, dir := range project.QuoteIncludeDirectories {
		builder.WriteString("  " + dir + "\n")
	}
	builder.WriteString(fmt.Sprintf("\nAngle include directories (%d):\n", len(project.AngleIncludeDirectories)))
	for _, dir := range project.AngleIncludeDirectories {
		builder.WriteString("  " + dir + "\n")
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: builder.String()}},
	}, nil, nil
}

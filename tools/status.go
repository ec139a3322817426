package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"compiledb-mcp/compdb"
)

// StatusArgs defines the input parameters for the compiledb_status tool (none required).
type StatusArgs struct{}

// StatusHandler holds the dependencies for the status tool.
type StatusHandler struct {
	Projects  *compdb.Holder
	StartTime time.Time
	RootDir   string
	DBDir     string
	Logger    *slog.Logger
}

// Handle processes a compiledb_status request.
func (h *StatusHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
	var builder strings.Builder

	project := h.Projects.Current()
	entryCount := project.EntryCount()
	uptime := time.Since(h.StartTime)

	// Memory stats
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	h.Logger.Info("compiledb_status",
		"entries", entryCount,
		"memory", memStats.Alloc,
		"uptime", uptime,
	)

	builder.WriteString("=== compiledb-mcp Status ===\n\n")
	builder.WriteString(fmt.Sprintf("Root directory: %s\n", h.RootDir))
	if h.DBDir != h.RootDir {
		builder.WriteString(fmt.Sprintf("Compilation database directory: %s\n", h.DBDir))
	}
	builder.WriteString(fmt.Sprintf("Uptime: %s\n", formatDuration(uptime)))
	if project.LoadMode != "" {
		builder.WriteString(fmt.Sprintf("Load mode: %s\n", project.LoadMode))
	}
	builder.WriteString(fmt.Sprintf("Compile entries: %d\n", entryCount))
	builder.WriteString(fmt.Sprintf("Quote include directories: %d\n", len(project.QuoteIncludeDirectories)))
	builder.WriteString(fmt.Sprintf("Angle include directories: %d\n", len(project.AngleIncludeDirectories)))
	builder.WriteString(fmt.Sprintf("Memory usage: %s (heap: %s)\n",
		formatMemory(memStats.Alloc),
		formatMemory(memStats.HeapAlloc),
	))

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: builder.String()}},
	}, nil, nil
}

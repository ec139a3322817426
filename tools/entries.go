package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"compiledb-mcp/compdb"
	"compiledb-mcp/match"
)

// EntriesArgs defines the input parameters for the compiledb_entries tool.
type EntriesArgs struct {
	Whitelist  []string `json:"whitelist,omitempty" jsonschema:"Glob patterns a filename must match (e.g. /src/**/*.cc); empty admits everything"`
	Blacklist  []string `json:"blacklist,omitempty" jsonschema:"Glob patterns that exclude matching filenames"`
	NameOnly   bool     `json:"nameOnly,omitempty" jsonschema:"If true return only filenames without argument counts"`
	MaxResults int      `json:"maxResults,omitempty" jsonschema:"Maximum number of entries to return (default 50)"`
}

// EntriesHandler holds the dependencies for the entries tool. The default
// pattern lists come from the CLI and apply when a request supplies none.
type EntriesHandler struct {
	Projects         *compdb.Holder
	DefaultWhitelist []string
	DefaultBlacklist []string
	LogSkipped       bool
	Logger           *slog.Logger
}

// Handle processes a compiledb_entries request.
func (h *EntriesHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args EntriesArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	whitelist := args.Whitelist
	blacklist := args.Blacklist
	if len(whitelist) == 0 && len(blacklist) == 0 {
		whitelist = h.DefaultWhitelist
		blacklist = h.DefaultBlacklist
	}

	matcher, err := match.New(whitelist, blacklist)
	if err != nil {
		h.Logger.Error("compiledb_entries failed", "error", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Pattern error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	maxResults := args.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	project := h.Projects.Current()
	var results []compdb.Entry
	total := 0
	project.ForAllFiltered(matcher, h.LogSkipped, func(i int, entry compdb.Entry) {
		total++
		if len(results) < maxResults {
			results = append(results, entry)
		}
	})

	h.Logger.Info("compiledb_entries",
		"matched", total,
		"returned", len(results),
		"elapsed", time.Since(start),
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatEntries(results, total, args.NameOnly)}},
	}, nil, nil
}

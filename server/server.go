package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"compiledb-mcp/tools"
)

// Setup creates and configures the MCP server with all tool registrations.
func Setup(
	flagsHandler *tools.FlagsHandler,
	entriesHandler *tools.EntriesHandler,
	includeDirsHandler *tools.IncludeDirsHandler,
	statusHandler *tools.StatusHandler,
	reloadHandler *tools.ReloadHandler,
) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "compiledb-mcp",
			Version: "0.3.0",
		},
		&mcp.ServerOptions{
			Instructions: `This server answers compile-flag questions for C/C++/Objective-C projects from an in-memory index of the project's compilation database (compile_commands.json or compile_flags.txt).

ALWAYS prefer these tools over parsing build files yourself:
- Use compiledb_flags to get the exact compiler invocation for a source file. Files missing from the database still get an answer, inferred from the closest indexed file.
- Use compiledb_entries to list indexed translation units, optionally filtered by glob patterns
- Use compiledb_include_dirs for the project's include search paths
- The index reloads automatically when the compilation database changes (via filesystem watcher)`,
		},
	)

	// Register compiledb_flags tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "compiledb_flags",
		Description: `Look up the compiler command line for a source file.

The returned arguments are normalized: compiler wrappers are stripped, dependency-generation flags are removed, relative include paths are rewritten to absolute ones, and a language standard is injected when the build did not set one.

Files absent from the compilation database get a best-effort answer inferred from the closest indexed file (marked as inferred in the output).`,
	}, flagsHandler.Handle)

	// Register compiledb_entries tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "compiledb_entries",
		Description: `List indexed translation units, optionally filtered by glob patterns.

Filtering:
  - whitelist: only filenames matching one of these patterns are returned (e.g. "/proj/src/**/*.cc")
  - blacklist: filenames matching one of these patterns are excluded (e.g. "**/third_party/**")
When neither list is given, the server's command-line patterns apply.`,
	}, entriesHandler.Handle)

	// Register compiledb_include_dirs tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "compiledb_include_dirs",
		Description: `List the project's include search directories, split into quote (-iquote) and angle (-I, -isystem) sets, deduplicated and sorted.`,
	}, includeDirsHandler.Handle)

	// Register compiledb_status tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "compiledb_status",
		Description: "Show index status: entry count, include directory counts, memory usage, and uptime.",
	}, statusHandler.Handle)

	// Register compiledb_reload tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "compiledb_reload",
		Description: "Force a full reload of the compilation database. Discards the current index and rebuilds it from disk.",
	}, reloadHandler.Handle)

	return mcpServer
}

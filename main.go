package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"compiledb-mcp/compdb"
	"compiledb-mcp/match"
	"compiledb-mcp/register"
	"compiledb-mcp/server"
	"compiledb-mcp/tools"
	"compiledb-mcp/watcher"
)

// stringList is a repeatable CLI flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ", ") }
func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func main() {
	// The register subcommand writes MCP client config and exits.
	if len(os.Args) > 1 && os.Args[1] == "register" {
		serverName := register.DeriveServerName(os.Args[0])
		if err := register.Run(serverName, os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n%s", err, register.Usage())
			os.Exit(1)
		}
		return
	}

	// Parse CLI flags
	var rootDir string
	var dbDir string
	var resourceDir string
	var logSkipped bool
	var logLevel string
	var logFile string
	var extraFlags stringList
	var whitelist stringList
	var blacklist stringList

	flag.StringVar(&rootDir, "root", "", "Project root directory (default: current working directory)")
	flag.StringVar(&dbDir, "db-dir", "", "Directory holding compile_commands.json (default: project root)")
	flag.StringVar(&resourceDir, "resource-dir", "", "Compiler resource directory to inject (default: none)")
	flag.Var(&extraFlags, "extra-flag", "Extra compiler flag appended to every entry (repeatable)")
	flag.Var(&whitelist, "whitelist", "Glob pattern entries must match (repeatable)")
	flag.Var(&blacklist, "blacklist", "Glob pattern excluding entries (repeatable)")
	flag.BoolVar(&logSkipped, "log-skipped", false, "Log entries skipped by the filter patterns")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (default: compiledb-mcp.log in the project root)")
	flag.Parse()

	// Resolve root directory
	if rootDir == "" {
		var err error
		rootDir, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
			os.Exit(1)
		}
	}
	rootDir, _ = filepath.Abs(rootDir)
	if dbDir == "" {
		dbDir = rootDir
	}
	dbDir, _ = filepath.Abs(dbDir)

	if logFile == "" {
		logFile = filepath.Join(rootDir, "compiledb-mcp.log")
	}

	// Setup logger (always to file or stderr, never to stdout - stdout is for MCP stdio)
	logger := setupLogger(logLevel, logFile)

	logger.Info("starting compiledb-mcp",
		"root", rootDir,
		"dbDir", dbDir,
		"resourceDir", resourceDir,
		"extraFlags", len(extraFlags),
	)

	startTime := time.Now()

	loadOptions := compdb.LoadOptions{
		RootDir:          rootDir,
		CompilationDBDir: dbDir,
		ExtraFlags:       extraFlags,
		ResourceDir:      resourceDir,
		ScanFilter:       match.NewScanRules(rootDir),
		Logger:           logger,
	}

	// Perform initial load
	projects := compdb.NewHolder(compdb.Load(loadOptions))
	logger.Info("initial load complete",
		"entries", projects.Current().EntryCount(),
		"duration", time.Since(startTime),
	)

	doReload := func() (int, string, error) {
		start := time.Now()
		// Rebuild the scan rules too, in case .gitignore changed.
		options := loadOptions
		options.ScanFilter = match.NewScanRules(rootDir)
		project := compdb.Load(options)
		projects.Replace(project)
		return project.EntryCount(), time.Since(start).Round(time.Millisecond).String(), nil
	}

	// Watch the build-description files and reload when they change
	watchedFiles := []string{
		filepath.Join(rootDir, compdb.MarkerFileName),
		filepath.Join(dbDir, compdb.CompilationDBName),
	}
	buildWatcher, err := watcher.NewWatcher(watchedFiles, logger)
	if err != nil {
		logger.Warn("failed to start file watcher, continuing without live reloads", "error", err)
	} else {
		go buildWatcher.Start()
		go func() {
			for changed := range buildWatcher.Triggers() {
				logger.Info("build description changed, reloading", "files", changed)
				if _, _, err := doReload(); err != nil {
					logger.Error("reload failed", "error", err)
				}
			}
		}()
		defer buildWatcher.Close()
	}

	// Create tool handlers
	flagsHandler := &tools.FlagsHandler{Projects: projects, Logger: logger}
	entriesHandler := &tools.EntriesHandler{
		Projects:         projects,
		DefaultWhitelist: whitelist,
		DefaultBlacklist: blacklist,
		LogSkipped:       logSkipped,
		Logger:           logger,
	}
	includeDirsHandler := &tools.IncludeDirsHandler{Projects: projects, Logger: logger}
	statusHandler := &tools.StatusHandler{
		Projects:  projects,
		StartTime: startTime,
		RootDir:   rootDir,
		DBDir:     dbDir,
		Logger:    logger,
	}
	reloadHandler := &tools.ReloadHandler{DoReload: doReload, Logger: logger}

	// Setup and run MCP server on stdio
	mcpServer := server.Setup(flagsHandler, entriesHandler, includeDirsHandler, statusHandler, reloadHandler)

	logger.Info("MCP server starting on stdio")
	if err := mcpServer.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		logger.Error("MCP server error", "error", err)
		os.Exit(1)
	}
}

// setupLogger creates an slog.Logger writing to stderr or a file.
func setupLogger(level string, logFile string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var writer *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v, falling back to stderr\n", logFile, err)
			writer = os.Stderr
		} else {
			writer = f
		}
	} else {
		writer = os.Stderr
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}

package compdb

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	shellwords "github.com/mattn/go-shellwords"

	"compiledb-mcp/language"
)

// MarkerFileName is the project-root file whose presence forces
// directory-listing mode. One flag per line; blank lines and lines
// starting with # are ignored.
const MarkerFileName = "compile_flags.txt"

// CompilationDBName is the structured compilation database emitted by the
// build system.
const CompilationDBName = "compile_commands.json"

// ScanFilter prunes paths during directory-listing mode. A nil filter
// prunes nothing; every file with a recognized source extension gets an
// entry.
type ScanFilter interface {
	SkipDir(absolutePath string) bool
	SkipFile(absolutePath string) bool
}

// LoadOptions configures a project load.
type LoadOptions struct {
	RootDir          string
	CompilationDBDir string   // directory holding compile_commands.json; defaults to RootDir
	ExtraFlags       []string // appended verbatim to every entry
	ResourceDir      string
	Normalize        PathNormalizer // nil means NormalizePath
	ScanFilter       ScanFilter     // nil means no pruning
	Logger           *slog.Logger   // nil means slog.Default()
}

// Load reads the project's build description and returns the frozen
// index. Loading runs single-threaded; the returned Project is immutable
// and safe for concurrent readers. Load never fails outright: a missing
// or unparseable compilation database degrades to directory-listing mode
// with a warning.
func Load(options LoadOptions) *Project {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := NewProjectConfig(options.RootDir, options.ResourceDir, options.ExtraFlags)
	cfg.Normalize = options.Normalize

	entries, mode := loadEntries(cfg, options, logger)
	project := NewProject(entries, logger)
	project.LoadMode = mode
	project.QuoteIncludeDirectories = finishIncludeDirs(cfg.QuoteDirs)
	project.AngleIncludeDirectories = finishIncludeDirs(cfg.AngleDirs)
	logger.Info("project loaded",
		"mode", mode,
		"entries", len(project.Entries),
		"quoteIncludeDirs", len(project.QuoteIncludeDirectories),
		"angleIncludeDirs", len(project.AngleIncludeDirectories),
	)
	return project
}

// loadEntries picks the loading mode. A marker file at the project root
// always wins; otherwise the compilation database is attempted with the
// directory listing as fallback.
func loadEntries(cfg *ProjectConfig, options LoadOptions, logger *slog.Logger) ([]Entry, string) {
	if fileExists(filepath.Join(cfg.ProjectDir, MarkerFileName)) {
		return loadFromDirectoryListing(cfg, options, logger), MarkerFileName
	}

	dbDir := options.CompilationDBDir
	if dbDir == "" {
		dbDir = cfg.ProjectDir
	}
	logger.Info("trying to load "+CompilationDBName, "dir", dbDir)
	entries, err := loadCompilationDatabase(cfg, dbDir, logger)
	if err != nil {
		logger.Info("unable to load compilation database; using directory listing instead",
			"dir", dbDir,
			"error", err,
		)
		return loadFromDirectoryListing(cfg, options, logger), "directory listing"
	}
	return entries, CompilationDBName
}

// loadFromDirectoryListing synthesizes one compile command per source
// file under the project root, using the marker file's flags.
func loadFromDirectoryListing(cfg *ProjectConfig, options LoadOptions, logger *slog.Logger) []Entry {
	markerPath := filepath.Join(cfg.ProjectDir, MarkerFileName)
	args := readMarkerFlags(markerPath)
	if len(args) > 0 {
		logger.Info("using "+MarkerFileName+" arguments", "args", strings.Join(args, " "))
	}
	if !fileExists(markerPath) && len(cfg.ExtraFlags) == 0 {
		logger.Warn("no compiler arguments configured; consider adding a " +
			CompilationDBName + " or " + MarkerFileName + " to the project root")
	}

	var entries []Entry
	for _, file := range listSourceFiles(cfg.ProjectDir, options.ScanFilter) {
		cmd := CompileCommand{
			Directory: cfg.ProjectDir,
			File:      file,
			Args:      append(slices.Clone(args), file),
		}
		entries = append(entries, BuildEntry(cfg, cmd))
	}
	return entries
}

// readMarkerFlags reads the marker file, one flag per line, trimming
// whitespace and dropping blank and comment lines. A missing file yields
// no flags.
func readMarkerFlags(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var args []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args = append(args, line)
	}
	return args
}

// listSourceFiles enumerates all files under root with a recognized
// source extension, in lexical walk order, pruned by the scan filter.
func listSourceFiles(root string, filter ScanFilter) []string {
	var files []string
	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip entries that can't be read
		}
		if d.IsDir() {
			if path != root && filter != nil && filter.SkipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !language.IsSource(path) {
			return nil
		}
		if filter != nil && filter.SkipFile(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	return files
}

// compileCommandRecord is one element of compile_commands.json. Either
// arguments or command is present; command is a single shell-quoted
// string.
type compileCommandRecord struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Arguments []string `json:"arguments"`
	Command   string   `json:"command"`
}

// loadCompilationDatabase parses compile_commands.json and classifies
// every record. Records whose command string cannot be split are skipped
// with a warning rather than failing the whole load.
func loadCompilationDatabase(cfg *ProjectConfig, dbDir string, logger *slog.Logger) ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(dbDir, CompilationDBName))
	if err != nil {
		return nil, err
	}

	var records []compileCommandRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", CompilationDBName, err)
	}

	var entries []Entry
	for _, record := range records {
		args := record.Arguments
		if len(args) == 0 && record.Command != "" {
			args, err = shellwords.Parse(record.Command)
			if err != nil {
				logger.Warn("skipping record with unparseable command string",
					"file", record.File,
					"error", err,
				)
				continue
			}
		}

		file := record.File
		if !strings.HasPrefix(file, "/") && record.Directory != "" {
			file = record.Directory + "/" + file
		}

		entries = append(entries, BuildEntry(cfg, CompileCommand{
			Directory: record.Directory,
			File:      file,
			Args:      args,
		}))
	}
	return entries, nil
}

// finishIncludeDirs turns an accumulator set into the published form:
// deduplicated (the set), sorted for deterministic snapshots, every
// directory terminated with a path separator.
func finishIncludeDirs(dirs map[string]struct{}) []string {
	result := make([]string, 0, len(dirs))
	for dir := range dirs {
		if !strings.HasSuffix(dir, "/") {
			dir += "/"
		}
		result = append(result, dir)
	}
	sort.Strings(result)
	return result
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

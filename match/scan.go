package match

import (
	"os"
	"path/filepath"

	gitignore "github.com/denormal/go-gitignore"
)

// defaultSkipDirs are directories the directory-scan loader never
// descends into. These hold VCS metadata, editor state, or indexer
// caches, never translation units worth synthesizing entries for.
var defaultSkipDirs = map[string]struct{}{
	".git":        {},
	".svn":        {},
	".hg":         {},
	".cache":      {},
	".idea":       {},
	".vscode":     {},
	".ccls-cache": {},
}

// ScanRules prunes the directory-scan loader's traversal: well-known junk
// directories plus anything the project's .gitignore excludes. It
// satisfies the loader's ScanFilter contract.
type ScanRules struct {
	rootDir   string
	gitIgnore gitignore.GitIgnore
}

// NewScanRules loads .gitignore from the project root, if present.
func NewScanRules(rootDir string) *ScanRules {
	return &ScanRules{
		rootDir:   rootDir,
		gitIgnore: loadIgnoreFile(filepath.Join(rootDir, ".gitignore"), rootDir),
	}
}

// SkipDir reports whether a directory should be pruned entirely.
func (r *ScanRules) SkipDir(absolutePath string) bool {
	if _, ok := defaultSkipDirs[filepath.Base(absolutePath)]; ok {
		return true
	}
	return r.ignored(absolutePath, true)
}

// SkipFile reports whether a single file should be excluded from the
// scan.
func (r *ScanRules) SkipFile(absolutePath string) bool {
	return r.ignored(absolutePath, false)
}

// ignored checks a path against the .gitignore rules, using a
// root-relative forward-slash path as gitignore expects.
func (r *ScanRules) ignored(absolutePath string, isDir bool) bool {
	if r.gitIgnore == nil {
		return false
	}
	relativePath, err := filepath.Rel(r.rootDir, absolutePath)
	if err != nil {
		relativePath = absolutePath
	}
	relativePath = filepath.ToSlash(relativePath)

	match := r.gitIgnore.Relative(relativePath, isDir)
	return match != nil && match.Ignore()
}

// loadIgnoreFile reads an ignore file and creates a GitIgnore matcher
// from it. A missing file yields a nil matcher.
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}

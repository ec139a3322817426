package language

import (
	"path/filepath"
)

// extensionToSourceType maps C-family source extensions to the language
// name passed to the compiler via -x. Headers are deliberately absent:
// they are parsed in the context of a translation unit, never on their
// own.
var extensionToSourceType = map[string]string{
	".c":   "c",
	".cpp": "c++",
	".cc":  "c++",
	".mm":  "objective-c++",
	".m":   "objective-c",
}

// defaultStandard maps a source type to the -std= value injected when a
// compile command carries no explicit standard. The Objective-C dialects
// get none; the frontend default is fine there.
var defaultStandard = map[string]string{
	"c":   "gnu11",
	"c++": "c++14",
}

// SourceType returns the compiler language name for a source path based
// on its extension, and whether the extension is recognized.
func SourceType(path string) (string, bool) {
	sourceType, ok := extensionToSourceType[filepath.Ext(path)]
	return sourceType, ok
}

// DefaultStandard returns the standard injected for a source type when
// none is present, or "" when no default applies.
func DefaultStandard(sourceType string) string {
	return defaultStandard[sourceType]
}

// IsSource reports whether the path has a recognized source extension.
// Used by the directory scanner to decide which files get a synthesized
// compile command.
func IsSource(path string) bool {
	_, ok := SourceType(path)
	return ok
}

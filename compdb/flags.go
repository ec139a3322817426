package compdb

import (
	"fmt"
	"strings"

	"compiledb-mcp/language"
)

// Flags that consume themselves and the following token. Matched by
// prefix, so fused spellings like "-MFdeps.d" are dropped the same way.
var blacklistMulti = []string{
	"-MF", "-MT", "-MQ", "-o", "--serialize-diagnostics", "-Xclang",
}

// Flags which are always removed from the command line.
var blacklist = []string{
	"-c", "-MP", "-MD", "-MMD", "--fcolor-diagnostics",
}

// Flags followed by a potentially relative path. Relative paths must be
// made absolute or the compiler frontend will not resolve them against
// the entry's working directory.
var pathFlags = []string{
	"-I", "-iquote", "-isystem", "--sysroot=",
	"-isysroot", "-gcc-toolchain", "-include-pch", "-iframework",
	"-F", "-imacros", "-include",
}

// Flags whose fused spelling is rewritten with the absolute path in the
// output. Must be a subset of pathFlags; the others keep their original
// spelling and only feed the include-dir sets.
var normalizePathFlags = []string{"--sysroot="}

// Flags whose path argument feeds include-dir lookup for #include
// completion.
var quoteIncludeFlags = []string{"-iquote"}
var angleIncludeFlags = []string{"-I", "-isystem"}

// BuildEntry normalizes one raw compile command into an Entry, appending
// any include directories it discovers to cfg.QuoteDirs and
// cfg.AngleDirs. Given identical inputs and accumulator state it always
// produces the same Entry.
func BuildEntry(cfg *ProjectConfig, cmd CompileCommand) Entry {
	normalize := cfg.normalizer()

	var result Entry
	result.Filename = normalize(cmd.File)

	// Strip the leading tokens that precede the real compiler, e.g. a
	// distributed-build dispatcher in "goma clang -c foo". Scanning stops
	// at the first flag, at the main source file, or at anything that
	// looks like a source filename.
	i := 0
	for i < len(cmd.Args) {
		arg := cmd.Args[i]
		if strings.HasPrefix(arg, "-") {
			break
		}
		if normalize(arg) == result.Filename {
			break
		}
		if looksLikeSourceFile(arg) {
			break
		}
		i++
	}
	if i > 0 {
		result.Args = append(result.Args, cmd.Args[i-1])
	} else {
		// Args likely came from a compile_flags.txt, which has just
		// flags. The compiler frontend expects the binary path as the
		// first arg and would otherwise swallow the first flag.
		result.Args = append(result.Args, "clang++")
	}

	if !anyStartsWith(cmd.Args, "-working-directory") {
		result.Args = append(result.Args, "-working-directory", cmd.Directory)
	}

	// The frontend has poor heuristics for the source language; state it
	// explicitly, along with a default standard.
	if sourceType, ok := language.SourceType(cmd.File); ok {
		if !anyStartsWith(cmd.Args, "-x") {
			result.Args = append(result.Args, "-x"+sourceType)
		}
		if !anyStartsWith(cmd.Args, "-std=") {
			if std := language.DefaultStandard(sourceType); std != "" {
				result.Args = append(result.Args, "-std="+std)
			}
		}
	}

	// Path flags come in two spellings, {"-I", "foo"} and {"-Ifoo"}.
	// Both are supported.
	nextIsPath := false
	addNextToQuoteDirs := false
	addNextToAngleDirs := false

	for ; i < len(cmd.Args); i++ {
		arg := cmd.Args[i]

		if !nextIsPath {
			if startsWithAny(arg, blacklistMulti) {
				i++
				continue
			}
			if startsWithAny(arg, blacklist) {
				continue
			}
		}

		if nextIsPath {
			// Finish the path for the previous argument, which was a
			// bare path flag.
			normalized := absolutePathValue(cfg, cmd.Directory, arg)
			if addNextToQuoteDirs {
				cfg.QuoteDirs[normalized] = struct{}{}
			}
			if addNextToAngleDirs {
				cfg.AngleDirs[normalized] = struct{}{}
			}
			nextIsPath = false
			addNextToQuoteDirs = false
			addNextToAngleDirs = false
		} else {
			for _, flag := range pathFlags {
				if arg == flag {
					nextIsPath = true
					addNextToQuoteDirs = startsWithAny(arg, quoteIncludeFlags)
					addNextToAngleDirs = startsWithAny(arg, angleIncludeFlags)
					break
				}
				if strings.HasPrefix(arg, flag) {
					path := absolutePathValue(cfg, cmd.Directory, arg[len(flag):])
					if startsWithAny(arg, normalizePathFlags) {
						arg = flag + path
					}
					if startsWithAny(flag, quoteIncludeFlags) {
						cfg.QuoteDirs[path] = struct{}{}
					}
					if startsWithAny(flag, angleIncludeFlags) {
						cfg.AngleDirs[path] = struct{}{}
					}
					break
				}
			}
		}

		result.Args = append(result.Args, arg)
	}

	// User-given extra flags get no special processing.
	result.Args = append(result.Args, cfg.ExtraFlags...)

	// -resource-dir lets the frontend resolve system includes like
	// <cstddef>.
	if !anyStartsWith(result.Args, "-resource-dir") {
		result.Args = append(result.Args, "-resource-dir="+cfg.ResourceDir)
	}

	// The project may target a different compiler version than the
	// frontend linked here; don't warn about options it doesn't know.
	if !anyStartsWith(result.Args, "-Wno-unknown-warning-option") {
		result.Args = append(result.Args, "-Wno-unknown-warning-option")
	}

	// Parsing all comments enables documentation in the index and in
	// code completion.
	if !anyStartsWith(result.Args, "-fparse-all-comments") {
		result.Args = append(result.Args, "-fparse-all-comments")
	}

	return result
}

// looksLikeSourceFile reports whether a wrapper-scan token should be
// treated as a source filename rather than a command. `.` occurs in both
// command names and source filenames; if the last `.` falls within the
// final 4 bytes and is not followed by a digit (.c, .cpp), the token is
// taken as a filename. Others (./a/b/goma, clang-4.0) are commands.
func looksLikeSourceFile(arg string) bool {
	dot := strings.LastIndexByte(arg, '.')
	if dot < 0 {
		return false
	}
	if dot+4 < len(arg) {
		return false
	}
	if dot+1 < len(arg) && arg[dot+1] >= '0' && arg[dot+1] <= '9' {
		return false
	}
	return true
}

// absolutePathValue makes a path flag's value absolute against the
// entry's working directory. An empty value means the build description
// handed us a path flag with nothing after it; that is a contract
// violation, not a recoverable condition.
func absolutePathValue(cfg *ProjectConfig, directory string, path string) string {
	if path == "" {
		panic(fmt.Sprintf("empty path value after a path flag (directory %q): malformed build description", directory))
	}
	normalize := cfg.normalizer()
	if path[0] == '/' || directory == "" {
		return normalize(path)
	}
	return normalize(directory + "/" + path)
}

// startsWithAny reports whether arg starts with any of the prefixes.
func startsWithAny(arg string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(arg, prefix) {
			return true
		}
	}
	return false
}

// anyStartsWith reports whether any element of args starts with prefix.
func anyStartsWith(args []string, prefix string) bool {
	for _, arg := range args {
		if strings.HasPrefix(arg, prefix) {
			return true
		}
	}
	return false
}

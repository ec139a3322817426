package compdb

// Entry is one normalized compiler invocation for a single source file.
// Args[0] is always the compiler executable; the remainder carries the
// language/standard flags, the surviving original flags with path
// arguments absolutized, and the trailing bookkeeping flags.
// Entries are never mutated after creation.
type Entry struct {
	Filename   string   // canonical absolute path, unique key in the index
	Args       []string // full argument vector, compiler first
	IsInferred bool     // true only for answers synthesized by inference
}

// CompileCommand is one raw record from the build description: a working
// directory, a source file, and the unprocessed argument vector.
type CompileCommand struct {
	Directory string
	File      string
	Args      []string
}

// ProjectConfig is the shared accumulator threaded through classification.
// It is mutated only during the load phase, and only in two places: the
// classifier appends absolutized include paths to QuoteDirs and AngleDirs.
// All other fields are read-only inputs.
type ProjectConfig struct {
	QuoteDirs   map[string]struct{}
	AngleDirs   map[string]struct{}
	ExtraFlags  []string // user-supplied, appended verbatim to every entry
	ProjectDir  string
	ResourceDir string
	Normalize   PathNormalizer // nil means NormalizePath
}

// NewProjectConfig creates an accumulator with empty include-dir sets.
func NewProjectConfig(projectDir string, resourceDir string, extraFlags []string) *ProjectConfig {
	return &ProjectConfig{
		QuoteDirs:   make(map[string]struct{}),
		AngleDirs:   make(map[string]struct{}),
		ExtraFlags:  extraFlags,
		ProjectDir:  projectDir,
		ResourceDir: resourceDir,
	}
}

// normalizer returns the configured normalization strategy, defaulting to
// real filesystem normalization.
func (c *ProjectConfig) normalizer() PathNormalizer {
	if c.Normalize != nil {
		return c.Normalize
	}
	return NormalizePath
}

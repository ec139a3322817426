package compdb

import (
	"log/slog"
	"math"
)

// Project is the frozen result of loading a build description: the
// entries in source order, the include directories discovered while
// classifying them, and an exact-match lookup table. A Project is
// immutable after Load returns; concurrent readers need no locking.
type Project struct {
	Entries []Entry

	// Include directories from the load phase, deduplicated, sorted, and
	// terminated with a path separator.
	QuoteIncludeDirectories []string
	AngleIncludeDirectories []string

	// LoadMode names the source the entries came from, for status
	// reporting: the compilation database or a directory listing.
	LoadMode string

	pathToIndex map[string]int
	logger      *slog.Logger
}

// NewProject freezes a list of entries into a queryable index without
// going through a build description. Load is the normal path; this exists
// for consumers (and tests) that assemble entries programmatically.
// Later duplicates win the lookup slot; the entry list keeps both.
func NewProject(entries []Entry, logger *slog.Logger) *Project {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Project{Entries: entries, logger: logger}
	p.pathToIndex = make(map[string]int, len(entries))
	for i, entry := range entries {
		p.pathToIndex[entry.Filename] = i
	}
	return p
}

// Matcher decides whether a filename participates in filtered iteration.
// On rejection it returns a human-readable reason for logging.
type Matcher interface {
	IsMatch(value string) (ok bool, reason string)
}

// FindEntry returns the compiler invocation for filename. On an exact
// miss it falls back to inference: every known entry is scored against
// the query and the best one donates its args, with IsInferred set. The
// scan is linear in the index size, which is fine at project scale; a
// per-query cache would be the first optimization if that changes. Ties
// keep the earliest entry in index order. An empty index yields no
// answer, and the caller decides the fallback.
func (p *Project) FindEntry(filename string) (Entry, bool) {
	if i, ok := p.pathToIndex[filename]; ok {
		return p.Entries[i], true
	}

	if len(p.Entries) == 0 {
		return Entry{}, false
	}

	bestScore := math.MinInt
	bestIndex := -1
	for i := range p.Entries {
		score := guessScore(filename, p.Entries[i].Filename)
		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	return Entry{
		Filename:   filename,
		Args:       p.Entries[bestIndex].Args,
		IsInferred: true,
	}, true
}

// HasEntry reports whether filename has an explicit (non-inferred) entry.
func (p *Project) HasEntry(filename string) bool {
	_, ok := p.pathToIndex[filename]
	return ok
}

// EntryCount returns the number of loaded entries.
func (p *Project) EntryCount() int {
	return len(p.Entries)
}

// ForAllFiltered walks the entries in load order, invoking action for
// every entry the matcher accepts. Rejected entries are skipped; with
// logSkipped set, the matcher's reason is logged. Entries are neither
// mutated nor reordered.
func (p *Project) ForAllFiltered(matcher Matcher, logSkipped bool, action func(i int, entry Entry)) {
	for i := range p.Entries {
		entry := &p.Entries[i]
		ok, reason := matcher.IsMatch(entry.Filename)
		if ok {
			action(i, *entry)
			continue
		}
		if logSkipped {
			p.logger.Info("skipping filtered entry",
				"position", i+1,
				"total", len(p.Entries),
				"reason", reason,
				"file", entry.Filename,
			)
		}
	}
}

package compdb

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func Test_Load_DirectoryListingMode(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, MarkerFileName), "# project flags\n\n  -DFOO  \n-Wall\n")
	writeFile(t, filepath.Join(root, "src", "a.cc"), "int main() {}\n")
	writeFile(t, filepath.Join(root, "src", "b.c"), "int main() {}\n")
	writeFile(t, filepath.Join(root, "README.md"), "docs\n")

	p := Load(LoadOptions{
		RootDir:     root,
		ResourceDir: "/res",
		Logger:      discardLogger(),
	})

	if p.EntryCount() != 2 {
		t.Fatalf("expected 2 entries, got %d", p.EntryCount())
	}

	entry, ok := p.FindEntry(filepath.Join(root, "src", "a.cc"))
	if !ok || entry.IsInferred {
		t.Fatal("expected an explicit entry for src/a.cc")
	}
	for _, want := range []string{"-DFOO", "-Wall", "-xc++", "-std=c++14", "-working-directory"} {
		found := false
		for _, arg := range entry.Args {
			if arg == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %q in args, got %v", want, entry.Args)
		}
	}

	cEntry, ok := p.FindEntry(filepath.Join(root, "src", "b.c"))
	if !ok {
		t.Fatal("expected an entry for src/b.c")
	}
	if !anyStartsWith(cEntry.Args, "-xc") || anyStartsWith(cEntry.Args, "-xc++") {
		t.Errorf("expected C dialect for b.c, got %v", cEntry.Args)
	}
}

func Test_Load_CompilationDatabase(t *testing.T) {
	root := t.TempDir()
	fooPath := filepath.Join(root, "foo.cc")
	barPath := filepath.Join(root, "sub", "bar.c")
	db := `[
  {
    "directory": "` + root + `",
    "file": "foo.cc",
    "arguments": ["clang++", "-Iinclude", "-DFOO", "foo.cc"]
  },
  {
    "directory": "` + root + `",
    "file": "sub/bar.c",
    "command": "cc -I include -DBAR 'sub/bar.c'"
  }
]`
	writeFile(t, filepath.Join(root, CompilationDBName), db)

	p := Load(LoadOptions{
		RootDir:     root,
		ResourceDir: "/res",
		Logger:      discardLogger(),
	})

	if p.EntryCount() != 2 {
		t.Fatalf("expected 2 entries, got %d", p.EntryCount())
	}
	if p.LoadMode != CompilationDBName {
		t.Errorf("LoadMode = %q, want %q", p.LoadMode, CompilationDBName)
	}

	foo, ok := p.FindEntry(fooPath)
	if !ok || foo.IsInferred {
		t.Fatal("expected an explicit entry for foo.cc")
	}
	if foo.Args[0] != "clang++" {
		t.Errorf("expected clang++ executable, got %q", foo.Args[0])
	}

	bar, ok := p.FindEntry(barPath)
	if !ok || bar.IsInferred {
		t.Fatal("expected an explicit entry for sub/bar.c (command-string record)")
	}
	if bar.Args[0] != "cc" {
		t.Errorf("expected cc executable, got %q", bar.Args[0])
	}

	// Both -Iinclude and -I include absolutize to the same directory.
	wantDir := filepath.Join(root, "include") + "/"
	if diff := cmp.Diff([]string{wantDir}, p.AngleIncludeDirectories); diff != "" {
		t.Errorf("angle include dirs mismatch (-want +got):\n%s", diff)
	}
	for _, dir := range p.AngleIncludeDirectories {
		if !strings.HasSuffix(dir, "/") {
			t.Errorf("include dir %q must end in a path separator", dir)
		}
	}
}

func Test_Load_FallbackToDirectoryListingOnBadDatabase(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, CompilationDBName), "{not json")
	writeFile(t, filepath.Join(root, "a.cc"), "int main() {}\n")

	p := Load(LoadOptions{
		RootDir:     root,
		ResourceDir: "/res",
		Logger:      discardLogger(),
	})

	if p.EntryCount() != 1 {
		t.Fatalf("expected fallback directory listing with 1 entry, got %d", p.EntryCount())
	}
	if _, ok := p.FindEntry(filepath.Join(root, "a.cc")); !ok {
		t.Error("expected an entry for a.cc from the fallback listing")
	}
}

func Test_Load_MarkerFileWinsOverDatabase(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, MarkerFileName), "-DFROM_MARKER\n")
	writeFile(t, filepath.Join(root, CompilationDBName), `[
  {"directory": "`+root+`", "file": "a.cc", "arguments": ["clang++", "-DFROM_DB", "a.cc"]}
]`)
	writeFile(t, filepath.Join(root, "a.cc"), "int main() {}\n")

	p := Load(LoadOptions{
		RootDir:     root,
		ResourceDir: "/res",
		Logger:      discardLogger(),
	})

	if p.LoadMode != MarkerFileName {
		t.Errorf("LoadMode = %q, want %q", p.LoadMode, MarkerFileName)
	}
	entry, ok := p.FindEntry(filepath.Join(root, "a.cc"))
	if !ok {
		t.Fatal("expected an entry for a.cc")
	}
	hasMarker := false
	for _, arg := range entry.Args {
		if arg == "-DFROM_DB" {
			t.Errorf("marker file must force directory-listing mode, got %v", entry.Args)
		}
		if arg == "-DFROM_MARKER" {
			hasMarker = true
		}
	}
	if !hasMarker {
		t.Errorf("expected marker flags in args, got %v", entry.Args)
	}
}

func Test_Load_EmptyProjectYieldsEmptyIndex(t *testing.T) {
	p := Load(LoadOptions{
		RootDir:     t.TempDir(),
		ResourceDir: "/res",
		Logger:      discardLogger(),
	})
	if p.EntryCount() != 0 {
		t.Errorf("expected empty index, got %d entries", p.EntryCount())
	}
	if _, ok := p.FindEntry("/nowhere.cc"); ok {
		t.Error("expected no answer from an empty index")
	}
}

func Test_Load_ScanFilterPrunes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, MarkerFileName), "-DFOO\n")
	writeFile(t, filepath.Join(root, "keep", "a.cc"), "int main() {}\n")
	writeFile(t, filepath.Join(root, "skipme", "b.cc"), "int main() {}\n")

	p := Load(LoadOptions{
		RootDir:     root,
		ResourceDir: "/res",
		ScanFilter:  dirNameFilter{"skipme"},
		Logger:      discardLogger(),
	})

	if p.EntryCount() != 1 {
		t.Fatalf("expected 1 entry after pruning, got %d", p.EntryCount())
	}
	if _, ok := p.FindEntry(filepath.Join(root, "keep", "a.cc")); !ok {
		t.Error("expected the kept file to have an entry")
	}
}

// dirNameFilter skips directories with a given basename.
type dirNameFilter struct {
	name string
}

func (f dirNameFilter) SkipDir(absolutePath string) bool {
	return filepath.Base(absolutePath) == f.name
}

func (f dirNameFilter) SkipFile(absolutePath string) bool { return false }

func Test_ReadMarkerFlags(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, MarkerFileName)
	writeFile(t, path, "\n# comment\n  -DFOO\n\t-I.\n   \n-Wall  \n")

	got := readMarkerFlags(path)
	if diff := cmp.Diff([]string{"-DFOO", "-I.", "-Wall"}, got); diff != "" {
		t.Errorf("marker flags mismatch (-want +got):\n%s", diff)
	}
}

func Test_ReadMarkerFlags_MissingFile(t *testing.T) {
	if got := readMarkerFlags(filepath.Join(t.TempDir(), "absent")); got != nil {
		t.Errorf("expected nil for a missing marker file, got %v", got)
	}
}

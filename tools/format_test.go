package tools

import (
	"strings"
	"testing"
	"time"

	"compiledb-mcp/compdb"
)

// --- formatDuration ---

func Test_FormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"Seconds_zero", 0, "0s"},
		{"Seconds_30", 30 * time.Second, "30s"},
		{"Minutes_5m30s", 5*time.Minute + 30*time.Second, "5m30s"},
		{"Hours_1h30m", 90 * time.Minute, "1h30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatDuration(tt.duration)
			if got != tt.expected {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.duration, got, tt.expected)
			}
		})
	}
}

// --- formatMemory ---

func Test_FormatMemory(t *testing.T) {
	if got := formatMemory(500); got != "500 B" {
		t.Errorf("expected '500 B', got '%s'", got)
	}
	if got := formatMemory(2048); got != "2.0 KB" {
		t.Errorf("expected '2.0 KB', got '%s'", got)
	}
	if got := formatMemory(3 * 1024 * 1024); got != "3.0 MB" {
		t.Errorf("expected '3.0 MB', got '%s'", got)
	}
}

// --- FormatEntry ---

func Test_FormatEntry_Direct(t *testing.T) {
	entry := compdb.Entry{
		Filename: "/proj/src/main.cc",
		Args:     []string{"clang++", "-std=c++14", "/proj/src/main.cc"},
	}

	got := FormatEntry(entry)

	if !strings.Contains(got, "/proj/src/main.cc") {
		t.Errorf("expected filename, got:\n%s", got)
	}
	if !strings.Contains(got, "Arguments (3):") {
		t.Errorf("expected argument count header, got:\n%s", got)
	}
	if !strings.Contains(got, "  -std=c++14\n") {
		t.Errorf("expected one argument per line, got:\n%s", got)
	}
	if strings.Contains(got, "inferred") {
		t.Errorf("direct entries must not carry the inferred marker, got:\n%s", got)
	}
}

func Test_FormatEntry_Inferred(t *testing.T) {
	entry := compdb.Entry{
		Filename:   "/proj/src/new.cc",
		Args:       []string{"clang++", "/proj/src/new.cc"},
		IsInferred: true,
	}

	got := FormatEntry(entry)

	if !strings.Contains(got, "inferred") {
		t.Errorf("expected inferred marker, got:\n%s", got)
	}
}

// --- FormatEntries ---

func Test_FormatEntries_Empty(t *testing.T) {
	got := FormatEntries(nil, 0, false)
	if got != "No entries matched." {
		t.Errorf("expected 'No entries matched.', got '%s'", got)
	}
}

func Test_FormatEntries_WithArgCounts(t *testing.T) {
	results := []compdb.Entry{
		{Filename: "/proj/a.cc", Args: []string{"clang++", "/proj/a.cc"}},
		{Filename: "/proj/b.cc", Args: []string{"clang++", "-O2", "/proj/b.cc"}},
	}

	got := FormatEntries(results, 2, false)

	if !strings.Contains(got, "Found 2 entries:") {
		t.Errorf("expected header, got:\n%s", got)
	}
	if !strings.Contains(got, "/proj/a.cc  (2 args)") {
		t.Errorf("expected entry with arg count, got:\n%s", got)
	}
	if !strings.Contains(got, "/proj/b.cc  (3 args)") {
		t.Errorf("expected entry with arg count, got:\n%s", got)
	}
}

func Test_FormatEntries_Truncated(t *testing.T) {
	results := []compdb.Entry{
		{Filename: "/proj/a.cc", Args: []string{"clang++"}},
	}

	got := FormatEntries(results, 10, false)

	if !strings.Contains(got, "Found 10 entries (showing 1):") {
		t.Errorf("expected truncation header, got:\n%s", got)
	}
}

func Test_FormatEntries_NameOnly(t *testing.T) {
	results := []compdb.Entry{
		{Filename: "/proj/a.cc", Args: []string{"clang++", "/proj/a.cc"}},
	}

	got := FormatEntries(results, 1, true)

	if !strings.Contains(got, "/proj/a.cc\n") {
		t.Errorf("expected bare filename, got:\n%s", got)
	}
	if strings.Contains(got, "args)") {
		t.Errorf("nameOnly should not include arg counts, got:\n%s", got)
	}
}

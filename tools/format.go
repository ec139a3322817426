package tools

import (
	"fmt"
	"strings"
	"time"

	"compiledb-mcp/compdb"
)

// FormatEntry formats one compile entry as human-readable text, one
// argument per line so that long command lines stay legible.
func FormatEntry(entry compdb.Entry) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("── %s ──\n", entry.Filename))
	if entry.IsInferred {
		builder.WriteString("(inferred from the closest indexed file)\n")
	}
	builder.WriteString(fmt.Sprintf("Arguments (%d):\n", len(entry.Args)))
	for _, arg := range entry.Args {
		builder.WriteString("  " + arg + "\n")
	}

	return builder.String()
}

// FormatEntries formats entry listings as human-readable text.
func FormatEntries(results []compdb.Entry, total int, nameOnly bool) string {
	if len(results) == 0 {
		return "No entries matched."
	}

	var builder strings.Builder
	if total > len(results) {
		builder.WriteString(fmt.Sprintf("Found %d entries (showing %d):\n\n", total, len(results)))
	} else {
		builder.WriteString(fmt.Sprintf("Found %d entries:\n\n", total))
	}

	for _, entry := range results {
		if nameOnly {
			builder.WriteString(entry.Filename)
			builder.WriteString("\n")
		} else {
			builder.WriteString(fmt.Sprintf("  %s  (%d args)\n", entry.Filename, len(entry.Args)))
		}
	}

	return builder.String()
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	if totalSeconds < 60 {
		return fmt.Sprintf("%ds", totalSeconds)
	}
	totalMinutes := totalSeconds / 60
	remainderSeconds := totalSeconds % 60
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm%ds", totalMinutes, remainderSeconds)
	}
	hours := totalMinutes / 60
	remainderMinutes := totalMinutes % 60
	return fmt.Sprintf("%dh%dm", hours, remainderMinutes)
}

// formatMemory converts bytes to a human-readable string.
func formatMemory(bytes uint64) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

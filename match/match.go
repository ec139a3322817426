package match

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// GroupMatch is an include/exclude filter over file paths. A non-empty
// whitelist admits only paths matching at least one of its patterns; the
// blacklist then rejects any path matching one of its patterns. Patterns
// are doublestar globs matched against forward-slash paths.
type GroupMatch struct {
	whitelist []string
	blacklist []string
}

// New creates a GroupMatch after validating every pattern.
func New(whitelist []string, blacklist []string) (*GroupMatch, error) {
	for _, pattern := range whitelist {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid whitelist pattern: %s", pattern)
		}
	}
	for _, pattern := range blacklist {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid blacklist pattern: %s", pattern)
		}
	}
	return &GroupMatch{whitelist: whitelist, blacklist: blacklist}, nil
}

// IsMatch reports whether value passes the filter. On rejection the
// second return value names the pattern responsible, for skip logging.
func (m *GroupMatch) IsMatch(value string) (bool, string) {
	value = strings.ReplaceAll(value, "\\", "/")

	if len(m.whitelist) > 0 {
		admitted := false
		for _, pattern := range m.whitelist {
			if matched, err := doublestar.Match(pattern, value); err == nil && matched {
				admitted = true
				break
			}
		}
		if !admitted {
			return false, "no whitelist pattern matched"
		}
	}

	for _, pattern := range m.blacklist {
		if matched, err := doublestar.Match(pattern, value); err == nil && matched {
			return false, fmt.Sprintf("blacklist pattern %q matched", pattern)
		}
	}

	return true, ""
}

package scraper

import (
	"fmt"
	"regexp"
	"strings"
)

// LocaleFilter is the heuristic content-locale filter. It matches configured
// regional-language indicator patterns against the text fields of a search
// hit. It is a content-classification proxy, not a verified geographic
// attribute.
type LocaleFilter struct {
	pattern *regexp.Regexp
}

// NewLocaleFilter compiles the given indicator patterns into a single
// case-insensitive matcher. An empty pattern list yields a filter that never
// matches. An invalid pattern is a configuration error.
func NewLocaleFilter(patterns []string) (*LocaleFilter, error) {
	if len(patterns) == 0 {
		return &LocaleFilter{}, nil
	}

	re, err := regexp.Compile(`(?i)` + strings.Join(patterns, "|"))
	if err != nil {
		return nil, fmt.Errorf("compile locale patterns: %w", err)
	}

	return &LocaleFilter{pattern: re}, nil
}

// Matches reports whether any indicator pattern occurs in the title,
// description or channel name.
func (f *LocaleFilter) Matches(title, description, channelName string) bool {
	if f == nil || f.pattern == nil {
		return false
	}
	combined := title + " " + description + " " + channelName
	return f.pattern.MatchString(combined)
}

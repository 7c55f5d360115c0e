package scraper

import (
	"strconv"
	"strings"
)

// ParseDuration converts an ISO 8601 video duration to total seconds.
// Example: "PT4M13S" -> 253. Only hours/minutes/seconds components occur in
// video durations; any absent component counts as zero and any unparseable
// string yields 0 so an enrichment quirk never loses a record.
func ParseDuration(duration string) int {
	if !strings.HasPrefix(duration, "PT") {
		return 0
	}

	rest := strings.TrimPrefix(duration, "PT")

	var hours, minutes, seconds int

	if hIdx := strings.Index(rest, "H"); hIdx != -1 {
		h, err := strconv.Atoi(rest[:hIdx])
		if err != nil {
			return 0
		}
		hours = h
		rest = rest[hIdx+1:]
	}

	if mIdx := strings.Index(rest, "M"); mIdx != -1 {
		m, err := strconv.Atoi(rest[:mIdx])
		if err != nil {
			return 0
		}
		minutes = m
		rest = rest[mIdx+1:]
	}

	if sIdx := strings.Index(rest, "S"); sIdx != -1 {
		s, err := strconv.Atoi(rest[:sIdx])
		if err != nil {
			return 0
		}
		seconds = s
		rest = rest[sIdx+1:]
	}

	// Anything left over means the string was not a plain H/M/S duration.
	if rest != "" {
		return 0
	}

	return hours*3600 + minutes*60 + seconds
}

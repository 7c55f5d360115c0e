package scraper

import "testing"

var testLocalePatterns = []string{
	`\b(hindi)\b`,
	`\b(tamil)\b`,
	`\bin hindi\b`,
	`\bhindi tutorial\b`,
}

func TestLocaleFilterMatches(t *testing.T) {
	filter, err := NewLocaleFilter(testLocalePatterns)
	if err != nil {
		t.Fatalf("NewLocaleFilter() failed: %v", err)
	}

	tests := []struct {
		name    string
		title   string
		desc    string
		channel string
		want    bool
	}{
		{"clean content", "Python Tutorial for Beginners", "Learn Python basics", "CodeAcademy", false},
		{"indicator in title", "Python Tutorial in Hindi", "Learn Python", "CodeAcademy", true},
		{"indicator in description", "Python Tutorial", "full course hindi tutorial", "CodeAcademy", true},
		{"indicator in channel name", "Python Tutorial", "Learn Python", "Tamil Coders", true},
		{"case insensitive", "python HINDI course", "", "", true},
		{"word boundary respected", "Shindig at the office", "", "", false},
		{"substring of a word does not match", "Tamilnadu travel vlog", "", "", false},
		{"all fields empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.Matches(tt.title, tt.desc, tt.channel); got != tt.want {
				t.Errorf("Matches(%q, %q, %q) = %v, want %v", tt.title, tt.desc, tt.channel, got, tt.want)
			}
		})
	}
}

func TestLocaleFilterEmptyPatterns(t *testing.T) {
	filter, err := NewLocaleFilter(nil)
	if err != nil {
		t.Fatalf("NewLocaleFilter(nil) failed: %v", err)
	}
	if filter.Matches("hindi tutorial", "anything", "anything") {
		t.Error("empty filter should never match")
	}
}

func TestLocaleFilterInvalidPattern(t *testing.T) {
	if _, err := NewLocaleFilter([]string{`\b(unclosed`}); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestLocaleFilterNilReceiver(t *testing.T) {
	var filter *LocaleFilter
	if filter.Matches("hindi", "", "") {
		t.Error("nil filter should never match")
	}
}

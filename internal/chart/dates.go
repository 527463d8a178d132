package chart

import (
	"strings"
	"time"
)

// Layouts accepted for date labels, most specific first.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Year-less layouts: already short labels.
var shortLayouts = []string{
	"Jan 2",
	"January 2",
}

const (
	shortLayout = "Jan 2"
	fullLayout  = "Jan 2, 2006"
)

// FormatDate shortens a date label to "Jan 2". Short labels are returned in
// canonical form and anything unparseable is returned unchanged.
func FormatDate(s string) string {
	v := strings.TrimSpace(s)
	if t, ok := parseDate(v); ok {
		return t.Format(shortLayout)
	}
	for _, layout := range shortLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(shortLayout)
		}
	}
	return s
}

// FormatFullDate renders a date label as "Jan 2, 2006" for tooltips. Labels
// without a year are returned unchanged.
func FormatFullDate(s string) string {
	if t, ok := parseDate(strings.TrimSpace(s)); ok {
		return t.Format(fullLayout)
	}
	return s
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

package models

import (
	"strings"
	"time"
)

// DescriptionDelimiter separates a record's main content from its optional
// description segment inside the content column.
const DescriptionDelimiter = "\n---\n"

// DeriveDuration returns the elapsed seconds between start and end, or nil
// when either side is missing. It is the only source of truth for duration.
func DeriveDuration(start, end *time.Time) *float64 {
	if start == nil || end == nil {
		return nil
	}
	d := end.Sub(*start).Seconds()
	return &d
}

// DeriveCompletionRate returns duration/target as a percentage, or nil when
// either value is missing or the target is not positive.
func DeriveCompletionRate(duration, target *float64) *float64 {
	if duration == nil || target == nil || *target <= 0 {
		return nil
	}
	r := *duration / *target * 100
	return &r
}

// DayWindow returns the half-open window [00:00:00, 23:59:59) around t in
// t's location, matching how daily queries scope start_time.
func DayWindow(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end := time.Date(y, m, d, 23, 59, 59, 0, t.Location())
	return start, end
}

// ComposeContent joins content and an optional description with the
// delimiter convention.
func ComposeContent(content, description string) string {
	if description == "" {
		return content
	}
	return content + DescriptionDelimiter + description
}

// SplitDescription splits delimiter-encoded content back into the main
// content and its description. The description is empty when no delimiter
// is present.
func SplitDescription(content string) (main, description string) {
	parts := strings.SplitN(content, DescriptionDelimiter, 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return content, ""
}

// TagsOverlap reports whether the two tag sets share at least one tag.
func TagsOverlap(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	for _, t := range b {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

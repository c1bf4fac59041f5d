package models

import (
	"testing"
	"time"
)

func TestDeriveDuration(t *testing.T) {
	start := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	if got := DeriveDuration(nil, &end); got != nil {
		t.Errorf("DeriveDuration(nil, end) = %v, want nil", *got)
	}
	if got := DeriveDuration(&start, nil); got != nil {
		t.Errorf("DeriveDuration(start, nil) = %v, want nil", *got)
	}

	got := DeriveDuration(&start, &end)
	if got == nil {
		t.Fatal("DeriveDuration(start, end) = nil, want value")
	}
	if *got != 1800 {
		t.Errorf("DeriveDuration(start, end) = %v, want 1800", *got)
	}
}

func TestDeriveCompletionRate(t *testing.T) {
	duration := 3600.0
	target := 14400.0
	zero := 0.0
	negative := -60.0

	if got := DeriveCompletionRate(nil, &target); got != nil {
		t.Errorf("DeriveCompletionRate(nil, target) = %v, want nil", *got)
	}
	if got := DeriveCompletionRate(&duration, nil); got != nil {
		t.Errorf("DeriveCompletionRate(duration, nil) = %v, want nil", *got)
	}
	if got := DeriveCompletionRate(&duration, &zero); got != nil {
		t.Errorf("DeriveCompletionRate(duration, 0) = %v, want nil", *got)
	}
	if got := DeriveCompletionRate(&duration, &negative); got != nil {
		t.Errorf("DeriveCompletionRate(duration, negative) = %v, want nil", *got)
	}

	got := DeriveCompletionRate(&duration, &target)
	if got == nil {
		t.Fatal("DeriveCompletionRate(3600, 14400) = nil, want value")
	}
	if *got != 25 {
		t.Errorf("DeriveCompletionRate(3600, 14400) = %v, want 25", *got)
	}
}

func TestDayWindow(t *testing.T) {
	at := time.Date(2025, 1, 15, 14, 30, 45, 123, time.UTC)
	start, end := DayWindow(at)

	wantStart := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, 1, 15, 23, 59, 59, 0, time.UTC)

	if !start.Equal(wantStart) {
		t.Errorf("DayWindow start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("DayWindow end = %v, want %v", end, wantEnd)
	}
}

func TestComposeAndSplitContent(t *testing.T) {
	composed := ComposeContent("Ship release", "cut the branch, tag, announce")
	main, description := SplitDescription(composed)
	if main != "Ship release" {
		t.Errorf("main = %q, want %q", main, "Ship release")
	}
	if description != "cut the branch, tag, announce" {
		t.Errorf("description = %q, want %q", description, "cut the branch, tag, announce")
	}

	if got := ComposeContent("Just a title", ""); got != "Just a title" {
		t.Errorf("ComposeContent with empty description = %q, want bare title", got)
	}

	main, description = SplitDescription("no delimiter here")
	if main != "no delimiter here" || description != "" {
		t.Errorf("SplitDescription without delimiter = (%q, %q)", main, description)
	}
}

func TestTagsOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want bool
	}{
		{"shared tag", []string{"work", "deep"}, []string{"deep", "code"}, true},
		{"disjoint", []string{"work"}, []string{"home"}, false},
		{"empty left", nil, []string{"work"}, false},
		{"empty right", []string{"work"}, nil, false},
		{"both empty", nil, nil, false},
	}

	for _, tt := range tests {
		if got := TagsOverlap(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: TagsOverlap(%v, %v) = %v, want %v", tt.name, tt.a, tt.b, got, tt.want)
		}
	}
}

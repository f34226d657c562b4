package storage

import (
	"errors"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Hello World", "hello-world"},
		{"already slug", "hello-world", "hello-world"},
		{"punctuation stripped", "Q3 Roadmap: Final (v2)!", "q3-roadmap-final-v2"},
		{"underscores collapse", "api__v2_design", "api-v2-design"},
		{"surrounding whitespace", "  Sprint 14  ", "sprint-14"},
		{"repeated separators", "a - - b", "a-b"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestUniqueSlug_NoCollision(t *testing.T) {
	slug, err := UniqueSlug("My Project", func(string) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("UniqueSlug() error = %v", err)
	}
	if slug != "my-project" {
		t.Errorf("slug = %q, expected %q", slug, "my-project")
	}
}

func TestUniqueSlug_SuffixOnCollision(t *testing.T) {
	taken := map[string]bool{"my-project": true, "my-project-2": true}

	slug, err := UniqueSlug("My Project", func(s string) (bool, error) { return taken[s], nil })
	if err != nil {
		t.Fatalf("UniqueSlug() error = %v", err)
	}
	if slug != "my-project-3" {
		t.Errorf("slug = %q, expected %q", slug, "my-project-3")
	}
}

func TestUniqueSlug_EmptyNameFallsBack(t *testing.T) {
	slug, err := UniqueSlug("???", func(string) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("UniqueSlug() error = %v", err)
	}
	if slug != "untitled" {
		t.Errorf("slug = %q, expected %q", slug, "untitled")
	}
}

func TestUniqueSlug_ExistsError(t *testing.T) {
	wantErr := errors.New("db down")
	_, err := UniqueSlug("My Project", func(string) (bool, error) { return false, wantErr })
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, expected %v", err, wantErr)
	}
}

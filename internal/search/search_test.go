package search

import "testing"

func TestRoute(t *testing.T) {
	tests := []struct {
		query string
		want  Path
	}{
		{"", PathNone},
		{"a", PathNone},
		{"ab", PathSubstring},
		{"abc", PathFullText},
		{"kubernetes networking", PathFullText},
		{"日本", PathSubstring}, // rune count, not byte count
	}
	for _, tt := range tests {
		if got := Route(tt.query); got != tt.want {
			t.Errorf("Route(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  hello  "); got != "hello" {
		t.Errorf("Normalize: got %q", got)
	}
	// A whitespace-only query normalizes to unsearchable.
	if Route(Normalize("   ")) != PathNone {
		t.Error("whitespace query must route to none")
	}
}

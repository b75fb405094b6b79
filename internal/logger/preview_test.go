package logger

import (
	"testing"

	"github.com/rivo/uniseg"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "Paris", 10, "Paris"},
		{"collapse whitespace", "Paris\n  is\tthe capital", 50, "Paris is the capital"},
		{"truncate ascii", "The capital of France", 7, "The cap…"},
		{"trim before ellipsis", "The capital", 4, "The…"},
		{"no limit", "abc def", 0, "abc def"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.in, tt.n); got != tt.want {
				t.Fatalf("Preview(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestPreview_NeverSplitsClusters(t *testing.T) {
	in := "नमस्ते दुनिया"
	for n := 1; n < uniseg.GraphemeClusterCount(in); n++ {
		got := Preview(in, n)
		if uniseg.GraphemeClusterCount(got) > n+1 {
			t.Fatalf("Preview(%d) produced %d clusters: %q", n, uniseg.GraphemeClusterCount(got), got)
		}
	}
}

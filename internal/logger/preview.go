package logger

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Preview shortens s to at most n grapheme clusters, appending "…" when cut.
// Whitespace runs are collapsed so multi-line text fits on one line. Combining
// marks stay attached to their base character.
func Preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if n <= 0 || uniseg.GraphemeClusterCount(s) <= n {
		return s
	}
	var b strings.Builder
	state := -1
	rest := s
	for i := 0; i < n && rest != ""; i++ {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		b.WriteString(cluster)
	}
	return strings.TrimRight(b.String(), " ") + "…"
}

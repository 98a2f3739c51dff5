// Package stacktrace trims goroutine dumps to the frames inside this module.
package stacktrace

import "strings"

// InternalPaths returns the "internal/...go:line" locations found in a
// runtime/debug.Stack dump, outermost call last.
func InternalPaths(stack []byte) []string {
	var paths []string
	for line := range strings.SplitSeq(string(stack), "\n") {
		line = strings.TrimSpace(line)

		_, rest, ok := strings.Cut(line, "/internal/")
		if !ok || !strings.Contains(rest, ".go:") {
			continue
		}
		if i := strings.IndexByte(rest, ' '); i >= 0 {
			rest = rest[:i]
		}
		paths = append(paths, "internal/"+rest)
	}
	return paths
}

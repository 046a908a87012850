package compare

import "strings"

// groupTracker remembers which path groups already had a representative
// checked. Prefixes are tried in the order the caller supplied them and the
// first one that matches wins, even if a later prefix is longer.
type groupTracker struct {
	prefixes []string
	seen     map[string]struct{}
}

func newGroupTracker(prefixes []string) *groupTracker {
	return &groupTracker{
		prefixes: prefixes,
		seen:     make(map[string]struct{}, len(prefixes)),
	}
}

// skip reports whether relPath belongs to a group that was already checked.
// The first path seen for a group marks it and is not skipped.
func (g *groupTracker) skip(relPath string) (string, bool) {
	for _, prefix := range g.prefixes {
		if !strings.HasPrefix(relPath, prefix) {
			continue
		}
		if _, ok := g.seen[prefix]; ok {
			return prefix, true
		}
		g.seen[prefix] = struct{}{}
		return prefix, false
	}
	return "", false
}

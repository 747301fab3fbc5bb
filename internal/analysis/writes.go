package analysis

import (
	"sort"

	"github.com/xab-mack/authsurface/internal/model"
)

// Writes returns the names of state variables written by f directly or by
// anything reachable from it, per the model's transitive write query.
// Unnamed (synthetic) storage locations are dropped; the result is
// deduplicated, sorted, and empty rather than nil.
func Writes(f *model.Function) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, name := range f.AllStateVariablesWritten() {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

package analysis

import (
	"sort"

	"github.com/xab-mack/authsurface/internal/model"
)

// Guards scans every control-flow node across the given function set and
// collects the rendered conditions that gate execution on the caller
// identity: conditional nodes (if/require/assert) whose identity read-set
// contains msg.sender. The result is deduplicated and sorted; it is empty,
// never nil, when no such guard exists.
//
// Nodes are flattened in function order then node order, so the same closure
// always yields the same sequence regardless of how it was traversed.
func Guards(closure []*model.Function) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, fn := range closure {
		for _, n := range fn.Nodes {
			if !n.IsConditional() {
				continue
			}
			if !n.ReadsIdentity(model.CallerIdentity) {
				continue
			}
			if n.Expr == "" || seen[n.Expr] {
				continue
			}
			seen[n.Expr] = true
			out = append(out, n.Expr)
		}
	}
	sort.Strings(out)
	return out
}

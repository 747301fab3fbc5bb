package analysis

import "github.com/xab-mack/authsurface/internal/model"

// Closure returns the set of functions whose bodies execute as part of
// calling f: f itself, every function transitively reachable through f's
// internal-call edges, and f's directly attached modifiers. Modifier bodies
// are included one-hop; their own internal calls are not expanded further.
//
// The result order is deterministic: DFS preorder over the internal-call
// chain starting at f, then f's modifiers in declaration order, each function
// appearing exactly once. Unresolved call targets are skipped.
func Closure(f *model.Function) []*model.Function {
	if f == nil {
		return nil
	}
	seen := map[*model.Function]bool{}
	var out []*model.Function
	add := func(fn *model.Function) bool {
		if fn == nil || seen[fn] {
			return false
		}
		seen[fn] = true
		out = append(out, fn)
		return true
	}

	// Iterative DFS with an explicit stack: call graphs may be cyclic
	// (recursion, mutual recursion, a function listed as its own modifier)
	// and must never loop or blow the stack.
	stack := []*model.Function{f}
	for len(stack) > 0 {
		fn := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !add(fn) {
			continue
		}
		// Push callees in reverse so they pop in declaration order.
		for i := len(fn.Calls) - 1; i >= 0; i-- {
			if t := fn.Calls[i].Target; t != nil && !seen[t] {
				stack = append(stack, t)
			}
		}
	}
	for _, m := range f.Modifiers {
		add(m)
	}
	return out
}

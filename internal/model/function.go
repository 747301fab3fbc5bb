package model

// CallableKind is a closed classification of callable entities. Modifiers are
// function-like but attach to other functions instead of being called.
type CallableKind string

const (
	KindFunction CallableKind = "function"
	KindModifier CallableKind = "modifier"
)

// NodeKind classifies a control-flow node. Branch, require and assert nodes
// are the guard sites; everything else is a plain statement.
type NodeKind string

const (
	NodeStatement NodeKind = "statement"
	NodeBranch    NodeKind = "branch"
	NodeRequire   NodeKind = "require"
	NodeAssert    NodeKind = "assert"
)

// Node is one control-flow node inside a function body.
type Node struct {
	Kind NodeKind `json:"kind"`
	Line int      `json:"line"`
	// Expr is the rendered condition text for guard nodes, empty otherwise.
	Expr string `json:"expr,omitempty"`
	// Reads lists the identity primitives read on this node (e.g. msg.sender).
	Reads []string `json:"reads,omitempty"`
	// Writes lists state variable names written on this node. Entries may be
	// empty for synthetic storage locations; consumers filter those.
	Writes []string `json:"writes,omitempty"`
}

// IsConditional reports whether the node gates execution: an if branch or a
// require/assert statement.
func (n Node) IsConditional() bool {
	return n.Kind == NodeBranch || n.Kind == NodeRequire || n.Kind == NodeAssert
}

// ReadsIdentity reports whether the node's read-set contains the given
// identity primitive.
func (n Node) ReadsIdentity(name string) bool {
	for _, r := range n.Reads {
		if r == name {
			return true
		}
	}
	return false
}

// Call is one internal call site. Target is nil when the callee could not be
// resolved to a known function; unresolved calls contribute nothing downstream.
type Call struct {
	Name   string    `json:"name"`
	Target *Function `json:"-"`
}

// Function is a named callable with its body as control-flow nodes. Modifier
// bodies are represented the same way, distinguished by Kind.
type Function struct {
	Contract   string       `json:"contract"`
	Name       string       `json:"name"`
	Kind       CallableKind `json:"kind"`
	Visibility string       `json:"visibility"`
	Line       int          `json:"line"`
	Calls      []Call       `json:"calls,omitempty"`
	// ModifierNames is the attached modifier list as declared; Modifiers holds
	// the resolved function objects after Program.Resolve.
	ModifierNames []string    `json:"modifiers,omitempty"`
	Modifiers     []*Function `json:"-"`
	Nodes         []Node      `json:"nodes,omitempty"`
}

// DirectWrites returns the state variable names written in this function's own
// body, in node order, unfiltered.
func (f *Function) DirectWrites() []string {
	var out []string
	for _, n := range f.Nodes {
		out = append(out, n.Writes...)
	}
	return out
}

// AllStateVariablesWritten is the transitive write query: every state variable
// written by f, by anything it calls, or by its modifiers. The result keeps
// duplicates and unnamed entries; ordering and filtering are the caller's
// concern. Cycle-safe.
func (f *Function) AllStateVariablesWritten() []string {
	var out []string
	seen := map[*Function]bool{}
	var walk func(fn *Function)
	walk = func(fn *Function) {
		if fn == nil || seen[fn] {
			return
		}
		seen[fn] = true
		out = append(out, fn.DirectWrites()...)
		for _, c := range fn.Calls {
			walk(c.Target)
		}
		for _, m := range fn.Modifiers {
			walk(m)
		}
	}
	walk(f)
	return out
}

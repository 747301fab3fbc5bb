package solidity

import (
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xab-mack/authsurface/internal/cache"
	"github.com/xab-mack/authsurface/internal/model"
)

// Heuristic, line-oriented Solidity front-end. It does not aim to be a real
// parser; it recovers just enough structure for authorization analysis:
// contracts, state variables, function and modifier bodies, guard sites,
// state writes and internal call sites.

var (
	reContract = regexp.MustCompile(`^\s*(?:abstract\s+)?(?:contract|library|interface)\s+([A-Za-z_]\w*)`)
	reFunction = regexp.MustCompile(`^\s*function\s+([A-Za-z_]\w*)\s*\(`)
	reModifier = regexp.MustCompile(`^\s*modifier\s+([A-Za-z_]\w*)`)
	reCtor     = regexp.MustCompile(`^\s*constructor\s*\(`)
	reStateVar = regexp.MustCompile(`^\s*(mapping\s*\([^;]+\)|[A-Za-z_][\w.]*(?:\[\w*\])*)\s+(?:(public|private|internal)\s+)?(?:(constant|immutable)\s+)?([A-Za-z_]\w*)\s*(?:=[^;]*)?;`)
	reCallSite = regexp.MustCompile(`(^|[^\w.])([A-Za-z_]\w*)\s*\(`)
)

// BuildProgram builds the program model for one source file. Cached by file
// content; cache hits are re-resolved since call targets do not serialize.
func BuildProgram(filePath string, content string) (*model.Program, error) {
	abs, _ := filepath.Abs(filePath)
	key := cache.Key("sol-model-v2", abs, content)
	if b, ok := cache.Load(key); ok {
		var p model.Program
		if err := json.Unmarshal(b, &p); err == nil {
			p.Resolve()
			return &p, nil
		}
	}
	p := parse(abs, content)
	if data, err := json.Marshal(p); err == nil {
		_ = cache.Store(key, data)
	}
	p.Resolve()
	return p, nil
}

// stripComment drops a trailing line comment. String literals containing //
// will confuse it; acceptable for a heuristic front-end.
func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		return line[:i]
	}
	return line
}

type rawFunc struct {
	name   string
	kind   model.CallableKind
	line   int
	header string
	body   []bodyLine
}

type bodyLine struct {
	line int
	text string
}

func parse(file, content string) *model.Program {
	lines := strings.Split(content, "\n")
	p := &model.Program{}

	var cur *model.Contract
	var raws []rawFunc
	var fn *rawFunc
	inHeader := false
	depth := 0
	fnDepth := 0

	flushContract := func() {
		if cur == nil {
			return
		}
		for _, r := range raws {
			cur.Functions = append(cur.Functions, buildFunction(cur, r))
		}
		p.Contracts = append(p.Contracts, cur)
		cur = nil
		raws = nil
	}

	for i, l := range lines {
		line := stripComment(l)
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if inHeader {
			fn.header += " " + trimmed
			if !strings.ContainsAny(trimmed, "{;") {
				continue
			}
			inHeader = false
			if headerEndsDeclaration(fn.header) {
				// declaration only (interface/abstract); keep with empty body
				raws = append(raws, *fn)
				fn = nil
			} else {
				fnDepth = depth
			}
			depth += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
			continue
		}

		switch {
		case cur == nil && reContract.MatchString(line):
			cur = &model.Contract{Name: reContract.FindStringSubmatch(line)[1], File: file}
		case cur != nil && fn == nil && reFunction.MatchString(line):
			fn = &rawFunc{name: reFunction.FindStringSubmatch(line)[1], kind: model.KindFunction, line: i + 1, header: trimmed}
		case cur != nil && fn == nil && reModifier.MatchString(line):
			fn = &rawFunc{name: reModifier.FindStringSubmatch(line)[1], kind: model.KindModifier, line: i + 1, header: trimmed}
		case cur != nil && fn == nil && reCtor.MatchString(line):
			fn = &rawFunc{name: "constructor", kind: model.KindFunction, line: i + 1, header: trimmed}
		case cur != nil && fn == nil && depth == 1 && isStateVarDecl(trimmed):
			m := reStateVar.FindStringSubmatch(line)
			vis := m[2]
			if vis == "" {
				vis = "internal"
			}
			cur.StateVariables = append(cur.StateVariables, model.StateVariable{
				Name:       m[4],
				Type:       strings.Join(strings.Fields(m[1]), ""),
				Visibility: vis,
				Location:   "default",
			})
		case fn != nil && fnDepth > 0:
			fn.body = append(fn.body, bodyLine{line: i + 1, text: trimmed})
		}

		if fn != nil && fnDepth == 0 {
			// still consuming the header
			if !strings.ContainsAny(trimmed, "{;") {
				inHeader = true
				continue
			}
			if headerEndsDeclaration(fn.header) {
				raws = append(raws, *fn)
				fn = nil
			} else {
				fnDepth = depth
			}
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")

		if fn != nil && fnDepth > 0 && depth <= fnDepth {
			raws = append(raws, *fn)
			fn = nil
			fnDepth = 0
		}
		if cur != nil && depth == 0 {
			flushContract()
		}
	}
	flushContract()
	return p
}

// headerEndsDeclaration reports a body-less declaration, e.g. an interface
// member ending in ';'.
func headerEndsDeclaration(header string) bool {
	for i := len(header) - 1; i >= 0; i-- {
		switch header[i] {
		case '{', '}':
			return false
		case ';':
			return true
		}
	}
	return false
}

var stateVarExcluded = map[string]bool{
	"function": true, "modifier": true, "constructor": true, "event": true,
	"error": true, "using": true, "enum": true, "struct": true, "import": true,
	"pragma": true, "emit": true, "return": true, "require": true, "assert": true,
	"revert": true, "if": true, "for": true, "while": true,
}

func isStateVarDecl(line string) bool {
	if !reStateVar.MatchString(line) {
		return false
	}
	first := line
	if i := strings.IndexAny(first, " \t("); i > 0 {
		first = first[:i]
	}
	return !stateVarExcluded[first]
}

func buildFunction(c *model.Contract, r rawFunc) *model.Function {
	f := &model.Function{
		Contract:   c.Name,
		Name:       r.name,
		Kind:       r.kind,
		Visibility: headerVisibility(r.header, r.kind),
		Line:       r.line,
	}
	if r.kind == model.KindFunction {
		f.ModifierNames = headerModifiers(r.header)
	}
	body := r.body
	if len(body) == 0 {
		// single-line function: the body rides along in the header text
		if open := strings.Index(r.header, "{"); open >= 0 {
			if close := strings.LastIndex(r.header, "}"); close > open {
				if inner := strings.TrimSpace(r.header[open+1 : close]); inner != "" {
					body = []bodyLine{{line: r.line, text: inner}}
				}
			}
		}
	}
	names := stateVarNames(c)
	for _, bl := range body {
		f.Nodes = append(f.Nodes, scanLine(bl, names)...)
		for _, call := range callSites(bl.text) {
			f.Calls = append(f.Calls, model.Call{Name: call})
		}
	}
	return f
}

func stateVarNames(c *model.Contract) []string {
	out := make([]string, 0, len(c.StateVariables))
	for _, v := range c.StateVariables {
		out = append(out, v.Name)
	}
	return out
}

var headerKeywords = map[string]bool{
	"public": true, "external": true, "internal": true, "private": true,
	"view": true, "pure": true, "payable": true, "virtual": true,
	"override": true, "returns": true, "memory": true, "storage": true,
	"calldata": true, "function": true, "modifier": true, "constructor": true,
}

var reHeaderToken = regexp.MustCompile(`\b([A-Za-z_]\w*)\b`)

func headerVisibility(header string, kind model.CallableKind) string {
	if kind == model.KindModifier {
		return ""
	}
	tail := header
	if i := strings.Index(tail, "{"); i >= 0 {
		tail = tail[:i]
	}
	for _, m := range reHeaderToken.FindAllStringSubmatch(tail, -1) {
		switch m[1] {
		case "external", "internal", "private", "public":
			return m[1]
		}
	}
	return "public"
}

// headerModifiers extracts attached modifier names from the part of the
// function header after the parameter list.
func headerModifiers(header string) []string {
	tail := header
	if i := strings.Index(tail, ")"); i >= 0 {
		tail = tail[i+1:]
	}
	if i := strings.Index(tail, "{"); i >= 0 {
		tail = tail[:i]
	}
	if i := strings.Index(tail, "returns"); i >= 0 {
		tail = tail[:i]
	}
	var out []string
	for _, m := range reHeaderToken.FindAllStringSubmatch(tail, -1) {
		if !headerKeywords[m[1]] {
			out = append(out, m[1])
		}
	}
	return out
}

// scanLine classifies one body line into control-flow nodes: a guard site
// (require/assert/if) and/or state writes.
func scanLine(bl bodyLine, stateVars []string) []model.Node {
	var nodes []model.Node
	text := bl.text

	switch {
	case strings.HasPrefix(text, "require") && parensFollow(text, "require"):
		nodes = append(nodes, guardNode(model.NodeRequire, text, "require", bl.line))
	case strings.HasPrefix(text, "assert") && parensFollow(text, "assert"):
		nodes = append(nodes, guardNode(model.NodeAssert, text, "assert", bl.line))
	case strings.HasPrefix(text, "if") && parensFollow(text, "if"):
		nodes = append(nodes, guardNode(model.NodeBranch, text, "if", bl.line))
	}

	if writes := writeTargets(text, stateVars); len(writes) > 0 {
		nodes = append(nodes, model.Node{Kind: model.NodeStatement, Line: bl.line, Writes: writes})
	}
	return nodes
}

func parensFollow(text, keyword string) bool {
	rest := strings.TrimSpace(text[len(keyword):])
	return strings.HasPrefix(rest, "(")
}

func guardNode(kind model.NodeKind, text, keyword string, line int) model.Node {
	cond := condition(text, keyword)
	return model.Node{Kind: kind, Line: line, Expr: cond, Reads: identityReads(cond)}
}

// condition extracts the balanced-paren argument after keyword and renders it
// canonically: message arguments dropped, whitespace collapsed to single
// spaces.
func condition(text, keyword string) string {
	rest := strings.TrimSpace(text[len(keyword):])
	open := strings.Index(rest, "(")
	if open < 0 {
		return ""
	}
	depth := 0
	end := len(rest)
	for i := open; i < len(rest); i++ {
		if rest[i] == '(' {
			depth++
		} else if rest[i] == ')' {
			depth--
			if depth == 0 {
				end = i
				break
			}
		}
	}
	inner := rest[open+1 : end]
	// drop a trailing revert-message argument: require(cond, "msg")
	if i := topLevelComma(inner); i >= 0 {
		inner = inner[:i]
	}
	return strings.Join(strings.Fields(inner), " ")
}

func topLevelComma(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func identityReads(cond string) []string {
	var out []string
	for _, id := range []string{model.CallerIdentity, "tx.origin"} {
		if strings.Contains(cond, id) {
			out = append(out, id)
		}
	}
	return out
}

// writeTargets reports which of the given state variables the line assigns
// to: plain or compound assignment, increment/decrement, or delete.
func writeTargets(line string, stateVars []string) []string {
	var out []string
	for _, name := range stateVars {
		if writesTo(line, name) {
			out = append(out, name)
		}
	}
	return out
}

func writesTo(line, name string) bool {
	if strings.HasPrefix(line, "delete ") {
		rest := strings.TrimSpace(line[len("delete "):])
		return rest == name || strings.HasPrefix(rest, name+"[") || strings.HasPrefix(rest, name+";")
	}
	for idx := 0; idx < len(line); {
		j := strings.Index(line[idx:], name)
		if j < 0 {
			return false
		}
		start := idx + j
		idx = start + len(name)
		if start > 0 && isWordByte(line[start-1]) {
			continue
		}
		if idx < len(line) && isWordByte(line[idx]) {
			continue
		}
		if assignmentFollows(line[idx:]) {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// assignmentFollows checks whether rest begins (after index expressions and
// spaces) with an assignment or mutation operator.
func assignmentFollows(rest string) bool {
	i := 0
	for i < len(rest) {
		switch rest[i] {
		case ' ', '\t':
			i++
			continue
		case '[':
			depth := 0
			for ; i < len(rest); i++ {
				if rest[i] == '[' {
					depth++
				} else if rest[i] == ']' {
					depth--
					if depth == 0 {
						i++
						break
					}
				}
			}
			continue
		}
		break
	}
	rest = rest[i:]
	switch {
	case strings.HasPrefix(rest, "=="):
		return false
	case strings.HasPrefix(rest, "="):
		return true
	case strings.HasPrefix(rest, "++"), strings.HasPrefix(rest, "--"):
		return true
	}
	for _, op := range []string{"+=", "-=", "*=", "/=", "%=", "|=", "&=", "^=", "<<=", ">>="} {
		if strings.HasPrefix(rest, op) {
			return true
		}
	}
	return false
}

var callKeywords = map[string]bool{
	"require": true, "assert": true, "revert": true, "if": true, "for": true,
	"while": true, "return": true, "emit": true, "new": true, "delete": true,
	"payable": true, "address": true, "keccak256": true, "sha256": true,
	"abi": true, "type": true, "unchecked": true, "uint": true, "uint256": true,
	"int": true, "int256": true, "bytes": true, "bytes32": true, "string": true,
	"bool": true,
}

// callSites extracts candidate internal call names from a body line. Member
// calls (x.f()) are excluded; resolution against the contract's own functions
// happens later and leaves unknown names as unresolved calls.
func callSites(line string) []string {
	var out []string
	for _, m := range reCallSite.FindAllStringSubmatch(line, -1) {
		name := m[2]
		if callKeywords[name] {
			continue
		}
		out = append(out, name)
	}
	return out
}

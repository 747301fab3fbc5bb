package model

// Resolve links call targets and modifier references to their function
// objects. Names resolve within the declaring contract only; anything else
// (library calls, inherited members, builtins) stays unresolved and is
// skipped by consumers. Safe to call more than once.
func (p *Program) Resolve() {
	for _, c := range p.Contracts {
		byName := make(map[string]*Function, len(c.Functions))
		for _, f := range c.Functions {
			byName[f.Name] = f
		}
		for _, f := range c.Functions {
			for i := range f.Calls {
				f.Calls[i].Target = byName[f.Calls[i].Name]
			}
			f.Modifiers = f.Modifiers[:0]
			for _, name := range f.ModifierNames {
				if m, ok := byName[name]; ok {
					f.Modifiers = append(f.Modifiers, m)
				}
			}
		}
	}
}

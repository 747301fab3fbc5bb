package model

// CallerIdentity is the symbolic name of the caller-identity primitive as it
// appears in identity read-sets.
const CallerIdentity = "msg.sender"

// Program is the resolved view of one analysis run: every contract found in
// the analyzed sources, with call targets already linked. It is immutable
// once built; analysis layers only read from it.
type Program struct {
	Contracts []*Contract `json:"contracts"`
}

type Contract struct {
	Name           string          `json:"name"`
	File           string          `json:"file"`
	StateVariables []StateVariable `json:"stateVariables"`
	Functions      []*Function     `json:"functions"`
}

type StateVariable struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Visibility string `json:"visibility"`
	Location   string `json:"location"`
}

// Contract lookups are by declaration name; declaration order is preserved
// everywhere so repeated runs enumerate identically.
func (p *Program) Contract(name string) *Contract {
	for _, c := range p.Contracts {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (c *Contract) Function(name string) *Function {
	for _, f := range c.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

package analysis

import "github.com/xab-mack/authsurface/internal/model"

// Record computes the per-function authorization record: what persistent
// state the function can mutate, and under which caller-identity conditions
// it runs.
func Record(f *model.Function) model.FunctionRecord {
	return model.FunctionRecord{
		Function:              f.Name,
		Visibility:            f.Visibility,
		Line:                  f.Line,
		StateVariablesWritten: Writes(f),
		CallerConditions:      Guards(Closure(f)),
	}
}

// AnalyzeContract produces the contract's report: its state variable rows and
// one record per declared function, in declaration order. Modifier bodies are
// not reported as rows of their own; they surface through the functions they
// attach to.
func AnalyzeContract(c *model.Contract) model.ContractReport {
	rep := model.ContractReport{
		Contract:       c.Name,
		File:           c.File,
		StateVariables: c.StateVariables,
		Functions:      []model.FunctionRecord{},
	}
	if rep.StateVariables == nil {
		rep.StateVariables = []model.StateVariable{}
	}
	for _, f := range c.Functions {
		if f.Kind != model.KindFunction {
			continue
		}
		rep.Functions = append(rep.Functions, Record(f))
	}
	return rep
}

// AnalyzeProgram runs AnalyzeContract over every contract in declaration
// order.
func AnalyzeProgram(p *model.Program) []model.ContractReport {
	out := make([]model.ContractReport, 0, len(p.Contracts))
	for _, c := range p.Contracts {
		out = append(out, AnalyzeContract(c))
	}
	return out
}

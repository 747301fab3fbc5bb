package model

import "time"

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func SeverityGTE(a, b Severity) bool {
	order := map[Severity]int{SeverityLow: 1, SeverityMedium: 2, SeverityHigh: 3}
	return order[a] >= order[b]
}

// Finding marks a function that writes persistent state with no caller
// identity check anywhere on its reachable control path.
type Finding struct {
	Contract    string   `json:"contract"`
	Function    string   `json:"function"`
	Severity    Severity `json:"severity"`
	File        string   `json:"file"`
	Line        int      `json:"line"`
	Writes      []string `json:"writes"`
	Message     string   `json:"message"`
	Fingerprint string   `json:"fingerprint"`
}

type AnalyzeRequest struct {
	Path       string
	ConfigPath string
	TimeBudget time.Duration
}

type AnalyzeResult struct {
	Contracts []ContractReport `json:"contracts"`
	Findings  []Finding        `json:"findings"`
	Elapsed   time.Duration    `json:"elapsed"`
}

// ContractReport is one contract's share of the output: the state variable
// descriptor rows and the per-function authorization rows, both in
// declaration order with set cells canonically sorted.
type ContractReport struct {
	Contract       string           `json:"contract"`
	File           string           `json:"file"`
	StateVariables []StateVariable  `json:"stateVariables"`
	Functions      []FunctionRecord `json:"functions"`
}

// FunctionRecord is the per-function result the core hands to the report
// layer: sorted, deduplicated, never nil.
type FunctionRecord struct {
	Function              string   `json:"function"`
	Visibility            string   `json:"visibility"`
	Line                  int      `json:"line"`
	StateVariablesWritten []string `json:"stateVariablesWritten"`
	CallerConditions      []string `json:"callerConditions"`
}

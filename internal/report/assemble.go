package report

import (
	"strings"

	"github.com/xab-mack/authsurface/internal/model"
	"github.com/xab-mack/authsurface/internal/util"
)

// SetCell renders a sorted set for a table cell. The empty set renders as an
// explicit marker, never as a blank cell.
func SetCell(vals []string) string {
	return "[" + strings.Join(vals, ", ") + "]"
}

// Findings derives the security-review view from the assembled reports: every
// function that writes persistent state with no caller-identity condition
// anywhere in its closure. Externally reachable writers rank higher.
func Findings(reports []model.ContractReport) []model.Finding {
	var out []model.Finding
	for _, rep := range reports {
		for _, fr := range rep.Functions {
			if len(fr.StateVariablesWritten) == 0 || len(fr.CallerConditions) > 0 {
				continue
			}
			if fr.Function == "constructor" {
				continue
			}
			sev := model.SeverityMedium
			if fr.Visibility == "public" || fr.Visibility == "external" {
				sev = model.SeverityHigh
			}
			out = append(out, model.Finding{
				Contract:    rep.Contract,
				Function:    fr.Function,
				Severity:    sev,
				File:        rep.File,
				Line:        fr.Line,
				Writes:      fr.StateVariablesWritten,
				Message:     "state-changing function has no condition on msg.sender",
				Fingerprint: util.Fingerprint(rep.Contract, fr.Function, fr.Line, strings.Join(fr.StateVariablesWritten, ",")),
			})
		}
	}
	return out
}

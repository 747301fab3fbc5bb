package engine

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/xab-mack/authsurface/internal/config"
	"github.com/xab-mack/authsurface/internal/model"
)

// applyIgnores filters contract reports based on config ignore rules. A rule
// naming only a contract drops the whole report; one naming a function drops
// that row.
func applyIgnores(reports []model.ContractReport, cfg config.Config) []model.ContractReport {
	if len(cfg.Ignore) == 0 {
		return reports
	}
	var out []model.ContractReport
	for _, rep := range reports {
		dropped := false
		for _, ig := range cfg.Ignore {
			if !ruleMatchesContract(ig, rep) {
				continue
			}
			if ig.Function == "" {
				dropped = true
				break
			}
			var rows []model.FunctionRecord
			for _, fr := range rep.Functions {
				if fr.Function != ig.Function {
					rows = append(rows, fr)
				}
			}
			rep.Functions = rows
		}
		if !dropped {
			out = append(out, rep)
		}
	}
	return out
}

func ruleMatchesContract(ig config.IgnoreRule, rep model.ContractReport) bool {
	if ig.Contract != "" && ig.Contract != rep.Contract {
		return false
	}
	if ig.Path != "" && !strings.HasPrefix(filepath.ToSlash(rep.File), filepath.ToSlash(ig.Path)) {
		return false
	}
	return ig.Contract != "" || ig.Path != ""
}

// suppressInline drops findings whose source carries a suppression marker
// near the function header.
// Format: // authsurface:ignore [functionName]
func suppressInline(findings []model.Finding) []model.Finding {
	var out []model.Finding
	for _, f := range findings {
		if hasInlineSuppression(f.File, f.Function, f.Line) {
			continue
		}
		out = append(out, f)
	}
	return out
}

const suppressionMarker = "authsurface:ignore"

func hasInlineSuppression(filePath, function string, line int) bool {
	fh, err := os.Open(filePath)
	if err != nil {
		return false
	}
	defer fh.Close()
	var lines []string
	s := bufio.NewScanner(fh)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if len(lines) == 0 {
		return false
	}
	// window around the function header: 0-based indices
	from := line - 1 - 2
	if from < 0 {
		from = 0
	}
	to := line - 1
	if to >= len(lines) {
		to = len(lines) - 1
	}
	for i := from; i <= to; i++ {
		idx := strings.Index(lines[i], suppressionMarker)
		if idx < 0 {
			continue
		}
		arg := strings.TrimSpace(lines[i][idx+len(suppressionMarker):])
		if arg == "" || arg == function {
			return true
		}
	}
	return false
}

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xab-mack/authsurface/internal/model"
)

// ExportMarkdown writes one Markdown document per contract into dir:
// <prefix>_<contract>.md with both tables. Pipe characters in cells are
// escaped so rendered tables stay intact.
func ExportMarkdown(reports []model.ContractReport, prefix, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	var written []string
	for _, rep := range reports {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.md", prefix, rep.Contract))
		var b strings.Builder
		fmt.Fprintf(&b, "# Contract: %s\n\n", rep.Contract)

		b.WriteString("## State Variables\n\n")
		b.WriteString("| Variable Name | Type | Visibility | Location |\n")
		b.WriteString("|---------------|------|------------|----------|\n")
		for _, v := range rep.StateVariables {
			mdRow(&b, v.Name, v.Type, v.Visibility, v.Location)
		}

		b.WriteString("\n## Functions and State Variable Writes\n\n")
		b.WriteString("| Function | State Variables Written | Conditions on msg.sender |\n")
		b.WriteString("|----------|------------------------|-------------------------|\n")
		for _, fr := range rep.Functions {
			mdRow(&b, fr.Function, SetCell(fr.StateVariablesWritten), SetCell(fr.CallerConditions))
		}

		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func mdRow(b *strings.Builder, cells ...string) {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	b.WriteString("| " + strings.Join(escaped, " | ") + " |\n")
}

package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xab-mack/authsurface/internal/model"
)

// ExportCSV writes two CSV files per contract into dir:
// <prefix>_<contract>_state_variables.csv and <prefix>_<contract>_functions.csv.
// Returns the paths written, in a stable order.
func ExportCSV(reports []model.ContractReport, prefix, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	var written []string
	for _, rep := range reports {
		varsPath := filepath.Join(dir, fmt.Sprintf("%s_%s_state_variables.csv", prefix, rep.Contract))
		varRows := [][]string{{"Variable Name", "Type", "Visibility", "Location"}}
		for _, v := range rep.StateVariables {
			varRows = append(varRows, []string{v.Name, v.Type, v.Visibility, v.Location})
		}
		if err := writeCSV(varsPath, varRows); err != nil {
			return written, err
		}
		written = append(written, varsPath)

		fnsPath := filepath.Join(dir, fmt.Sprintf("%s_%s_functions.csv", prefix, rep.Contract))
		fnRows := [][]string{{"Function", "State Variables Written", "Conditions on msg.sender"}}
		for _, fr := range rep.Functions {
			fnRows = append(fnRows, []string{fr.Function, SetCell(fr.StateVariablesWritten), SetCell(fr.CallerConditions)})
		}
		if err := writeCSV(fnsPath, fnRows); err != nil {
			return written, err
		}
		written = append(written, fnsPath)
	}
	return written, nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

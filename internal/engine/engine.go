package engine

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/xab-mack/authsurface/internal/analysis"
	"github.com/xab-mack/authsurface/internal/config"
	"github.com/xab-mack/authsurface/internal/model"
	"github.com/xab-mack/authsurface/internal/report"
	"github.com/xab-mack/authsurface/internal/solidity"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Analyze builds the program model for every Solidity file under the
// requested path and computes the per-function authorization records.
// Contracts are analyzed concurrently; output order follows file then
// contract declaration order so repeated runs are byte-identical.
func (e *Engine) Analyze(ctx context.Context, req model.AnalyzeRequest) (*model.AnalyzeResult, error) {
	start := time.Now()

	program, err := e.LoadProgram(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	reports := analyzeContracts(ctx, program)

	cfg, _, err := config.Load(configDir(req))
	if err != nil {
		return nil, err
	}
	reports = applyIgnores(reports, cfg)
	findings := suppressInline(report.Findings(reports))

	return &model.AnalyzeResult{
		Contracts: reports,
		Findings:  findings,
		Elapsed:   time.Since(start),
	}, nil
}

func configDir(req model.AnalyzeRequest) string {
	if req.ConfigPath != "" {
		return req.ConfigPath
	}
	if info, err := os.Stat(req.Path); err == nil && !info.IsDir() {
		return filepath.Dir(req.Path)
	}
	return req.Path
}

// LoadProgram builds the merged program model for every Solidity file under
// root without running the analysis.
func (e *Engine) LoadProgram(ctx context.Context, root string) (*model.Program, error) {
	program := &model.Program{}
	for _, path := range discoverFiles(root) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			continue // unreadable files degrade to omission
		}
		p, err := solidity.BuildProgram(path, string(b))
		if err != nil {
			continue
		}
		program.Contracts = append(program.Contracts, p.Contracts...)
	}
	return program, nil
}

// discoverFiles returns Solidity sources under root in lexical walk order.
// A root that is itself a file is analyzed directly.
func discoverFiles(root string) []string {
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		if filepath.Ext(root) == ".sol" {
			return []string{root}
		}
		return nil
	}
	var out []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(d.Name()) == ".sol" {
			out = append(out, path)
		}
		return nil
	})
	return out
}

// analyzeContracts runs the core per contract behind a NumCPU semaphore.
// Each contract reads only the immutable program model and writes its own
// slot, so no coordination beyond the WaitGroup is needed.
func analyzeContracts(ctx context.Context, program *model.Program) []model.ContractReport {
	cpu := runtime.NumCPU()
	if cpu < 2 {
		cpu = 2
	}
	out := make([]model.ContractReport, len(program.Contracts))
	sem := make(chan struct{}, cpu)
	var wg sync.WaitGroup
	for i, c := range program.Contracts {
		if ctx.Err() != nil {
			break
		}
		i, c := i, c
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			out[i] = analysis.AnalyzeContract(c)
		}()
	}
	wg.Wait()
	if ctx.Err() != nil {
		return out[:0]
	}
	return out
}

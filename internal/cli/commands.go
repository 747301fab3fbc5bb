package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xab-mack/authsurface/internal/config"
	"github.com/xab-mack/authsurface/internal/engine"
	"github.com/xab-mack/authsurface/internal/model"
	"github.com/xab-mack/authsurface/internal/report"
	"github.com/xab-mack/authsurface/internal/tui"
)

func AddCommands(root *cobra.Command) {
	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newContractsCmd())
}

func newAnalyzeCmd() *cobra.Command {
	var (
		path          string
		format        string
		outputFile    string
		exportDir     string
		exportPrefix  string
		budgetMs      int
		useTUI        bool
		baseline      string
		writeBaseline string
		failUnguarded bool
	)
	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Report state variables written and msg.sender conditions per function",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				path = "."
			}

			cfg, _, err := config.Load(path)
			if err != nil {
				return err
			}
			if budgetMs == 0 {
				budgetMs = cfg.TimeBudgetMs
			}
			if exportDir == "" {
				exportDir = cfg.ExportDir
			}
			if exportPrefix == "" {
				exportPrefix = cfg.ExportPrefix
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(budgetMs)*time.Millisecond)
			defer cancel()

			eng := engine.New()
			result, err := eng.Analyze(ctx, model.AnalyzeRequest{Path: path, TimeBudget: time.Duration(budgetMs) * time.Millisecond})
			if err != nil {
				return err
			}
			result.Findings, err = engine.FilterBaseline(baseline, result.Findings)
			if err != nil {
				return err
			}

			if useTUI {
				return tui.Run(result.Contracts)
			}

			switch format {
			case "json":
				data, _ := json.MarshalIndent(result, "", "  ")
				if outputFile != "" {
					if err := os.WriteFile(outputFile, data, 0o644); err != nil {
						return err
					}
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), string(data))
				}
			case "sarif":
				data, err := report.ToSARIF(result.Findings)
				if err != nil {
					return err
				}
				if outputFile != "" {
					if err := os.WriteFile(outputFile, data, 0o644); err != nil {
						return err
					}
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), string(data))
				}
			case "csv":
				paths, err := report.ExportCSV(result.Contracts, exportPrefix, exportDir)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintf(cmd.OutOrStdout(), "CSV file exported: %s\n", p)
				}
			case "md":
				paths, err := report.ExportMarkdown(result.Contracts, exportPrefix, exportDir)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintf(cmd.OutOrStdout(), "Markdown file exported: %s\n", p)
				}
			default:
				fmt.Fprint(cmd.OutOrStdout(), report.RenderText(result.Contracts))
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d contracts, %d unguarded state-writing functions (elapsed %s)\n",
					len(result.Contracts), len(result.Findings), result.Elapsed)
			}

			if writeBaseline != "" {
				if err := engine.WriteBaseline(writeBaseline, result.Findings); err != nil {
					return err
				}
			}
			if failUnguarded && len(result.Findings) > 0 {
				return fmt.Errorf("%d state-changing functions without msg.sender conditions", len(result.Findings))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table|json|csv|md|sarif")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write report to file (with --format json|sarif)")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory for csv/md exports (default from config)")
	cmd.Flags().StringVar(&exportPrefix, "prefix", "", "Filename prefix for csv/md exports (default from config)")
	cmd.Flags().IntVar(&budgetMs, "budget-ms", 0, "Time budget for the analysis in milliseconds (default from config)")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Render interactive TUI output")
	cmd.Flags().StringVar(&baseline, "baseline", "", "Suppress findings listed in a baseline file")
	cmd.Flags().StringVar(&writeBaseline, "write-baseline", "", "Write a baseline file with finding fingerprints")
	cmd.Flags().BoolVar(&failUnguarded, "fail-on-unguarded", false, "Exit non-zero if any unguarded state write is found")
	return cmd
}

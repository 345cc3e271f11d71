package stackgen

import (
	"context"
	"io"

	"github.com/railwayapp/stackgen/internal/analyzer"
	"github.com/spf13/cobra"
)

var analyzeFormat string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Report the full stack: framework, package managers, languages, deploy targets and environment",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", formatText, "output format: text, json, yaml")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p, err := openProject(ctx, args)
	if err != nil {
		return err
	}
	defer p.Close()

	report, err := analyze(ctx, p)
	if err != nil {
		return err
	}

	return emit(cmd.OutOrStdout(), analyzeFormat, report, func(w io.Writer) {
		printReport(w, report)
	})
}

func analyze(ctx context.Context, p *project) (*analyzer.Report, error) {
	a := analyzer.New(p.fs,
		analyzer.WithLogger(logger),
		analyzer.WithDetectionOptions(cfg.DetectionOptions()...),
		analyzer.WithMaxReferenceFiles(cfg.Detection.MaxReferenceFiles),
	)
	return a.Analyze(ctx, p.root)
}

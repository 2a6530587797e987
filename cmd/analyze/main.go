// Command analyze は履歴書と求人票のマッチ分析を1回実行し、結果を端末に表示します。
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"resume_optimizer/internal/app/di"
	"resume_optimizer/internal/feature/analysis/domain/entity"
	"resume_optimizer/internal/feature/analysis/usecase"
)

type options struct {
	jobPath    string
	jobText    string
	resumePath string
	companyURL string
	outPath    string
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, ".env not found; using system environment variables")
	}
	if err := newRootCmd(di.NewAnalyzer).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(newAnalyzer func(ctx context.Context) (di.Analyzer, error)) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "analyze --resume resume.pdf (--job job.pdf | --job-text TEXT)",
		Short:         "Compare a resume with a job description and print a match report",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := opts.input()
			if err != nil {
				return err
			}

			analyzer, err := newAnalyzer(cmd.Context())
			if err != nil {
				return err
			}
			result, err := analyzer.Run(cmd.Context(), in)
			if err != nil {
				color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), "analysis failed:", err)
				return err
			}

			printReport(cmd.OutOrStdout(), usecase.BuildReport(result))

			if opts.outPath != "" {
				if err := os.WriteFile(opts.outPath, []byte(result.RawText), 0o644); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "report saved to", opts.outPath)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.jobPath, "job", "", "job description PDF")
	f.StringVar(&opts.jobText, "job-text", "", "job description text (used when --job is not given)")
	f.StringVar(&opts.resumePath, "resume", "", "resume PDF")
	f.StringVar(&opts.companyURL, "company", "", "company website URL (optional)")
	f.StringVar(&opts.outPath, "out", "", "write the full analysis text to this file")
	_ = cmd.MarkFlagRequired("resume")

	return cmd
}

// input はフラグからユースケースの入力を組み立てます。
func (o options) input() (usecase.AnalyzeInput, error) {
	in := usecase.AnalyzeInput{
		JobText:    o.jobText,
		CompanyURL: o.companyURL,
	}

	var err error
	if in.ResumePDF, err = os.ReadFile(o.resumePath); err != nil {
		return in, fmt.Errorf("failed to read resume: %w", err)
	}
	if o.jobPath != "" {
		if in.JobPDF, err = os.ReadFile(o.jobPath); err != nil {
			return in, fmt.Errorf("failed to read job description: %w", err)
		}
	}
	return in, nil
}

func tierColor(t entity.ScoreTier) *color.Color {
	switch t {
	case entity.TierExcellent, entity.TierGood:
		return color.New(color.FgGreen, color.Bold)
	case entity.TierModerate:
		return color.New(color.FgYellow, color.Bold)
	case entity.TierUnavailable:
		return color.New(color.Faint)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func printReport(w io.Writer, report *entity.Report) {
	if c := report.Result.Company; c != nil {
		color.New(color.FgCyan, color.Bold).Fprintln(w, "🏢 "+c.Name)
		fmt.Fprintln(w, c.Description)
		fmt.Fprintln(w)
	}

	ind := report.Indicator
	score := "N/A"
	if report.Result.MatchScore.Found {
		score = fmt.Sprintf("%d%%", report.Result.MatchScore.Value)
	}
	tierColor(ind.Tier).Fprintf(w, "%s Match Score: %s\n", ind.Emoji, score)
	fmt.Fprintf(w, "%s %s\n", ind.Icon, ind.Message)

	for _, card := range report.Cards {
		fmt.Fprintln(w)
		color.New(color.Bold).Fprintf(w, "%s %s\n", card.Category.Icon(), card.Title)
		fmt.Fprintln(w, strings.TrimSpace(card.Body))
	}
}

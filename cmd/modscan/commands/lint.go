package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/modscan/internal/app"
	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/modscan/internal/ui/style"
)

func (c *CLI) newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [roots...]",
		Short: "Validate module descriptors and report issues",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			report, err := c.app.Lint(cmd.Context(), scanOptions(cmd, args))
			if report == nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			if asJSON {
				issues := report.Issues
				if issues == nil {
					issues = []domain.Issue{}
				}
				if jsonErr := p.json(issues); jsonErr != nil {
					return jsonErr
				}
				return err
			}
			printLint(p, report)
			return err
		},
	}
	scanFlags(cmd)
	cmd.Flags().Bool("json", false, "Print issues as JSON")
	return cmd
}

func printLint(p *printer, report *app.LintReport) {
	var errs, warnings int
	for _, issue := range report.Issues {
		icon := p.warning.Render(style.Warning)
		if issue.Severity == domain.SeverityError {
			icon = p.failure.Render(style.Cross)
			errs++
		} else {
			warnings++
		}
		p.line("%s %s", icon, issue.String())
		if issue.Source != "" {
			p.line("  %s", p.muted.Render(p.rel(issue.Source)))
		}
	}
	for _, failure := range report.Result.Failures {
		p.line("%s %s %s", p.failure.Render(style.Cross), p.rel(failure.Path), p.muted.Render(failure.Err.Error()))
	}

	const summary = "%d modules checked, %d errors, %d warnings"
	if errs == 0 {
		p.line("%s "+summary, p.success.Render(style.Check), len(report.Result.Records), errs, warnings)
		return
	}
	p.line(summary, len(report.Result.Records), errs, warnings)
}

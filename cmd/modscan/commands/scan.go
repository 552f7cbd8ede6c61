package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/modscan/internal/engine/scanner"
	"go.trai.ch/modscan/internal/ui/style"
	"go.trai.ch/zerr"
)

type failureJSON struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type scanJSON struct {
	Modules  []domain.Record `json:"modules"`
	Failures []failureJSON   `json:"failures"`
}

func (c *CLI) newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [roots...]",
		Short: "Load every module descriptor below the given or configured roots",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			result, err := c.app.Scan(cmd.Context(), scanOptions(cmd, args))
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			if asJSON {
				if err := p.json(toScanJSON(result)); err != nil {
					return err
				}
			} else {
				printScan(p, result)
			}

			if n := len(result.Failures); n > 0 {
				return zerr.With(zerr.Wrap(domain.ErrDescriptorsFailed, "scan incomplete"), "failures", n)
			}
			return nil
		},
	}
	scanFlags(cmd)
	cmd.Flags().Bool("json", false, "Print the loaded descriptors as JSON")
	return cmd
}

func printScan(p *printer, result *scanner.Result) {
	for _, rec := range result.Records {
		p.line("%s %s %s",
			p.success.Render(style.Check),
			p.name.Render(rec.Descriptor.Name),
			p.muted.Render(string(rec.Format)+" "+p.rel(rec.Descriptor.Source)),
		)
	}
	for _, failure := range result.Failures {
		p.line("%s %s %s",
			p.failure.Render(style.Cross),
			p.rel(failure.Path),
			p.muted.Render(failure.Err.Error()),
		)
	}
	p.line("%d modules, %d failures", len(result.Records), len(result.Failures))
}

func toScanJSON(result *scanner.Result) scanJSON {
	out := scanJSON{
		Modules:  result.Records,
		Failures: make([]failureJSON, 0, len(result.Failures)),
	}
	if out.Modules == nil {
		out.Modules = []domain.Record{}
	}
	for _, failure := range result.Failures {
		out.Failures = append(out.Failures, failureJSON{Path: failure.Path, Error: failure.Err.Error()})
	}
	return out
}

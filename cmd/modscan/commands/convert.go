package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Re-encode a module descriptor in another format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, _ := cmd.Flags().GetString("to")
			out, _ := cmd.Flags().GetString("out")

			data, err := c.app.Convert(cmd.Context(), args[0], domain.Format(to))
			if err != nil {
				return err
			}

			if out == "" {
				newPrinter(cmd.OutOrStdout()).write(data)
				return nil
			}
			if err := os.WriteFile(out, data, domain.FilePerm); err != nil {
				return zerr.With(errors.Join(domain.ErrDescriptorEncodeFailed, err), "path", out)
			}
			return nil
		},
	}
	cmd.Flags().String("to", string(domain.FormatYAML), "Target format: yaml, hcl, or rules")
	cmd.Flags().String("out", "", "Write to this file instead of standard output")
	return cmd
}

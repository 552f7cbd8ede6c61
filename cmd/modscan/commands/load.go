package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/modscan/internal/core/domain"
)

const formatJSON = "json"

func (c *CLI) newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Load a single module descriptor and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			p := newPrinter(cmd.OutOrStdout())

			if output == formatJSON {
				rec, err := c.app.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return p.json(rec.Descriptor)
			}

			data, err := c.app.Convert(cmd.Context(), args[0], domain.Format(output))
			if err != nil {
				return err
			}
			p.write(data)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", formatJSON, "Output format: json, yaml, hcl, or rules")
	return cmd
}

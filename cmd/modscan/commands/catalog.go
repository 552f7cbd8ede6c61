package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/modscan/internal/ui/style"
)

func dbFlag(cmd *cobra.Command) {
	cmd.Flags().String("db", domain.DefaultCatalogFile, "Path of the module catalog database")
}

func (c *CLI) newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [roots...]",
		Short: "Scan descriptors and write them to the module catalog",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _ := cmd.Flags().GetString("db")
			n, err := c.app.Export(cmd.Context(), db, scanOptions(cmd, args))
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.line("%s exported %d modules to %s", p.success.Render(style.Check), n, db)
			return nil
		},
	}
	scanFlags(cmd)
	dbFlag(cmd)
	return cmd
}

func (c *CLI) newDependentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dependents <module>",
		Short: "List catalog modules that depend on a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _ := cmd.Flags().GetString("db")
			names, err := c.app.Dependents(cmd.Context(), db, args[0])
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			for _, name := range names {
				p.line("%s", name)
			}
			return nil
		},
	}
	dbFlag(cmd)
	return cmd
}

func (c *CLI) newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the modules stored in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, _ := cmd.Flags().GetString("db")
			asJSON, _ := cmd.Flags().GetBool("json")
			records, err := c.app.Catalog(cmd.Context(), db)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			if asJSON {
				if records == nil {
					records = []domain.Record{}
				}
				return p.json(records)
			}
			for _, rec := range records {
				p.line("%s %s", p.name.Render(rec.Descriptor.Name), p.muted.Render(string(rec.Format)+" "+p.rel(rec.Descriptor.Source)))
			}
			return nil
		},
	}
	dbFlag(cmd)
	cmd.Flags().Bool("json", false, "Print the stored records as JSON")
	return cmd
}

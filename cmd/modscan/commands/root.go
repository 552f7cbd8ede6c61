// Package commands implements the CLI commands for modscan.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/modscan/internal/app"
	"go.trai.ch/modscan/internal/build"
	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/modscan/internal/engine/scanner"
)

// CLI represents the command line interface for modscan.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Load(ctx context.Context, path string) (domain.Record, error)
	Scan(ctx context.Context, opts app.ScanOptions) (*scanner.Result, error)
	Lint(ctx context.Context, opts app.ScanOptions) (*app.LintReport, error)
	Convert(ctx context.Context, path string, format domain.Format) ([]byte, error)
	Export(ctx context.Context, dbPath string, opts app.ScanOptions) (int, error)
	Dependents(ctx context.Context, dbPath, module string) ([]string, error)
	Catalog(ctx context.Context, dbPath string) ([]domain.Record, error)
	Watch(ctx context.Context, opts app.ScanOptions, onChange func(app.Change)) error
	SetJSONLogging(enable bool)
	SetTracing(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "modscan",
		Short:         "Inspect, validate and convert engine module descriptors",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("json-log", false, "Emit log records as JSON")
	rootCmd.PersistentFlags().Bool("trace", false, "Log every descriptor load with its duration")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		jsonLog, _ := cmd.Flags().GetBool("json-log")
		c.app.SetJSONLogging(jsonLog)
		trace, _ := cmd.Flags().GetBool("trace")
		c.app.SetTracing(trace)
	}

	rootCmd.AddCommand(c.newLoadCmd())
	rootCmd.AddCommand(c.newScanCmd())
	rootCmd.AddCommand(c.newLintCmd())
	rootCmd.AddCommand(c.newConvertCmd())
	rootCmd.AddCommand(c.newExportCmd())
	rootCmd.AddCommand(c.newDependentsCmd())
	rootCmd.AddCommand(c.newCatalogCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// scanFlags registers the flags shared by every command that scans a tree.
func scanFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("jobs", "j", 0, "Number of descriptors loaded at once (0 uses one per CPU)")
	cmd.Flags().Bool("fail-fast", false, "Abort on the first malformed descriptor")
}

func scanOptions(cmd *cobra.Command, roots []string) app.ScanOptions {
	jobs, _ := cmd.Flags().GetInt("jobs")
	failFast, _ := cmd.Flags().GetBool("fail-fast")
	return app.ScanOptions{
		Roots:       roots,
		Concurrency: jobs,
		FailFast:    failFast,
	}
}

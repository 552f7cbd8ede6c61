// Package app implements the application layer for modscan.
package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/modscan/internal/adapters/watcher"
	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/modscan/internal/core/ports"
	"go.trai.ch/modscan/internal/engine/scanner"
	"go.trai.ch/modscan/internal/engine/validator"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	codecs       ports.Codecs
	scanner      *scanner.Scanner
	newValidator validator.Factory
	catalogs     ports.CatalogOpener
	watchers     ports.WatcherFactory
	logger       ports.Logger
	workDir      string
	debounce     time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	codecs ports.Codecs,
	scan *scanner.Scanner,
	newValidator validator.Factory,
	catalogs ports.CatalogOpener,
	watchers ports.WatcherFactory,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		codecs:       codecs,
		scanner:      scan,
		newValidator: newValidator,
		catalogs:     catalogs,
		watchers:     watchers,
		logger:       log,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithWorkDir resolves configuration and relative roots against dir instead of the
// process working directory.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithDebounceWindow sets the quiet period used by Watch.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounce = d
	return a
}

// SetJSONLogging switches the logger to JSON output when it supports it.
func (a *App) SetJSONLogging(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// SetTracing reports descriptor load spans through the logger when enabled.
func (a *App) SetTracing(enable bool) {
	a.scanner.SetTracing(enable)
}

// ScanOptions overrides configuration for a single scan.
type ScanOptions struct {
	// Roots replaces the configured roots when non-empty.
	Roots []string
	// Concurrency replaces the configured concurrency when positive.
	Concurrency int
	// FailFast aborts on the first malformed descriptor, in addition to the configured value.
	FailFast bool
}

// Load reads the single descriptor at path.
func (a *App) Load(ctx context.Context, path string) (domain.Record, error) {
	return a.scanner.LoadFile(ctx, path)
}

// Scan loads every descriptor below the configured or given roots.
func (a *App) Scan(ctx context.Context, opts ScanOptions) (*scanner.Result, error) {
	run, err := a.scan(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := run.requireModules(); err != nil {
		return nil, err
	}
	return run.result, nil
}

// scanRun is one resolved scan with the configuration it ran under.
type scanRun struct {
	result *scanner.Result
	cfg    *domain.ScanConfig
	roots  []string
}

func (r *scanRun) requireModules() error {
	if len(r.result.Records) == 0 && len(r.result.Failures) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrNoModulesFound, "nothing to scan"), "roots", r.roots)
	}
	return nil
}

func (a *App) scan(ctx context.Context, opts ScanOptions) (*scanRun, error) {
	run, scanOpts, err := a.plan(opts)
	if err != nil {
		return nil, err
	}
	if err := run.execute(ctx, a.scanner, scanOpts); err != nil {
		return nil, err
	}
	return run, nil
}

// plan resolves the configuration and roots of a scan without touching descriptors.
func (a *App) plan(opts ScanOptions) (*scanRun, scanner.Options, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, scanner.Options{}, err
	}

	scanOpts := scanner.OptionsFromConfig(cfg)
	if opts.Concurrency > 0 {
		scanOpts.Concurrency = opts.Concurrency
	}
	scanOpts.FailFast = scanOpts.FailFast || opts.FailFast
	return &scanRun{cfg: cfg, roots: a.roots(cfg, opts.Roots)}, scanOpts, nil
}

func (r *scanRun) execute(ctx context.Context, s *scanner.Scanner, opts scanner.Options) error {
	result, err := s.Scan(ctx, r.roots, opts)
	if err != nil {
		return err
	}
	r.result = result
	return nil
}

// LintReport is the outcome of Lint.
type LintReport struct {
	Result *scanner.Result
	Issues []domain.Issue
}

// Lint scans and validates descriptors. When any issue has error severity the report is
// returned together with an error matching domain.ErrValidationFailed.
func (a *App) Lint(ctx context.Context, opts ScanOptions) (*LintReport, error) {
	run, err := a.scan(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := run.requireModules(); err != nil {
		return nil, err
	}

	report := &LintReport{
		Result: run.result,
		Issues: a.newValidator(run.cfg.KnownModules).Validate(run.result.Records),
	}

	errs := []error{}
	for _, issue := range report.Issues {
		if issue.Severity != domain.SeverityError {
			continue
		}
		errs = append(errs, issueError(issue))
	}
	if len(errs) > 0 {
		return report, errors.Join(append([]error{domain.ErrValidationFailed}, errs...)...)
	}
	return report, nil
}

func issueError(issue domain.Issue) error {
	var err error
	switch issue.Code {
	case domain.IssueSelfDependency:
		err = zerr.Wrap(domain.ErrSelfDependency, "listed in "+string(issue.Property))
	case domain.IssueDuplicateModule:
		err = zerr.Wrap(domain.ErrDuplicateModuleName, issue.Message)
	case domain.IssueUnknownDependency:
		err = zerr.Wrap(domain.ErrUnknownDependency, issue.Value)
	default:
		err = zerr.New(issue.Message)
	}
	err = zerr.With(err, "module", issue.Module)
	return zerr.With(err, "path", issue.Source)
}

// Convert loads the descriptor at path and re-encodes it in format.
func (a *App) Convert(ctx context.Context, path string, format domain.Format) ([]byte, error) {
	target, ok := a.codecs.ForFormat(format)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "no codec for target format"), "format", string(format))
	}

	rec, err := a.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	return target.Encode(rec.Descriptor)
}

// Export scans descriptors and replaces the catalog at dbPath with them. A scan with
// failures exports nothing. It returns the number of exported modules.
func (a *App) Export(ctx context.Context, dbPath string, opts ScanOptions) (int, error) {
	result, err := a.Scan(ctx, opts)
	if err != nil {
		return 0, err
	}
	if n := len(result.Failures); n > 0 {
		errs := make([]error, 0, n+1)
		errs = append(errs, domain.ErrScanFailed)
		for _, failure := range result.Failures {
			errs = append(errs, failure)
		}
		return 0, zerr.With(errors.Join(errs...), "failures", n)
	}

	catalog, err := a.catalogs.Open(a.abs(dbPath))
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := catalog.Close(); closeErr != nil {
			a.logger.Error(closeErr)
		}
	}()

	if err := catalog.Replace(ctx, result.Records); err != nil {
		return 0, err
	}
	return len(result.Records), nil
}

// Dependents lists the modules in the catalog at dbPath that name module in a
// module-list property.
func (a *App) Dependents(ctx context.Context, dbPath, module string) ([]string, error) {
	catalog, err := a.catalogs.Open(a.abs(dbPath))
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := catalog.Close(); closeErr != nil {
			a.logger.Error(closeErr)
		}
	}()

	return catalog.Dependents(ctx, module)
}

// Catalog reads every record stored in the catalog at dbPath.
func (a *App) Catalog(ctx context.Context, dbPath string) ([]domain.Record, error) {
	catalog, err := a.catalogs.Open(a.abs(dbPath))
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := catalog.Close(); closeErr != nil {
			a.logger.Error(closeErr)
		}
	}()

	return catalog.Records(ctx)
}

func (a *App) config() (*domain.ScanConfig, error) {
	dir, err := a.dir()
	if err != nil {
		return nil, err
	}
	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

func (a *App) dir() (string, error) {
	if a.workDir != "" {
		return a.workDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}
	return wd, nil
}

// roots resolves explicit roots against the working directory and configured roots
// against the configuration root.
func (a *App) roots(cfg *domain.ScanConfig, explicit []string) []string {
	if len(explicit) > 0 {
		out := make([]string, len(explicit))
		for i, root := range explicit {
			out[i] = a.abs(root)
		}
		return out
	}
	out := make([]string, len(cfg.Roots))
	for i, root := range cfg.Roots {
		if filepath.IsAbs(root) {
			out[i] = root
			continue
		}
		out[i] = filepath.Join(cfg.Root, root)
	}
	return out
}

func (a *App) abs(path string) string {
	if filepath.IsAbs(path) || a.workDir == "" {
		return path
	}
	return filepath.Join(a.workDir, path)
}

package app_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modscan/internal/adapters/catalog"
	"go.trai.ch/modscan/internal/adapters/codec"
	"go.trai.ch/modscan/internal/adapters/fs"
	"go.trai.ch/modscan/internal/adapters/telemetry"
	"go.trai.ch/modscan/internal/app"
	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/modscan/internal/core/ports"
	"go.trai.ch/modscan/internal/core/ports/mocks"
	"go.trai.ch/modscan/internal/engine/scanner"
	"go.trai.ch/modscan/internal/engine/validator"
	"go.uber.org/mock/gomock"
)

const rulesTemplate = `using UnrealBuildTool;

public class %[1]s : ModuleRules
{
	public %[1]s(ReadOnlyTargetRules Target) : base(Target)
	{
		PrivateDependencyModuleNames.AddRange(new string[] { %[2]s });
	}
}
`

type fixture struct {
	app      *app.App
	root     string
	loader   *mocks.MockConfigLoader
	logger   *mocks.MockLogger
	catalogs ports.CatalogOpener
	watchers *mocks.MockWatcherFactory
}

type option func(*fixture)

func withCatalogs(opener ports.CatalogOpener) option {
	return func(f *fixture) { f.catalogs = opener }
}

func newFixture(t *testing.T, opts ...option) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		root:     t.TempDir(),
		loader:   mocks.NewMockConfigLoader(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		catalogs: catalog.NewOpener(),
		watchers: mocks.NewMockWatcherFactory(ctrl),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	scan := scanner.New(fs.NewWalker(), codec.Default(), fs.NewHasher(), telemetry.NewNoOpTracer())
	f.app = app.New(f.loader, codec.Default(), scan, validator.New, f.catalogs, f.watchers, f.logger).
		WithWorkDir(f.root)
	return f
}

// expectConfig makes the loader return a default configuration rooted at the fixture.
func (f *fixture) expectConfig(mutate ...func(*domain.ScanConfig)) {
	cfg := &domain.ScanConfig{
		Root:   f.root,
		Roots:  []string{"."},
		Ignore: append([]string(nil), domain.DefaultIgnores...),
	}
	for _, m := range mutate {
		m(cfg)
	}
	f.loader.EXPECT().Load(f.root).Return(cfg, nil)
}

func (f *fixture) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(f.root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (f *fixture) writeModule(t *testing.T, rel, name, deps string) string {
	t.Helper()
	return f.write(t, rel, fmt.Sprintf(rulesTemplate, name, deps))
}

func TestApp_Scan_ConfiguredRoots(t *testing.T) {
	f := newFixture(t)
	f.expectConfig(func(cfg *domain.ScanConfig) {
		cfg.Roots = []string{"Plugins"}
	})
	f.writeModule(t, "Plugins/Flurry/FlurryEditor.Build.cs", "FlurryEditor", `"Core", "Engine"`)
	f.writeModule(t, "Elsewhere/Water/Water.Build.cs", "Water", `"Core"`)

	result, err := f.app.Scan(context.Background(), app.ScanOptions{})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	d := result.Records[0].Descriptor
	assert.Equal(t, "FlurryEditor", d.Name)
	assert.Equal(t, []string{"Core", "Engine"}, d.Set(domain.PrivateDependencyModuleNames))
	assert.Empty(t, d.Set(domain.PublicDependencyModuleNames))
}

func TestApp_Scan_ExplicitRoots(t *testing.T) {
	f := newFixture(t)
	f.expectConfig()
	f.writeModule(t, "a/Flurry.Build.cs", "Flurry", `"Core"`)
	f.writeModule(t, "b/Water.Build.cs", "Water", `"Core"`)

	result, err := f.app.Scan(context.Background(), app.ScanOptions{Roots: []string{"b"}, Concurrency: 1})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Water", result.Records[0].Descriptor.Name)
}

func TestApp_Scan_Failures(t *testing.T) {
	t.Run("collected", func(t *testing.T) {
		f := newFixture(t)
		f.expectConfig()
		f.write(t, "Broken.Build.cs", "namespace Nothing {}\n")

		result, err := f.app.Scan(context.Background(), app.ScanOptions{})
		require.NoError(t, err)
		assert.Empty(t, result.Records)
		require.Len(t, result.Failures, 1)
	})

	t.Run("fail fast", func(t *testing.T) {
		f := newFixture(t)
		f.expectConfig()
		f.write(t, "Broken.Build.cs", "namespace Nothing {}\n")

		_, err := f.app.Scan(context.Background(), app.ScanOptions{FailFast: true})
		assert.ErrorIs(t, err, domain.ErrScanFailed)
	})
}

func TestApp_Scan_NoModules(t *testing.T) {
	f := newFixture(t)
	f.expectConfig()

	_, err := f.app.Scan(context.Background(), app.ScanOptions{})
	assert.ErrorIs(t, err, domain.ErrNoModulesFound)
}

func TestApp_Scan_ConfigError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(f.root).Return(nil, domain.ErrConfigParseFailed)

	_, err := f.app.Scan(context.Background(), app.ScanOptions{})
	assert.ErrorContains(t, err, "failed to load configuration")
}

func TestApp_Load(t *testing.T) {
	f := newFixture(t)
	path := f.writeModule(t, "FlurryEditor.Build.cs", "FlurryEditor", `"Core"`)

	rec, err := f.app.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "FlurryEditor", rec.Descriptor.Name)
	assert.Equal(t, domain.FormatRules, rec.Format)
}

func TestApp_Lint(t *testing.T) {
	t.Run("warnings only", func(t *testing.T) {
		f := newFixture(t)
		f.expectConfig()
		f.writeModule(t, "Dataprep.Build.cs", "Dataprep", `"EditorWidgets", "EditorWidgets"`)

		report, err := f.app.Lint(context.Background(), app.ScanOptions{})
		require.NoError(t, err)
		require.Len(t, report.Issues, 1)
		assert.Equal(t, domain.IssueDuplicateEntry, report.Issues[0].Code)
	})

	t.Run("errors", func(t *testing.T) {
		f := newFixture(t)
		f.expectConfig()
		f.writeModule(t, "Water.Build.cs", "Water", `"Core", "Water"`)

		report, err := f.app.Lint(context.Background(), app.ScanOptions{})
		require.Error(t, err)
		require.NotNil(t, report)
		assert.True(t, errors.Is(err, domain.ErrValidationFailed))
		assert.ErrorIs(t, err, domain.ErrSelfDependency)
		assert.True(t, domain.HasErrors(report.Issues))
	})

	t.Run("known modules from config", func(t *testing.T) {
		f := newFixture(t)
		f.expectConfig(func(cfg *domain.ScanConfig) {
			cfg.KnownModules = []string{"Core"}
		})
		f.writeModule(t, "Water.Build.cs", "Water", `"Core", "Landmass"`)

		report, err := f.app.Lint(context.Background(), app.ScanOptions{})
		require.NoError(t, err)
		require.Len(t, report.Issues, 1)
		assert.Equal(t, domain.IssueUnknownDependency, report.Issues[0].Code)
		assert.Equal(t, "Landmass", report.Issues[0].Value)
	})
}

func TestApp_Convert(t *testing.T) {
	f := newFixture(t)
	path := f.writeModule(t, "FlurryEditor.Build.cs", "FlurryEditor", `"Core", "Engine"`)

	out, err := f.app.Convert(context.Background(), path, domain.FormatYAML)
	require.NoError(t, err)

	yamlCodec, ok := codec.Default().ForFormat(domain.FormatYAML)
	require.True(t, ok)
	back, err := yamlCodec.Decode("FlurryEditor.module.yaml", out)
	require.NoError(t, err)

	orig, err := f.app.Load(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, orig.Descriptor.Equal(back))

	_, err = f.app.Convert(context.Background(), path, "toml")
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestApp_ExportAndQuery(t *testing.T) {
	f := newFixture(t)
	f.expectConfig()
	f.writeModule(t, "Water/Water.Build.cs", "Water", `"Core"`)
	f.writeModule(t, "WaterEditor/WaterEditor.Build.cs", "WaterEditor", `"Core", "Water"`)
	f.writeModule(t, "Core/Core.Build.cs", "Core", ``)

	n, err := f.app.Export(context.Background(), "out/modules.db", app.ScanOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.FileExists(t, filepath.Join(f.root, "out", "modules.db"))

	deps, err := f.app.Dependents(context.Background(), "out/modules.db", "Core")
	require.NoError(t, err)
	assert.Equal(t, []string{"Water", "WaterEditor"}, deps)

	records, err := f.app.Catalog(context.Background(), "out/modules.db")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Core", records[0].Descriptor.Name)
}

func TestApp_Export_RefusesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	opener := mocks.NewMockCatalogOpener(ctrl)

	f := newFixture(t, withCatalogs(opener))
	f.expectConfig()
	f.writeModule(t, "Water.Build.cs", "Water", `"Core"`)
	f.write(t, "Broken.Build.cs", "public class Broken : ModuleRules {")

	_, err := f.app.Export(context.Background(), "modules.db", app.ScanOptions{})
	assert.ErrorIs(t, err, domain.ErrScanFailed)
	assert.ErrorIs(t, err, domain.ErrMalformedDescriptor)
}

func TestApp_Export_CatalogErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	opener := mocks.NewMockCatalogOpener(ctrl)
	store := mocks.NewMockCatalog(ctrl)

	f := newFixture(t, withCatalogs(opener))
	f.expectConfig()
	f.writeModule(t, "Water.Build.cs", "Water", `"Core"`)

	dbPath := filepath.Join(f.root, "modules.db")
	opener.EXPECT().Open(dbPath).Return(store, nil)
	store.EXPECT().Replace(gomock.Any(), gomock.Len(1)).Return(domain.ErrCatalogWriteFailed)
	store.EXPECT().Close().Return(nil)

	_, err := f.app.Export(context.Background(), "modules.db", app.ScanOptions{})
	assert.ErrorIs(t, err, domain.ErrCatalogWriteFailed)
}

func TestApp_Dependents_OpenError(t *testing.T) {
	ctrl := gomock.NewController(t)
	opener := mocks.NewMockCatalogOpener(ctrl)

	f := newFixture(t, withCatalogs(opener))
	opener.EXPECT().Open(filepath.Join(f.root, "modules.db")).Return(nil, domain.ErrCatalogOpenFailed)

	_, err := f.app.Dependents(context.Background(), "modules.db", "Core")
	assert.ErrorIs(t, err, domain.ErrCatalogOpenFailed)
}

func TestApp_SetJSONLogging(t *testing.T) {
	f := newFixture(t)
	// The mock logger has no SetJSON method; the call is a no-op.
	f.app.SetJSONLogging(true)
}

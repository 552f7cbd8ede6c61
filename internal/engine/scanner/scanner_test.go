package scanner_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/modscan/internal/adapters/codec"
	"go.trai.ch/modscan/internal/adapters/fs"
	"go.trai.ch/modscan/internal/adapters/telemetry"
	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/modscan/internal/core/ports/mocks"
	"go.trai.ch/modscan/internal/engine/scanner"
	"go.uber.org/mock/gomock"
)

const pluginsDir = "../../../testdata/plugins"

const flurry = `using UnrealBuildTool;

public class FlurryEditor : ModuleRules
{
	public FlurryEditor(ReadOnlyTargetRules Target) : base(Target)
	{
		PrivateDependencyModuleNames.AddRange(new string[] { "Core", "Engine" });
	}
}
`

func newScanner(t *testing.T) (*scanner.Scanner, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	tracer := telemetry.NewOTelTracer("test", telemetry.WithTracerProvider(tp))
	return scanner.New(fs.NewWalker(), codec.Default(), fs.NewHasher(), tracer), sr
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestScan_SamplePlugins(t *testing.T) {
	s, _ := newScanner(t)

	result, err := s.Scan(context.Background(), []string{pluginsDir}, scanner.Options{Concurrency: 7})
	require.NoError(t, err)
	require.Empty(t, result.Failures)
	require.Len(t, result.Records, 7)

	names := make([]string, 0, len(result.Records))
	for _, rec := range result.Records {
		names = append(names, rec.Descriptor.Name)
		assert.Equal(t, domain.FormatRules, rec.Format)
		assert.Len(t, rec.Fingerprint, 16)
	}
	assert.Equal(t, []string{
		"ComposureEditor",
		"OpenColorIOEditor",
		"AssetSearch",
		"DataprepEditor",
		"WaterEditor",
		"FlurryEditor",
		"TimedDataMonitorEditor",
	}, names)
	assert.Len(t, result.Descriptors(), 7)
}

func TestScan_ConcurrencyDoesNotChangeResult(t *testing.T) {
	s, _ := newScanner(t)

	serial, err := s.Scan(context.Background(), []string{pluginsDir}, scanner.Options{Concurrency: 1})
	require.NoError(t, err)
	parallel, err := s.Scan(context.Background(), []string{pluginsDir}, scanner.Options{})
	require.NoError(t, err)

	require.Len(t, parallel.Records, len(serial.Records))
	for i := range serial.Records {
		assert.True(t, serial.Records[i].Descriptor.Equal(parallel.Records[i].Descriptor))
		assert.Equal(t, serial.Records[i].Fingerprint, parallel.Records[i].Fingerprint)
	}
}

func TestScan_CollectsFailures(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Flurry", "FlurryEditor.Build.cs"), flurry)
	writeFile(t, filepath.Join(root, "Broken", "Broken.Build.cs"), "public class Broken {}\n")
	writeFile(t, filepath.Join(root, "Broken", "README.md"), "not a descriptor")

	s, _ := newScanner(t)
	result, err := s.Scan(context.Background(), []string{root}, scanner.Options{})
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, "FlurryEditor", result.Records[0].Descriptor.Name)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, filepath.Join(root, "Broken", "Broken.Build.cs"), result.Failures[0].Path)
	assert.ErrorIs(t, result.Failures[0].Err, domain.ErrMalformedDescriptor)
}

func TestScan_FailFast(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Flurry", "FlurryEditor.Build.cs"), flurry)
	writeFile(t, filepath.Join(root, "Broken", "Broken.Build.cs"), "public class Broken : ModuleRules {\n")

	s, _ := newScanner(t)
	result, err := s.Scan(context.Background(), []string{root}, scanner.Options{FailFast: true})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrScanFailed)
	assert.ErrorIs(t, err, domain.ErrMalformedDescriptor)
}

func TestScan_IgnoresAndOverlappingRoots(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Flurry", "FlurryEditor.Build.cs"), flurry)
	writeFile(t, filepath.Join(root, "Intermediate", "Copy", "FlurryEditor.Build.cs"), flurry)

	s, _ := newScanner(t)
	result, err := s.Scan(context.Background(),
		[]string{root, filepath.Join(root, "Flurry")},
		scanner.Options{Ignore: []string{"Intermediate"}})
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, filepath.Join(root, "Flurry", "FlurryEditor.Build.cs"), result.Records[0].Descriptor.Source)
}

func TestScan_MixedFormats(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "FlurryEditor.Build.cs"), flurry)
	writeFile(t, filepath.Join(root, "b", "Water.module.yaml"), "module: Water\nproperties:\n  PublicDependencyModuleNames: [Core]\n")
	writeFile(t, filepath.Join(root, "c", "Composure.module.hcl"), "module \"Composure\" {\n}\n")

	s, _ := newScanner(t)
	result, err := s.Scan(context.Background(), []string{root}, scanner.Options{})
	require.NoError(t, err)
	require.Empty(t, result.Failures)
	require.Len(t, result.Records, 3)

	assert.Equal(t, domain.FormatRules, result.Records[0].Format)
	assert.Equal(t, domain.FormatYAML, result.Records[1].Format)
	assert.Equal(t, domain.FormatHCL, result.Records[2].Format)
}

func TestScan_Empty(t *testing.T) {
	s, _ := newScanner(t)

	result, err := s.Scan(context.Background(), []string{t.TempDir()}, scanner.Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Failures)
}

func TestScan_Cancelled(t *testing.T) {
	s, _ := newScanner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Scan(ctx, []string{pluginsDir}, scanner.Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestScan_Spans(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "FlurryEditor.Build.cs")
	writeFile(t, path, flurry)
	broken := filepath.Join(root, "Broken.Build.cs")
	writeFile(t, broken, "// nothing here\n")

	s, sr := newScanner(t)
	_, err := s.Scan(context.Background(), []string{root}, scanner.Options{})
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 3)

	byPath := map[string]sdktrace.ReadOnlySpan{}
	var scan sdktrace.ReadOnlySpan
	for _, span := range spans {
		switch span.Name() {
		case "modscan.scan":
			scan = span
		case "modscan.load":
			for _, kv := range span.Attributes() {
				if kv.Key == "path" {
					byPath[kv.Value.AsString()] = span
				}
			}
		}
	}
	require.NotNil(t, scan)
	assert.Contains(t, scan.Attributes(), attribute.Int("files", 2))
	assert.Contains(t, scan.Attributes(), attribute.Int("modules", 1))
	assert.Contains(t, scan.Attributes(), attribute.Int("failures", 1))

	ok := byPath[path]
	require.NotNil(t, ok)
	assert.Contains(t, ok.Attributes(), attribute.String("format", "rules"))
	assert.Contains(t, ok.Attributes(), attribute.String("module", "FlurryEditor"))
	assert.Equal(t, scan.SpanContext().SpanID(), ok.Parent().SpanID())

	failed := byPath[broken]
	require.NotNil(t, failed)
	assert.Equal(t, codes.Error, failed.Status().Code)
}

func TestLoadFile(t *testing.T) {
	s, _ := newScanner(t)
	ctx := context.Background()

	t.Run("rules", func(t *testing.T) {
		path := filepath.Join(pluginsDir, "Runtime", "Analytics", "Flurry", "Source", "FlurryEditor", "FlurryEditor.Build.cs")
		rec, err := s.LoadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "FlurryEditor", rec.Descriptor.Name)
		assert.Equal(t, path, rec.Descriptor.Source)
		assert.Equal(t, fs.NewHasher().Fingerprint(rec.Descriptor), rec.Fingerprint)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := s.LoadFile(ctx, "Flurry.json")
		assert.ErrorIs(t, err, domain.ErrUnknownFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := s.LoadFile(ctx, filepath.Join(t.TempDir(), "Missing.Build.cs"))
		assert.ErrorIs(t, err, domain.ErrDescriptorReadFailed)
	})
}

func TestScanner_SetTracing(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	tracer := telemetry.NewOTelTracer("test", telemetry.WithLogBridge(telemetry.NewLogBridge(log)))
	s := scanner.New(fs.NewWalker(), codec.Default(), fs.NewHasher(), tracer)

	path := filepath.Join(t.TempDir(), "FlurryEditor.Build.cs")
	writeFile(t, path, flurry)

	_, err := s.LoadFile(context.Background(), path)
	require.NoError(t, err)

	var lines []string
	log.EXPECT().Info(gomock.Any()).Do(func(msg string) { lines = append(lines, msg) })
	s.SetTracing(true)
	_, err = s.LoadFile(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "modscan.load path="+path+" format=rules module=FlurryEditor ("), lines[0])
}

func TestOptionsFromConfig(t *testing.T) {
	opts := scanner.OptionsFromConfig(&domain.ScanConfig{
		Ignore:      []string{"Saved"},
		Concurrency: 3,
		FailFast:    true,
	})

	assert.Equal(t, scanner.Options{Ignore: []string{"Saved"}, Concurrency: 3, FailFast: true}, opts)
}

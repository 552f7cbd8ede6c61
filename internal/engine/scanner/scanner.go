// Package scanner loads every module descriptor below a set of roots concurrently.
package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/modscan/internal/core/domain"
	"go.trai.ch/modscan/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	scanSpanName = "modscan.scan"
	loadSpanName = "modscan.load"
)

// Options control a single scan.
type Options struct {
	// Ignore are glob patterns matched against file and directory base names.
	Ignore []string
	// Concurrency bounds the number of files loaded at once. Zero or less means one per CPU.
	Concurrency int
	// FailFast aborts the scan on the first file that fails to load.
	FailFast bool
}

// OptionsFromConfig derives scan options from the resolved tool configuration.
func OptionsFromConfig(cfg *domain.ScanConfig) Options {
	return Options{
		Ignore:      cfg.Ignore,
		Concurrency: cfg.Concurrency,
		FailFast:    cfg.FailFast,
	}
}

// Result holds everything a scan produced, sorted by source path.
type Result struct {
	Records  []domain.Record
	Failures []domain.Failure
}

// Descriptors returns the loaded descriptors in record order.
func (r *Result) Descriptors() []*domain.Descriptor {
	out := make([]*domain.Descriptor, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.Descriptor
	}
	return out
}

// Scanner discovers descriptor files and loads them.
type Scanner struct {
	walker ports.Walker
	codecs ports.Codecs
	hasher ports.Hasher
	tracer ports.Tracer
}

// New creates a new Scanner.
func New(walker ports.Walker, codecs ports.Codecs, hasher ports.Hasher, tracer ports.Tracer) *Scanner {
	return &Scanner{
		walker: walker,
		codecs: codecs,
		hasher: hasher,
		tracer: tracer,
	}
}

// SetTracing turns span reporting on or off when the tracer supports it.
func (s *Scanner) SetTracing(enable bool) {
	if r, ok := s.tracer.(interface{ SetReporting(bool) }); ok {
		r.SetReporting(enable)
	}
}

// Discover lists the descriptor files below roots in lexical order. A file reachable
// from two roots is listed once.
func (s *Scanner) Discover(roots []string, ignores []string) []string {
	seen := make(map[string]struct{})
	var files []string
	for _, root := range roots {
		for path := range s.walker.WalkFiles(root, ignores) {
			if _, ok := s.codecs.ForPath(path); !ok {
				continue
			}
			key := filepath.Clean(path)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			files = append(files, path)
		}
	}
	slices.Sort(files)
	return files
}

// Scan loads every descriptor below roots. Files that fail to load are collected as
// failures unless opts.FailFast is set, in which case the first one aborts the scan.
func (s *Scanner) Scan(ctx context.Context, roots []string, opts Options) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, scanSpanName)
	defer span.End()

	files := s.Discover(roots, opts.Ignore)
	span.SetAttribute("roots", roots)
	span.SetAttribute("files", len(files))

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	var (
		mu     sync.Mutex
		result = &Result{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rec, err := s.LoadFile(gctx, path)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if opts.FailFast {
					return zerr.With(errors.Join(domain.ErrScanFailed, err), "path", path)
				}
				result.Failures = append(result.Failures, domain.Failure{Path: path, Err: err})
				return nil
			}
			result.Records = append(result.Records, rec)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	slices.SortFunc(result.Records, func(a, b domain.Record) int {
		return strings.Compare(a.Descriptor.Source, b.Descriptor.Source)
	})
	slices.SortFunc(result.Failures, func(a, b domain.Failure) int {
		return strings.Compare(a.Path, b.Path)
	})

	span.SetAttribute("modules", len(result.Records))
	span.SetAttribute("failures", len(result.Failures))
	return result, nil
}

// LoadFile reads and decodes a single descriptor file.
func (s *Scanner) LoadFile(ctx context.Context, path string) (domain.Record, error) {
	_, span := s.tracer.Start(ctx, loadSpanName)
	defer span.End()
	span.SetAttribute("path", path)

	codec, ok := s.codecs.ForPath(path)
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "no codec matches the file name"), "path", path)
		span.RecordError(err)
		return domain.Record{}, err
	}
	span.SetAttribute("format", string(codec.Format()))

	src, err := os.ReadFile(path)
	if err != nil {
		err = zerr.With(errors.Join(domain.ErrDescriptorReadFailed, err), "path", path)
		span.RecordError(err)
		return domain.Record{}, err
	}

	d, err := codec.Decode(path, src)
	if err != nil {
		span.RecordError(err)
		return domain.Record{}, err
	}
	span.SetAttribute("module", d.Name)

	return domain.Record{
		Descriptor:  d,
		Format:      codec.Format(),
		Fingerprint: s.hasher.Fingerprint(d),
	}, nil
}

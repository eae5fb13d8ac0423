package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"textprint/internal/ingest"
	"textprint/internal/logging"
	"textprint/internal/textutil"
	"textprint/internal/winnow"
)

// Options tunes a Runner.
type Options struct {
	// Workers bounds concurrent documents. Zero uses runtime.NumCPU.
	Workers int
	// CacheSize is the number of fingerprints memoized. Zero disables the cache.
	CacheSize int
}

// Result is the outcome for one document.
type Result struct {
	Name        string
	Path        string
	Canonical   int
	Fingerprint winnow.Fingerprint
	Cached      bool
	Err         error
}

// Report summarizes one Run.
type Report struct {
	RunID    string
	Params   winnow.Params
	Results  []Result
	Started  time.Time
	Duration time.Duration
}

// Failed returns the number of documents that could not be fingerprinted.
func (r *Report) Failed() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

type cached struct {
	canonical   int
	fingerprint winnow.Fingerprint
}

// Runner fingerprints batches of documents with a shared Fingerprinter.
type Runner struct {
	fp      *winnow.Fingerprinter
	workers int
	cache   *lru.Cache[uint64, cached]
	logger  *slog.Logger
}

// New constructs a Runner. fp must be non-nil.
func New(fp *winnow.Fingerprinter, opts Options, logger *slog.Logger) (*Runner, error) {
	if fp == nil {
		return nil, errors.New("batch: fingerprinter is required")
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("batch: workers must be >= 0, got %d", opts.Workers)
	}
	if opts.CacheSize < 0 {
		return nil, fmt.Errorf("batch: cache size must be >= 0, got %d", opts.CacheSize)
	}
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	r := &Runner{
		fp:      fp,
		workers: workers,
		logger:  logging.NewComponentLogger(logger, "batch"),
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[uint64, cached](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("batch: create cache: %w", err)
		}
		r.cache = cache
	}
	return r, nil
}

// Workers returns the effective worker count.
func (r *Runner) Workers() int {
	return r.workers
}

type job struct {
	name string
	path string
	load func() (*ingest.Document, error)
}

// Run fingerprints docs that are already in memory. Results are sorted by
// name; only cancellation of ctx aborts the run.
func (r *Runner) Run(ctx context.Context, docs []ingest.Document) (*Report, error) {
	jobs := make([]job, len(docs))
	for i := range docs {
		doc := &docs[i]
		jobs[i] = job{name: doc.Name, path: doc.Path, load: func() (*ingest.Document, error) { return doc, nil }}
	}
	return r.run(ctx, jobs)
}

// RunFiles parses and fingerprints each path on a worker. A file that cannot
// be read or parsed is recorded on its Result.Err without stopping the batch.
func (r *Runner) RunFiles(ctx context.Context, paths []string) (*Report, error) {
	jobs := make([]job, len(paths))
	for i, path := range paths {
		jobs[i] = job{name: filepath.Base(path), path: path, load: func() (*ingest.Document, error) { return ingest.ParseFile(path) }}
	}
	return r.run(ctx, jobs)
}

func (r *Runner) run(ctx context.Context, jobs []job) (*Report, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	report := &Report{
		RunID:   runID,
		Params:  r.fp.Params(),
		Results: make([]Result, len(jobs)),
		Started: time.Now(),
	}
	logger.Info("batch started",
		logging.Int("documents", len(jobs)),
		logging.Int("workers", r.workers),
	)

	sampler := logging.NewProgressSampler(10)
	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Results[i] = r.process(logging.WithDocument(gctx, jobs[i].name), jobs[i])

			mu.Lock()
			done++
			n := done
			mu.Unlock()
			if sampler.ShouldLog(n, len(jobs)) {
				logger.Info("batch progress",
					logging.Int("done", n),
					logging.Int("total", len(jobs)),
				)
			}
			return nil
		})
	}
	err := g.Wait()
	report.Duration = time.Since(report.Started)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		mu.Lock()
		n := done
		mu.Unlock()
		logging.WarnWithContext(logger, "batch cancelled", "batch_cancelled",
			logging.Int("done", n),
			logging.Int("total", len(jobs)),
			logging.Error(err),
		)
		return nil, fmt.Errorf("batch %s: %w", runID, err)
	}

	slices.SortStableFunc(report.Results, func(a, b Result) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})
	failed := report.Failed()
	logger.Info("batch completed",
		logging.Int("documents", len(jobs)),
		logging.Int("failed", failed),
		logging.Duration("duration", report.Duration),
	)
	return report, nil
}

func (r *Runner) process(ctx context.Context, j job) Result {
	res := Result{Name: j.name, Path: j.path}
	doc, err := j.load()
	if err != nil {
		res.Err = err
		logging.WarnWithContext(logging.WithContext(ctx, r.logger), "document skipped", "document_unreadable",
			logging.String("path", j.path),
			logging.Error(err),
		)
		return res
	}
	key := xxhash.Sum64String(doc.Text)
	if r.cache != nil {
		if hit, ok := r.cache.Get(key); ok {
			res.Canonical = hit.canonical
			res.Fingerprint = hit.fingerprint
			res.Cached = true
			return res
		}
	}

	canonical := r.fp.Canonical(doc.Text)
	if !textutil.IsCanonical(canonical) {
		logging.WarnWithContext(logging.WithContext(ctx, r.logger), "normalizer produced non-canonical text", "non_canonical_text",
			logging.String(logging.FieldImpact, "gram offsets count characters outside [a-z0-9]"),
		)
	}
	res.Canonical = len([]rune(canonical))
	res.Fingerprint = r.fp.FingerprintCanonical(canonical)
	if r.cache != nil {
		r.cache.Add(key, cached{canonical: res.Canonical, fingerprint: res.Fingerprint})
	}

	logging.WithContext(ctx, r.logger).Debug("document fingerprinted",
		logging.Int("canonical_chars", res.Canonical),
		logging.Int("entries", res.Fingerprint.Len()),
	)
	return res
}

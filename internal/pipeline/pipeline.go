// Package pipeline turns README documents into persisted catalogs: load,
// tokenize, parse, report diagnostics, then persist. When a document fails
// to parse, the last stored snapshot of its locale can stand in for it.
package pipeline

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-awesome-mac/internal/catalog"
	"github.com/goliatone/go-awesome-mac/internal/logging"
	"github.com/goliatone/go-awesome-mac/internal/storage"
	"github.com/goliatone/go-awesome-mac/pkg/interfaces"
)

// ErrNoDocuments is returned when the loader finds nothing to build.
var ErrNoDocuments = errors.New("pipeline: no source documents found")

// Source tells where a locale catalog came from.
type Source string

const (
	SourceParsed Source = "parsed"
	SourceCache  Source = "cache"
)

// LocaleBuild is the outcome of building one document.
type LocaleBuild struct {
	Locale      string
	Path        string
	Source      Source
	Result      *catalog.Result
	Diagnostics []catalog.Diagnostic
	// Diff is set when diffing is enabled and the catalog was parsed.
	Diff *storage.Diff
	// DataFile is the written data file path, if any.
	DataFile string
	// Persisted reports whether a new snapshot was saved.
	Persisted bool
	// Err holds the parse failure that triggered a cache fallback.
	Err error
}

// Report collects the builds of one run in locale order.
type Report struct {
	Builds []LocaleBuild
}

// Locale returns the build of code.
func (r *Report) Locale(code string) (*LocaleBuild, bool) {
	if r == nil {
		return nil, false
	}
	for i := range r.Builds {
		if r.Builds[i].Locale == code {
			return &r.Builds[i], true
		}
	}
	return nil, false
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRepository enables snapshot persistence.
func WithRepository(repo storage.Repository) Option {
	return func(p *Pipeline) {
		p.repo = repo
	}
}

// WithDataDir writes one data file per locale under dir.
func WithDataDir(dir string, pretty bool) Option {
	return func(p *Pipeline) {
		p.dataDir = dir
		p.pretty = pretty
	}
}

// WithCacheFallback serves the stored snapshot when a document fails to parse.
func WithCacheFallback(enabled bool) Option {
	return func(p *Pipeline) {
		p.fallback = enabled
	}
}

// WithDiff compares each parsed catalog with the stored snapshot.
func WithDiff(enabled bool) Option {
	return func(p *Pipeline) {
		p.diff = enabled
	}
}

// WithLoggerProvider routes pipeline and parser logs through provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(p *Pipeline) {
		p.logger = logging.PipelineLogger(provider)
		p.catalogLogger = logging.CatalogLogger(provider)
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// Pipeline builds locale catalogs. It holds no per-run state.
type Pipeline struct {
	loader        interfaces.SourceLoader
	tokenizer     interfaces.Tokenizer
	repo          storage.Repository
	dataDir       string
	pretty        bool
	fallback      bool
	diff          bool
	logger        interfaces.Logger
	catalogLogger interfaces.Logger
	now           func() time.Time
}

// New constructs a Pipeline.
func New(loader interfaces.SourceLoader, tokenizer interfaces.Tokenizer, opts ...Option) *Pipeline {
	p := &Pipeline{
		loader:        loader,
		tokenizer:     tokenizer,
		logger:        logging.NoOp(),
		catalogLogger: logging.NoOp(),
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run builds every document the loader returns. The first unrecoverable
// failure aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	docs, err := p.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("pipeline: load: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	report := &Report{Builds: make([]LocaleBuild, 0, len(docs))}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		build, err := p.Build(ctx, doc)
		if err != nil {
			return nil, err
		}
		report.Builds = append(report.Builds, build)
	}
	return report, nil
}

// Build runs one document through the pipeline.
func (p *Pipeline) Build(ctx context.Context, doc interfaces.SourceDocument) (LocaleBuild, error) {
	logger := logging.WithSource(p.logger, doc.Path, doc.Locale).WithContext(ctx)
	build := LocaleBuild{Locale: doc.Locale, Path: doc.Path}

	previous, err := p.previous(ctx, doc.Locale)
	if err != nil {
		return build, err
	}

	result, parseErr := p.parse(doc)
	if parseErr != nil {
		logger.Error("pipeline.parse.failed", "error", parseErr)
		if !p.fallback || previous == nil {
			return build, fmt.Errorf("pipeline: build %s: %w", doc.Locale, parseErr)
		}
		cached, err := previous.Catalog()
		if err != nil {
			return build, fmt.Errorf("pipeline: build %s: %w", doc.Locale, errors.Join(parseErr, err))
		}
		logger.Warn("pipeline.fallback.cache", "generated_at", previous.GeneratedAt, "apps", len(cached.Apps))
		build.Source = SourceCache
		build.Result = cached
		build.Err = parseErr
		return build, nil
	}

	build.Source = SourceParsed
	build.Result = result
	build.Diagnostics = result.Diagnostics
	now := p.now()

	if p.diff {
		d, err := p.compare(doc.Locale, previous, result)
		if err != nil {
			return build, err
		}
		build.Diff = &d
		if !d.Empty() {
			logger.Info("pipeline.diff", "added", len(d.Added), "removed", len(d.Removed), "changed", len(d.Changed))
		}
	}

	if p.repo != nil {
		if previous != nil && previous.Checksum == hex.EncodeToString(doc.Checksum) {
			logger.Debug("pipeline.snapshot.unchanged", "checksum", previous.Checksum)
		} else {
			snapshot, err := storage.NewSnapshot(doc.Locale, result, doc.Checksum, now)
			if err != nil {
				return build, fmt.Errorf("pipeline: snapshot %s: %w", doc.Locale, err)
			}
			if _, err := p.repo.Save(ctx, snapshot); err != nil {
				return build, fmt.Errorf("pipeline: save %s: %w", doc.Locale, err)
			}
			build.Persisted = true
		}
	}

	if p.dataDir != "" {
		path, err := storage.WriteDataFile(p.dataDir, storage.NewDataFile(doc.Locale, result, now), p.pretty)
		if err != nil {
			return build, fmt.Errorf("pipeline: data file %s: %w", doc.Locale, err)
		}
		build.DataFile = path
	}

	logger.Info("pipeline.build.completed",
		"categories", len(result.Categories),
		"apps", len(result.Apps),
		"diagnostics", len(result.Diagnostics),
	)
	return build, nil
}

func (p *Pipeline) parse(doc interfaces.SourceDocument) (*catalog.Result, error) {
	nodes, err := p.tokenizer.Tokenize(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	return catalog.Parse(nodes, catalog.WithLogger(logging.WithSource(p.catalogLogger, doc.Path, doc.Locale)))
}

func (p *Pipeline) previous(ctx context.Context, locale string) (*storage.Snapshot, error) {
	if p.repo == nil {
		return nil, nil
	}
	snapshot, err := p.repo.Latest(ctx, locale)
	if errors.Is(err, storage.ErrSnapshotNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pipeline: load snapshot %s: %w", locale, err)
	}
	return snapshot, nil
}

func (p *Pipeline) compare(locale string, previous *storage.Snapshot, result *catalog.Result) (storage.Diff, error) {
	from := locale + "@empty"
	var before *catalog.Result
	if previous != nil {
		cached, err := previous.Catalog()
		if err != nil {
			return storage.Diff{}, fmt.Errorf("pipeline: decode snapshot %s: %w", locale, err)
		}
		before = cached
		from = locale + "@" + previous.GeneratedAt.UTC().Format(time.RFC3339)
	}
	return storage.Compare(from, before, locale+"@new", result), nil
}

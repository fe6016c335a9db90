// Package catalogcmd exposes catalog builds and sitemap rendering as
// go-command handlers.
package catalogcmd

import (
	"context"
	"errors"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-awesome-mac/internal/commands"
	"github.com/goliatone/go-awesome-mac/internal/pipeline"
	"github.com/goliatone/go-awesome-mac/internal/sitemap"
	"github.com/goliatone/go-awesome-mac/internal/storage"
	"github.com/goliatone/go-awesome-mac/pkg/interfaces"
)

var (
	// ErrBuilderRequired indicates the build handler was constructed without a builder.
	ErrBuilderRequired = errors.New("catalogcmd: builder is required")
	// ErrRepositoryRequired indicates the sitemap handler has no snapshot source.
	ErrRepositoryRequired = errors.New("catalogcmd: snapshot repository is required")
	// ErrSitemapFeatureDisabled is returned when sitemap generation is turned off.
	ErrSitemapFeatureDisabled = errors.New("catalogcmd: sitemap feature disabled")
	// ErrNoSnapshots indicates there is nothing to render a sitemap from.
	ErrNoSnapshots = errors.New("catalogcmd: no catalog snapshots stored")
)

const (
	textCodeBuildFailed     = "CATALOG_BUILD_FAILED"
	textCodeSitemapDisabled = "SITEMAP_FEATURE_DISABLED"
	textCodeSitemapFailed   = "SITEMAP_WRITE_FAILED"
)

// ReportFunc receives the report of a completed build.
type ReportFunc func(*pipeline.Report)

// BuildCatalogHandler runs catalog builds.
type BuildCatalogHandler struct {
	builder  Builder
	logger   interfaces.Logger
	onReport ReportFunc
	inner    *commands.Handler[BuildCatalogCommand]
}

// BuildOption customises a BuildCatalogHandler.
type BuildOption func(*BuildCatalogHandler)

// WithReportFunc registers a callback invoked with every successful report.
func WithReportFunc(fn ReportFunc) BuildOption {
	return func(h *BuildCatalogHandler) {
		h.onReport = fn
	}
}

// NewBuildCatalogHandler constructs a handler wired to builder.
func NewBuildCatalogHandler(builder Builder, logger interfaces.Logger, opts ...BuildOption) *BuildCatalogHandler {
	h := &BuildCatalogHandler{builder: builder, logger: logger}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	h.inner = commands.NewHandler[BuildCatalogCommand](h.handle,
		commands.WithLogger[BuildCatalogCommand](logger),
		commands.WithOperation[BuildCatalogCommand]("catalog.build"),
		commands.WithTimeout[BuildCatalogCommand](5*time.Minute),
		commands.WithMessageFields(func(msg BuildCatalogCommand) map[string]any {
			fields := map[string]any{"source_dir": msg.SourceDir}
			if len(msg.Locales) > 0 {
				fields["locales"] = strings.Join(msg.Locales, ",")
			}
			return fields
		}),
	)
	return h
}

// Execute satisfies command.Commander[BuildCatalogCommand].
func (h *BuildCatalogHandler) Execute(ctx context.Context, msg BuildCatalogCommand) error {
	return h.inner.Execute(ctx, msg)
}

func (h *BuildCatalogHandler) handle(ctx context.Context, msg BuildCatalogCommand) error {
	if h.builder == nil {
		return goerrors.Wrap(ErrBuilderRequired, goerrors.CategoryCommand, "catalog builder not configured").
			WithTextCode(textCodeBuildFailed)
	}
	report, err := h.builder.Build(ctx, msg)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "catalog build failed").
			WithTextCode(textCodeBuildFailed)
	}

	apps, diagnostics, cached := 0, 0, 0
	for _, build := range report.Builds {
		if build.Result != nil {
			apps += len(build.Result.Apps)
		}
		diagnostics += len(build.Diagnostics)
		if build.Source == pipeline.SourceCache {
			cached++
		}
	}
	if h.logger != nil {
		h.logger.Info("catalog.command.build.completed",
			"locales", len(report.Builds),
			"apps", apps,
			"diagnostics", diagnostics,
			"cached", cached,
		)
	}
	if h.onReport != nil {
		h.onReport(report)
	}
	return nil
}

// WriteSitemapHandler renders sitemaps from stored snapshots.
type WriteSitemapHandler struct {
	repo    storage.Repository
	logger  interfaces.Logger
	gates   FeatureGates
	now     func() time.Time
	written []string
	inner   *commands.Handler[WriteSitemapCommand]
}

// SitemapOption customises a WriteSitemapHandler.
type SitemapOption func(*WriteSitemapHandler)

// WithSitemapClock overrides the lastmod timestamp source.
func WithSitemapClock(now func() time.Time) SitemapOption {
	return func(h *WriteSitemapHandler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewWriteSitemapHandler constructs a handler reading snapshots from repo.
func NewWriteSitemapHandler(repo storage.Repository, logger interfaces.Logger, gates FeatureGates, opts ...SitemapOption) *WriteSitemapHandler {
	h := &WriteSitemapHandler{repo: repo, logger: logger, gates: gates, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	h.inner = commands.NewHandler[WriteSitemapCommand](h.handle,
		commands.WithLogger[WriteSitemapCommand](logger),
		commands.WithOperation[WriteSitemapCommand]("catalog.sitemap"),
		commands.WithMessageFields(func(msg WriteSitemapCommand) map[string]any {
			return map[string]any{"output_dir": msg.OutputDir, "base_url": msg.BaseURL}
		}),
	)
	return h
}

// Execute satisfies command.Commander[WriteSitemapCommand].
func (h *WriteSitemapHandler) Execute(ctx context.Context, msg WriteSitemapCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Written lists the files produced by the last successful execution.
func (h *WriteSitemapHandler) Written() []string {
	return append([]string(nil), h.written...)
}

func (h *WriteSitemapHandler) handle(ctx context.Context, msg WriteSitemapCommand) error {
	if !h.gates.sitemapEnabled() {
		return goerrors.Wrap(ErrSitemapFeatureDisabled, goerrors.CategoryCommand, "sitemap feature disabled").
			WithTextCode(textCodeSitemapDisabled)
	}
	if h.repo == nil {
		return goerrors.Wrap(ErrRepositoryRequired, goerrors.CategoryCommand, "snapshot repository not configured").
			WithTextCode(textCodeSitemapFailed)
	}
	snapshots, err := h.repo.List(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "list catalog snapshots").
			WithTextCode(textCodeSitemapFailed)
	}
	if len(snapshots) == 0 {
		return goerrors.Wrap(ErrNoSnapshots, goerrors.CategoryCommand, "no catalogs to map").
			WithTextCode(textCodeSitemapFailed)
	}

	locales := make([]sitemap.Locale, 0, len(snapshots))
	for _, snapshot := range snapshots {
		result, err := snapshot.Catalog()
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryCommand, "decode snapshot "+snapshot.Locale).
				WithTextCode(textCodeSitemapFailed)
		}
		locales = append(locales, sitemap.Locale{Code: snapshot.Locale, Result: result})
	}

	written, err := sitemap.Write(msg.OutputDir, sitemap.Options{
		BaseURL:       msg.BaseURL,
		DefaultLocale: msg.DefaultLocale,
		LastModified:  h.now(),
	}, locales, msg.Robots)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "write sitemap").
			WithTextCode(textCodeSitemapFailed)
	}
	h.written = written
	if h.logger != nil {
		h.logger.Info("catalog.command.sitemap.completed", "locales", len(locales), "files", len(written))
	}
	return nil
}

package catalogcmd

import (
	"context"
	"os"

	"github.com/goliatone/go-awesome-mac/internal/markdown"
	"github.com/goliatone/go-awesome-mac/internal/pipeline"
	"github.com/goliatone/go-awesome-mac/internal/runtimeconfig"
	"github.com/goliatone/go-awesome-mac/internal/storage"
	"github.com/goliatone/go-awesome-mac/pkg/interfaces"
)

// Builder runs a catalog build for a command.
type Builder interface {
	Build(ctx context.Context, msg BuildCatalogCommand) (*pipeline.Report, error)
}

// PipelineBuilder builds catalogs from a directory on disk.
type PipelineBuilder struct {
	Source     runtimeconfig.SourceConfig
	Repository storage.Repository
	Loggers    interfaces.LoggerProvider
	Pretty     bool
}

var _ Builder = PipelineBuilder{}

// Build loads msg.SourceDir and runs the pipeline over every locale found.
func (b PipelineBuilder) Build(ctx context.Context, msg BuildCatalogCommand) (*pipeline.Report, error) {
	locales := b.Source.Locales
	if len(msg.Locales) > 0 {
		locales = msg.Locales
	}
	loader := markdown.NewLoader(os.DirFS(msg.SourceDir), markdown.LoaderConfig{
		Pattern:        b.Source.Pattern,
		DefaultLocale:  b.Source.DefaultLocale,
		Locales:        locales,
		LocalePatterns: b.Source.LocalePatterns,
		Recursive:      b.Source.Recursive,
	})
	tokenizer := markdown.NewGoldmarkTokenizer(markdown.TokenizerOptions{SkipSections: b.Source.SkipSections})

	opts := []pipeline.Option{
		pipeline.WithLoggerProvider(b.Loggers),
		pipeline.WithCacheFallback(msg.FallbackToCache),
		pipeline.WithDiff(msg.Diff),
	}
	if b.Repository != nil {
		opts = append(opts, pipeline.WithRepository(b.Repository))
	}
	if msg.DataDir != "" {
		opts = append(opts, pipeline.WithDataDir(msg.DataDir, b.Pretty))
	}
	return pipeline.New(loader, tokenizer, opts...).Run(ctx)
}

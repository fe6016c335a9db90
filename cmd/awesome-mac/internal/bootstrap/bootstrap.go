// Package bootstrap turns CLI configuration into the runtime collaborators
// shared by the awesome-mac subcommands.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	catalogcmd "github.com/goliatone/go-awesome-mac/internal/commands/catalog"
	"github.com/goliatone/go-awesome-mac/internal/logging"
	"github.com/goliatone/go-awesome-mac/internal/logging/console"
	"github.com/goliatone/go-awesome-mac/internal/logging/gologger"
	"github.com/goliatone/go-awesome-mac/internal/runtimeconfig"
	"github.com/goliatone/go-awesome-mac/internal/storage"
	"github.com/goliatone/go-awesome-mac/pkg/interfaces"
)

// Runtime bundles the configured collaborators.
type Runtime struct {
	Config     runtimeconfig.Config
	Loggers    interfaces.LoggerProvider
	Logger     interfaces.Logger
	Repository storage.Repository

	closeRepo func() error
}

// Options captures the inputs of Build.
type Options struct {
	// ConfigPath points at a TOML file; a missing file yields defaults.
	ConfigPath string
	// Override applies flag values on top of the loaded file.
	Override func(*runtimeconfig.Config)
	// LogWriter receives console log lines. Defaults to stderr.
	LogWriter io.Writer
}

// Build loads configuration, validates it and opens the snapshot repository.
func Build(ctx context.Context, opts Options) (*Runtime, error) {
	cfg, err := runtimeconfig.LoadFile(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Override != nil {
		opts.Override(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	provider, err := LoggerProvider(cfg, opts.LogWriter)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{
		Config:    cfg,
		Loggers:   provider,
		Logger:    logging.ModuleLogger(provider, "awesome.cli"),
		closeRepo: func() error { return nil },
	}
	if cfg.Features.Storage {
		repo, closeFn, err := storage.Open(ctx, cfg.Storage, logging.StorageLogger(provider))
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		rt.Repository = repo
		rt.closeRepo = closeFn
	} else {
		rt.Repository = storage.NewMemoryRepository()
	}
	return rt, nil
}

// Close releases the repository.
func (r *Runtime) Close() error {
	if r == nil || r.closeRepo == nil {
		return nil
	}
	return r.closeRepo()
}

// Builder returns a catalog builder over the configured source settings.
func (r *Runtime) Builder() catalogcmd.PipelineBuilder {
	return catalogcmd.PipelineBuilder{
		Source:     r.Config.Source,
		Repository: r.Repository,
		Loggers:    r.Loggers,
		Pretty:     r.Config.Output.Pretty,
	}
}

// BuildCommand derives the build message from configuration.
func (r *Runtime) BuildCommand() catalogcmd.BuildCatalogCommand {
	msg := catalogcmd.BuildCatalogCommand{
		SourceDir:       r.Config.Source.Dir,
		Locales:         r.Config.Source.Locales,
		FallbackToCache: r.Config.Storage.FallbackToCache,
		Diff:            r.Config.Features.Diff,
	}
	if r.Config.Features.DataFile {
		msg.DataDir = r.Config.Output.Path
	}
	return msg
}

// Gates exposes configuration features to command handlers.
func (r *Runtime) Gates() catalogcmd.FeatureGates {
	return catalogcmd.FeatureGates{
		SitemapEnabled: func() bool { return r.Config.Features.Sitemap },
	}
}

// LoggerProvider builds the provider selected by cfg.Logging. A disabled
// logger feature yields nil, which every module logger treats as no-op.
func LoggerProvider(cfg runtimeconfig.Config, w io.Writer) (interfaces.LoggerProvider, error) {
	if !cfg.Features.Logger {
		return nil, nil
	}
	logCfg := cfg.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "", "console":
		if w == nil {
			w = os.Stderr
		}
		opts := console.Options{Writer: w}
		if level, ok := console.ParseLevel(logCfg.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, logCfg.Provider)
	}
}

// SplitLocales parses a comma separated locale list into a trimmed slice.
func SplitLocales(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	locales := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			locales = append(locales, trimmed)
		}
	}
	return locales
}

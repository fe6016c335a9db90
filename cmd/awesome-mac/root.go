package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-awesome-mac/cmd/awesome-mac/internal/bootstrap"
	catalogcmd "github.com/goliatone/go-awesome-mac/internal/commands/catalog"
	"github.com/goliatone/go-awesome-mac/internal/pipeline"
	"github.com/goliatone/go-awesome-mac/internal/runtimeconfig"
)

// globalFlags holds persistent flags shared by every subcommand.
type globalFlags struct {
	configPath  string
	sourceDir   string
	locales     string
	logLevel    string
	logProvider string
	storage     string
	dsn         string
}

var runtimeBuilder = bootstrap.Build

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "awesome-mac",
		Short: "Parse the awesome-mac README into a queryable catalog",
		Long: `awesome-mac parses the curated awesome-mac README documents into a catalog of
categories and apps, writes JSON data files, searches the catalog and renders
sitemaps for the published site.`,
		SilenceUsage: true,
	}
	root.Version = "dev"

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "awesome-mac.toml", "TOML configuration file")
	pf.StringVar(&flags.sourceDir, "source", "", "Directory holding README documents")
	pf.StringVar(&flags.locales, "locales", "", "Comma separated list of locales to build")
	pf.StringVar(&flags.logLevel, "log-level", "", "Enable logging at the given level")
	pf.StringVar(&flags.logProvider, "log-provider", "", "Logging provider (console, gologger)")
	pf.StringVar(&flags.storage, "storage", "", "Snapshot storage driver (memory, sqlite, postgres)")
	pf.StringVar(&flags.dsn, "dsn", "", "Snapshot storage DSN")

	root.AddCommand(
		newBuildCmd(flags),
		newSearchCmd(flags),
		newSitemapCmd(flags),
		newWatchCmd(flags),
	)
	return root
}

// runtime loads configuration with the persistent flags applied last.
func (f *globalFlags) runtime(ctx context.Context, override func(*runtimeconfig.Config)) (*bootstrap.Runtime, error) {
	return runtimeBuilder(ctx, bootstrap.Options{
		ConfigPath: f.configPath,
		Override: func(cfg *runtimeconfig.Config) {
			if dir := strings.TrimSpace(f.sourceDir); dir != "" {
				cfg.Source.Dir = dir
			}
			if locales := bootstrap.SplitLocales(f.locales); len(locales) > 0 {
				cfg.Source.Locales = locales
			}
			if level := strings.TrimSpace(f.logLevel); level != "" {
				cfg.Features.Logger = true
				cfg.Logging.Level = level
			}
			if provider := strings.TrimSpace(f.logProvider); provider != "" {
				cfg.Features.Logger = true
				cfg.Logging.Provider = provider
			}
			if driver := strings.TrimSpace(f.storage); driver != "" {
				cfg.Features.Storage = true
				cfg.Storage.Driver = driver
			}
			if dsn := strings.TrimSpace(f.dsn); dsn != "" {
				cfg.Storage.DSN = dsn
			}
			if override != nil {
				override(cfg)
			}
		},
	})
}

// buildCatalog runs the build handler and returns its report.
func buildCatalog(ctx context.Context, rt *bootstrap.Runtime, msg catalogcmd.BuildCatalogCommand) (*pipeline.Report, error) {
	var report *pipeline.Report
	handler := catalogcmd.NewBuildCatalogHandler(rt.Builder(), rt.Logger,
		catalogcmd.WithReportFunc(func(r *pipeline.Report) { report = r }))
	if err := handler.Execute(ctx, msg); err != nil {
		return nil, err
	}
	return report, nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	catalogcmd "github.com/goliatone/go-awesome-mac/internal/commands/catalog"
	"github.com/goliatone/go-awesome-mac/internal/runtimeconfig"
)

func newSitemapCmd(flags *globalFlags) *cobra.Command {
	var (
		baseURL string
		outDir  string
		robots  bool
	)
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Build the catalog and render sitemap.xml and robots.txt",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.runtime(cmd.Context(), func(cfg *runtimeconfig.Config) {
				cfg.Features.Sitemap = true
				cfg.Features.DataFile = false
				if cmd.Flags().Changed("base-url") {
					cfg.Sitemap.BaseURL = baseURL
				}
				if cmd.Flags().Changed("out") {
					cfg.Sitemap.Path = outDir
				}
				if cmd.Flags().Changed("robots") {
					cfg.Sitemap.GenerateRobots = robots
				}
			})
			if err != nil {
				return err
			}
			defer rt.Close()

			if _, err := buildCatalog(cmd.Context(), rt, rt.BuildCommand()); err != nil {
				return err
			}
			handler := catalogcmd.NewWriteSitemapHandler(rt.Repository, rt.Logger, rt.Gates())
			err = handler.Execute(cmd.Context(), catalogcmd.WriteSitemapCommand{
				OutputDir:     rt.Config.Sitemap.Path,
				BaseURL:       rt.Config.Sitemap.BaseURL,
				DefaultLocale: rt.Config.Source.DefaultLocale,
				Robots:        rt.Config.Sitemap.GenerateRobots,
			})
			if err != nil {
				return err
			}
			for _, path := range handler.Written() {
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("wrote")+" "+path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Absolute site URL used in sitemap locations")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory receiving sitemap.xml")
	cmd.Flags().BoolVar(&robots, "robots", false, "Also write robots.txt")
	return cmd
}

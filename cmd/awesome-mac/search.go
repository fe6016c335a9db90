package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-awesome-mac/internal/query"
	"github.com/goliatone/go-awesome-mac/internal/runtimeconfig"
)

func newSearchCmd(flags *globalFlags) *cobra.Command {
	var (
		locale string
		limit  int
		filter query.Filter
	)
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Fuzzy search apps by name, slug or description",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.runtime(cmd.Context(), func(cfg *runtimeconfig.Config) {
				cfg.Features.DataFile = false
				if cmd.Flags().Changed("limit") {
					cfg.Search.Limit = limit
				}
			})
			if err != nil {
				return err
			}
			defer rt.Close()

			code := strings.TrimSpace(locale)
			if code == "" {
				code = rt.Config.Source.DefaultLocale
			}
			msg := rt.BuildCommand()
			msg.Locales = []string{code}
			report, err := buildCatalog(cmd.Context(), rt, msg)
			if err != nil {
				return err
			}
			build, ok := report.Locale(code)
			if !ok || build.Result == nil {
				return fmt.Errorf("no catalog built for locale %q", code)
			}

			matches, err := query.New(build.Result).Search(strings.Join(args, " "), query.SearchOptions{
				Filter: filter,
				Limit:  rt.Config.Search.Limit,
			})
			if err != nil {
				return err
			}
			renderMatches(cmd.OutOrStdout(), matches)
			return nil
		},
	}
	cmd.Flags().StringVarP(&locale, "locale", "l", "", "Locale to search (defaults to the default locale)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results (0 = unlimited)")
	cmd.Flags().StringVar(&filter.Category, "category", "", "Restrict to a category slug or id")
	cmd.Flags().BoolVar(&filter.Free, "free", false, "Only freeware")
	cmd.Flags().BoolVar(&filter.OpenSource, "oss", false, "Only open-source software")
	cmd.Flags().BoolVar(&filter.AppStore, "app-store", false, "Only App Store apps")
	cmd.Flags().BoolVar(&filter.AwesomeList, "awesome-list", false, "Only apps with an awesome list")
	return cmd
}

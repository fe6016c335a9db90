package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-awesome-mac/internal/logging"
	"github.com/goliatone/go-awesome-mac/internal/watch"
)

func newWatchCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild data files whenever a README changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.runtime(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer rt.Close()

			out := cmd.OutOrStdout()
			rebuild := func(ctx context.Context, _ []string) error {
				report, err := buildCatalog(ctx, rt, rt.BuildCommand())
				if err != nil {
					return err
				}
				renderReport(out, report)
				return nil
			}
			if err := rebuild(cmd.Context(), nil); err != nil {
				return err
			}

			w, err := watch.New(watch.Options{
				Dir:       rt.Config.Source.Dir,
				Pattern:   rt.Config.Source.Pattern,
				Recursive: rt.Config.Source.Recursive,
				Logger:    logging.WatchLogger(rt.Loggers),
			}, rebuild)
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	return cmd
}

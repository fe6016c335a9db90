package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-awesome-mac/internal/runtimeconfig"
)

func newBuildCmd(flags *globalFlags) *cobra.Command {
	var (
		outDir string
		noData bool
		diff   bool
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Parse README documents and write per-locale data files",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.runtime(cmd.Context(), func(cfg *runtimeconfig.Config) {
				if cmd.Flags().Changed("out") {
					cfg.Output.Path = outDir
				}
				if cmd.Flags().Changed("pretty") {
					cfg.Output.Pretty = pretty
				}
				if noData {
					cfg.Features.DataFile = false
				}
				if diff {
					cfg.Features.Diff = true
				}
			})
			if err != nil {
				return err
			}
			defer rt.Close()

			report, err := buildCatalog(cmd.Context(), rt, rt.BuildCommand())
			if err != nil {
				return err
			}
			renderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory receiving <locale>.json data files")
	cmd.Flags().BoolVar(&noData, "no-data", false, "Skip writing data files")
	cmd.Flags().BoolVar(&diff, "diff", false, "Print a diff against the stored snapshot")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "Indent data files")
	return cmd
}

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pointconfig/adapters/jsonfile"
	"pointconfig/app"
	"pointconfig/domain/core"
	"pointconfig/internal"
	"pointconfig/internal/config"
	"pointconfig/internal/container"
	"pointconfig/internal/lookup"
	"pointconfig/internal/scoring"
)

func newExamineCmd() *cobra.Command {
	var runID, stageName string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "examine [top_examples.json]",
		Short: "Report equidistributed directions of stored examples",
		Long: `Rescore stored examples and print the sorted counts of their
equidistributed directions. Reads a top_examples.json file, or a stored
run when --run is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var stage scoring.Stage
			if stageName != "" {
				if err := stage.UnmarshalText([]byte(stageName)); err != nil {
					return err
				}
			}

			var reports []app.ExampleReport
			switch {
			case len(args) == 1:
				examples, err := jsonfile.ReadFile(args[0])
				if err != nil {
					return err
				}
				service := app.NewExamineService(lookup.NewCache(internal.NewNopLogger()), nil)
				if reports, err = service.ExamineExamples(examples); err != nil {
					return err
				}
			case runID != "":
				id, err := core.ParseRunID(runID)
				if err != nil {
					return err
				}
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				c, err := container.New(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				defer c.Shutdown(context.Background())
				if reports, err = c.Examine.ExamineRun(cmd.Context(), id); err != nil {
					return err
				}
			default:
				return fmt.Errorf("give a top_examples.json path or --run")
			}

			if stageName != "" {
				reports = app.FilterReports(reports, stage)
			}

			out := cmd.OutOrStdout()
			if verbose {
				for _, r := range reports {
					fmt.Fprintf(out, "#%-3d score %8d  size %4d  stage %-16s  equidistributed %d\n",
						r.Rank, r.Score, r.Size, r.Stage, r.EquidistributedDirections)
				}
			}
			fmt.Fprintln(out, app.SortedEquidistributionCounts(reports))
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Examine a stored run instead of a file")
	cmd.Flags().StringVar(&stageName, "stage", "", "Only report examples that stopped at this stage, e.g. done")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print one line per example")
	return cmd
}

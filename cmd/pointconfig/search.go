package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pointconfig/internal/config"
	"pointconfig/internal/container"
)

func newSearchCmd() *cobra.Command {
	var prime, batchSize, rounds, topK int
	var percentile, density float64
	var seed int64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run the elite-feedback search and store the best examples",
		Long: `Run rounds of sampling, scoring and elite selection.
Defaults come from the environment (PRIME, BATCH_SIZE, ROUNDS, ...);
flags override them. Examples are stored in Postgres when DATABASE_URL
is set, under EXAMPLES_PATH when that is set, and in memory otherwise.

Example: pointconfig search --prime 7 --rounds 20 --batch-size 500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c, err := container.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer c.Shutdown(context.Background())

			req := c.SearchRequest()
			flags := cmd.Flags()
			if flags.Changed("prime") {
				req.Prime = prime
			}
			if flags.Changed("batch-size") {
				req.BatchSize = batchSize
			}
			if flags.Changed("rounds") {
				req.Rounds = rounds
			}
			if flags.Changed("top-k") {
				req.TopK = topK
			}
			if flags.Changed("percentile") {
				req.Percentile = percentile
			}
			if flags.Changed("density") {
				req.Density = density
			}
			if flags.Changed("seed") {
				req.Seed = seed
			}

			result, err := c.Search.Run(ctx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			fmt.Fprintf(out, "run %s: p=%d density=%.4f best=%d (%d ms)\n",
				result.RunID, result.Prime, result.Density, result.Best, result.RuntimeMs)
			for _, r := range result.Rounds {
				fmt.Fprintf(out, "  round %3d  best %8d  mean %10.2f  median %10.2f\n", r.Round, r.Best, r.Mean, r.Median)
			}
			for _, e := range result.Top {
				fmt.Fprintf(out, "  #%-3d %8d  %s\n", e.Rank, e.Score, e.Subset)
			}
			return nil
		},
	}

	defaults := config.Default()
	flags := cmd.Flags()
	flags.IntVar(&prime, "prime", defaults.Geometry.Prime, "Prime p")
	flags.IntVar(&batchSize, "batch-size", defaults.Search.BatchSize, "Words sampled per round")
	flags.IntVar(&rounds, "rounds", defaults.Search.Rounds, "Number of rounds")
	flags.IntVar(&topK, "top-k", defaults.Search.TopK, "Examples kept across the run")
	flags.Float64Var(&percentile, "percentile", defaults.Search.Percentile, "Elite percentile in [0,100)")
	flags.Float64Var(&density, "density", defaults.Search.Density, "Initial density; 0 picks one from the prime")
	flags.Int64Var(&seed, "seed", defaults.Search.Seed, "Random seed")
	flags.BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	return cmd
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pointconfig/internal"
	"pointconfig/internal/lookup"
	"pointconfig/internal/scoring"
)

func newScoreCmd() *cobra.Command {
	var prime int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "score <word>",
		Short: "Score a 0/1 word of length p^3-4",
		Long: `Score a word describing which free points of AG(3,p) belong to a subset.
The points 0, 1, p and p^2 are always included.

Example: pointconfig score 01100101011100001001011 --prime 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word, err := scoring.ParseWord(args[0])
			if err != nil {
				return err
			}
			if prime == 0 {
				if prime, err = scoring.PrimeForWordLength(len(word)); err != nil {
					return err
				}
			}

			scorer, err := scoring.NewScorer(lookup.NewCache(internal.NewNopLogger()), prime)
			if err != nil {
				return err
			}
			result, err := scorer.Evaluate(word)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			fmt.Fprintf(out, "score: %d\n", result.Score)
			fmt.Fprintf(out, "stage: %s\n", result.Stage)
			fmt.Fprintf(out, "size:  %d\n", result.Size)
			fmt.Fprintf(out, "normalized: %.4f\n", scoring.NormalizedScore(prime, result.Score))
			return nil
		},
	}

	cmd.Flags().IntVar(&prime, "prime", 0, "Prime p; inferred from the word length when 0")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	return cmd
}

package scoring

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// EvaluateWords evaluates every word independently on up to the configured
// number of workers. Results are returned in input order. The first error,
// or cancellation of ctx, aborts the batch.
func (s *Scorer) EvaluateWords(ctx context.Context, words []Word) ([]Result, error) {
	start := time.Now()
	results := make([]Result, len(words))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, word := range words {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := s.Evaluate(word)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("scored %d words for p=%d in %v", len(words), s.space.Prime, time.Since(start))
	return results, nil
}

// ScoreWords is EvaluateWords reduced to the scores.
func (s *Scorer) ScoreWords(ctx context.Context, words []Word) ([]int, error) {
	results, err := s.EvaluateWords(ctx, words)
	if err != nil {
		return nil, err
	}
	scores := make([]int, len(results))
	for i, r := range results {
		scores[i] = r.Score
	}
	return scores, nil
}

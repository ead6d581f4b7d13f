package molecule

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome for one input of CalculateBatch.
type BatchResult struct {
	Input  string
	Result *Result
	Err    error
}

// CalculateBatch calculates every input independently using up to workers
// goroutines. Results keep the order of inputs; a rejected input only fails
// its own entry. All inputs are validated against the same table snapshot.
func (s *Service) CalculateBatch(ctx context.Context, inputs []string, workers int) ([]BatchResult, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	tbl := s.elements.Table()
	results := make([]BatchResult, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := s.evaluate(in, tbl)
			results[i] = BatchResult{Input: in, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("batch calculated", "inputs", len(inputs), "workers", workers)
	return results, nil
}

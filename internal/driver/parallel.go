package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BuildFiles builds every path concurrently and returns the results in
// input order. Результаты пишутся по уникальным индексам, мьютекс не
// нужен. The returned error only reports cancellation; per-file failures
// live in the results.
func BuildFiles(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = BuildFile(path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

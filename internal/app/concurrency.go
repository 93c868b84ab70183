package app

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// PartialResult holds a result or an error for one unit of work.
type PartialResult[T any] struct {
	Value T
	Err   error
}

// ParallelPartialLimit runs fns with at most limit in flight and collects
// every outcome. One failure does not cancel the others; a cancelled ctx
// still reaches each fn so it can return early.
//
// Example:
//
//	results := ParallelPartialLimit(ctx, 4, computeFuncs...)
//	for i, r := range results {
//	    if r.Err != nil {
//	        failed[i] = r.Err
//	    }
//	}
func ParallelPartialLimit[T any](
	ctx context.Context,
	limit int,
	fns ...func(context.Context) (T, error),
) []PartialResult[T] {
	results := make([]PartialResult[T], len(fns))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, fn := range fns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = PartialResult[T]{Err: err}

				return nil
			}

			value, err := fn(ctx)
			results[i] = PartialResult[T]{Value: value, Err: err}

			return nil
		})
	}

	_ = g.Wait()

	return results
}

// Values splits partial results into the successful values and the errors,
// preserving positions; the error slice is nil when everything succeeded.
func Values[T any](results []PartialResult[T]) ([]T, []error) {
	values := make([]T, len(results))

	var errs []error

	for i, r := range results {
		values[i] = r.Value

		if r.Err != nil {
			if errs == nil {
				errs = make([]error, len(results))
			}

			errs[i] = r.Err
		}
	}

	return values, errs
}

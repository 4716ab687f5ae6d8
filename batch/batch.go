// Package batch dispatches independent top-level series computations concurrently.
// The numeric packages are single-threaded; an Evaluator may be shared by the jobs.
package batch

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Job is an independent unit of work.
type Job func(ctx context.Context) error

// Run runs the jobs with at most limit of them in flight (no bound if limit <= 0).
// Jobs that have not started when ctx is cancelled, or when a job fails, are skipped.
// Run returns the first error, wrapped with the index of the failing job.
func Run(ctx context.Context, limit int, jobs ...Job) error {

	g, gctx := errgroup.WithContext(ctx)

	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, job := range jobs {

		i, job := i, job

		if err := gctx.Err(); err != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := job(gctx); err != nil {
				return errors.Wrapf(err, "job %d", i)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}

// Map calls f(ctx, i) for i in [0, n) through Run.
func Map(ctx context.Context, limit, n int, f func(ctx context.Context, i int) error) error {
	jobs := make([]Job, n)
	for i := range jobs {
		i := i
		jobs[i] = func(ctx context.Context) error { return f(ctx, i) }
	}
	return Run(ctx, limit, jobs...)
}

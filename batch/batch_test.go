package batch

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/ballseries/ball"
	"github.com/tuneinsight/ballseries/series"
)

func TestRun(t *testing.T) {

	t.Run("Limit", func(t *testing.T) {
		var inFlight, peak int32
		jobs := make([]Job, 32)
		for i := range jobs {
			jobs[i] = func(ctx context.Context) error {
				v := atomic.AddInt32(&inFlight, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if v <= p || atomic.CompareAndSwapInt32(&peak, p, v) {
						break
					}
				}
				atomic.AddInt32(&inFlight, -1)
				return nil
			}
		}
		require.NoError(t, Run(context.Background(), 4, jobs...))
		require.LessOrEqual(t, peak, int32(4))
	})

	t.Run("Error", func(t *testing.T) {
		sentinel := fmt.Errorf("sentinel")
		err := Map(context.Background(), 2, 8, func(ctx context.Context, i int) error {
			if i == 5 {
				return sentinel
			}
			return nil
		})
		require.Error(t, err)
		require.Equal(t, sentinel, errors.Cause(err))
		require.Contains(t, err.Error(), "job 5")
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var calls int32
		err := Map(ctx, 1, 10, func(ctx context.Context, i int) error {
			atomic.AddInt32(&calls, 1)
			return nil
		})
		require.ErrorIs(t, err, context.Canceled)
		require.Zero(t, calls)
	})

	t.Run("Empty", func(t *testing.T) {
		require.NoError(t, Run(context.Background(), 0))
	})

	t.Run("SharedEvaluator", func(t *testing.T) {
		eval := series.NewEvaluator(series.DefaultTuning())

		n := 8
		res := make([]*series.Poly, n)
		require.NoError(t, Map(context.Background(), 0, n, func(ctx context.Context, i int) error {
			res[i] = series.NewPoly(0)
			h := series.NewPolyFromFloat64(float64(i)/8, 1)
			eval.ExpSeries(h, 20, 128, res[i])
			return nil
		}))

		for i := range res {
			var e ball.Ball
			e.Exp(ball.NewFloat64(float64(i)/8), 128)
			require.True(t, res[i].Coeffs[0].Overlaps(&e))
			require.Equal(t, 20, res[i].Length())
		}
	})
}

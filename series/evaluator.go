// Package series implements truncated power series and polynomials with ball coefficients:
// the multiplication, division, composition and reversion engines, the transcendental
// series functions, interpolation and multipoint evaluation.
//
// All the operations are methods of an Evaluator. The output operand comes last
// and may alias any input.
package series

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/tuneinsight/ballseries/ball"
)

// Evaluator is a struct storing the tuning thresholds and the logger used by the
// series operations. It is immutable and safe for concurrent use.
type Evaluator struct {
	Tuning
	logger log.Logger
}

// NewEvaluator creates a new Evaluator with the given tuning and a no-op logger.
// It panics if the tuning is not valid.
func NewEvaluator(t Tuning) *Evaluator {
	if err := t.Validate(); err != nil {
		ball.Precondition("NewEvaluator", "%s", err)
	}
	return &Evaluator{Tuning: t, logger: log.NewNopLogger()}
}

// WithLogger returns a shallow copy of the evaluator that logs to logger.
func (eval *Evaluator) WithLogger(logger log.Logger) *Evaluator {
	e := *eval
	e.logger = logger
	return &e
}

// Logger returns the logger of the evaluator.
func (eval *Evaluator) Logger() log.Logger {
	return eval.logger
}

func (eval *Evaluator) debug(keyvals ...interface{}) {
	_ = level.Debug(eval.logger).Log(keyvals...)
}

func checkLength(op string, n int) {
	if n < 0 {
		ball.Precondition(op, "negative length %d", n)
	}
}

// newtonLadder returns the sequence n, ceil(n/2), ... stopping at the first
// value that is at most cutoff.
func newtonLadder(n, cutoff int) (a []int) {
	if cutoff < 1 {
		cutoff = 1
	}
	a = append(a, n)
	for n > cutoff {
		n = (n + 1) >> 1
		a = append(a, n)
	}
	return
}

// adaptive evaluates f at the working precision prec and, while the result is finite
// but has fewer than prec - 8 bits of relative accuracy, at doubled working precisions,
// up to MaxPrecisionRetries times. The last (sound) result is returned.
func (eval *Evaluator) adaptive(op string, prec uint, f func(z *ball.Ball, wp uint)) *ball.Ball {

	z := new(ball.Ball)
	wp := prec
	f(z, wp)

	for try := 0; ; try++ {

		if !z.IsFinite() || z.ContainsZero() || z.RelAccuracyBits() >= int(prec)-8 {
			return z
		}

		if try == eval.MaxPrecisionRetries {
			eval.debug("op", op, "msg", "retry budget exhausted", "prec", prec, "wp", wp, "accuracy", z.RelAccuracyBits())
			return z
		}

		wp *= 2
		eval.debug("op", op, "msg", "insufficient accuracy, retrying", "prec", prec, "wp", wp, "accuracy", z.RelAccuracyBits())
		f(z, wp)
	}
}

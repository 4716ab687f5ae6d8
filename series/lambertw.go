package series

import (
	"github.com/tuneinsight/ballseries/ball"
)

// LambertWSeries sets res to W_k(h) truncated to length n, for the branch k = 0
// or k = -1. The constant term is the scalar Lambert W function of h_0; the other
// coefficients are obtained by Newton iteration on w e^w = h, one coefficient at a
// time up to LambertWNewtonCutoff and doubling the length above.
// If 1 + W(h_0) contains zero (h_0 close to -1/e), res is indeterminate.
func (eval *Evaluator) LambertWSeries(h *Poly, branch int, n int, prec uint, res *Poly) {

	if branch != 0 && branch != -1 {
		ball.Precondition("LambertWSeries", "unsupported branch %d", branch)
	}

	eval.unary("LambertWSeries", h, n, res, func(h *Poly, n int, res *Poly) {

		wp := prec + 8

		w0 := eval.adaptive("LambertW", wp, func(z *ball.Ball, wp uint) {
			z.LambertW(&h.Coeffs[0], branch, wp)
		})

		var d0 ball.Ball
		d0.AddInt64(w0, 1, wp)
		if !w0.IsFinite() || d0.ContainsZero() {
			res.setIndeterminate(n)
			return
		}

		res.SetLength(1)
		res.Coeffs[0].SetRound(w0, prec)

		if n == 1 {
			return
		}

		ladder := newtonLadder(n, eval.LambertWNewtonCutoff)

		// lengths 2, 3, ..., ladder[len-1], then doubling
		var steps []int
		for m := 2; m <= ladder[len(ladder)-1]; m++ {
			steps = append(steps, m)
		}
		for i := len(ladder) - 2; i >= 0; i-- {
			steps = append(steps, ladder[i])
		}

		e, f, d := NewPoly(n), NewPoly(n), NewPoly(n)

		m := 1
		for _, m2 := range steps {

			if m2 <= m {
				continue
			}

			// f = w e^w - h, d = e^w (1 + w)
			eval.ExpSeries(res, m2, wp, e)
			eval.Mullow(res, e, m2, wp, f)
			eval.SubSeries(f, h, m2, wp, f)

			eval.Add(e, f, wp, d)
			eval.AddSeries(d, h, m2, wp, d)

			eval.DivSeries(f, d, m2, wp, f)

			res.SetLength(m2)
			for j := m; j < m2; j++ {
				res.Coeffs[j].Neg(f.Coeff(j))
			}

			m = m2
		}

		res.SetRound(res, prec)
	})
}

package series

import (
	"github.com/tuneinsight/ballseries/ball"
)

// SubproductTree stores the products of the linear factors x - x_i. Level 0 holds
// the factors themselves, and every node of level k+1 is the product of two
// consecutive nodes of level k (a trailing node without sibling is copied).
// The last level holds the single polynomial prod_i (x - x_i).
type SubproductTree struct {
	Levels [][]Poly
}

// NewSubproductTree builds the subproduct tree of the points xs.
func (eval *Evaluator) NewSubproductTree(xs []ball.Ball, prec uint) *SubproductTree {

	if len(xs) == 0 {
		return &SubproductTree{}
	}

	level := make([]Poly, len(xs))
	for i := range xs {
		level[i].SetLength(2)
		level[i].Coeffs[0].Neg(&xs[i])
		level[i].Coeffs[1].One()
	}

	tree := &SubproductTree{Levels: [][]Poly{level}}

	for len(level) > 1 {
		next := make([]Poly, (len(level)+1)/2)
		for j := range next {
			if 2*j+1 < len(level) {
				eval.Mul(&level[2*j], &level[2*j+1], prec, &next[j])
			} else {
				next[j].Set(&level[2*j])
			}
		}
		tree.Levels = append(tree.Levels, next)
		level = next
	}

	return tree
}

// Depth returns the number of levels of the tree.
func (tree *SubproductTree) Depth() int {
	return len(tree.Levels)
}

// Root returns the product of all the linear factors, or nil for an empty tree.
func (tree *SubproductTree) Root() *Poly {
	if len(tree.Levels) == 0 {
		return nil
	}
	return &tree.Levels[len(tree.Levels)-1][0]
}

// ProductRoots sets res to prod_i (x - xs_i), computed by balanced products.
func (eval *Evaluator) ProductRoots(xs []ball.Ball, prec uint, res *Poly) {
	switch len(xs) {
	case 0:
		res.One()
	case 1:
		var t ball.Ball
		t.Neg(&xs[0])
		res.SetLength(2)
		res.Coeffs[0].Swap(&t)
		res.Coeffs[1].One()
	default:
		m := len(xs) / 2
		lo, hi := NewPoly(m+1), NewPoly(len(xs)-m+1)
		eval.ProductRoots(xs[:m], prec, lo)
		eval.ProductRoots(xs[m:], prec, hi)
		eval.Mul(lo, hi, prec, res)
	}
}

// EvaluateVec returns the values of a at the points xs. Each point is evaluated
// separately below MultipointFastCutoff, and with a remainder tree above.
func (eval *Evaluator) EvaluateVec(a *Poly, xs []ball.Ball, prec uint) []ball.Ball {
	if len(xs) < eval.MultipointFastCutoff {
		return eval.EvaluateVecIterated(a, xs, prec)
	}
	return eval.EvaluateVecFast(a, xs, prec)
}

// EvaluateVecIterated evaluates a at every point of xs with Evaluate.
func (eval *Evaluator) EvaluateVecIterated(a *Poly, xs []ball.Ball, prec uint) []ball.Ball {
	ys := make([]ball.Ball, len(xs))
	for i := range xs {
		eval.Evaluate(a, &xs[i], prec, &ys[i])
	}
	return ys
}

// EvaluateVecFast evaluates a at the points xs by reducing it modulo the nodes of
// the subproduct tree of xs, from the root down to the linear factors.
func (eval *Evaluator) EvaluateVecFast(a *Poly, xs []ball.Ball, prec uint) []ball.Ball {

	if len(xs) == 0 {
		return []ball.Ball{}
	}

	tree := eval.NewSubproductTree(xs, prec)
	return eval.evaluateTree(a, tree, prec)
}

func (eval *Evaluator) evaluateTree(a *Poly, tree *SubproductTree, prec uint) []ball.Ball {

	depth := tree.Depth()

	rems := []Poly{{}}
	eval.Rem(a, tree.Root(), prec, &rems[0])

	for k := depth - 2; k >= 0; k-- {
		level := tree.Levels[k]
		next := make([]Poly, len(level))
		for j := range level {
			eval.Rem(&rems[j/2], &level[j], prec, &next[j])
		}
		rems = next
	}

	ys := make([]ball.Ball, len(rems))
	for i := range rems {
		if rems[i].Length() > 0 {
			ys[i].Set(&rems[i].Coeffs[0])
		}
	}
	return ys
}

func checkPoints(op string, xs, ys []ball.Ball) {
	if len(xs) != len(ys) {
		ball.Precondition(op, "%d points but %d values", len(xs), len(ys))
	}
}

// Interpolate sets res to the polynomial of degree < len(xs) taking the values ys
// at the points xs. The barycentric form is used below InterpolateFastCutoff,
// and the subproduct tree above.
func (eval *Evaluator) Interpolate(xs, ys []ball.Ball, prec uint, res *Poly) {
	if len(xs) < eval.InterpolateFastCutoff {
		eval.InterpolateBarycentric(xs, ys, prec, res)
	} else {
		eval.InterpolateFast(xs, ys, prec, res)
	}
}

// InterpolateNewton interpolates with divided differences, then expands the Newton
// form by Horner's scheme.
func (eval *Evaluator) InterpolateNewton(xs, ys []ball.Ball, prec uint, res *Poly) {

	checkPoints("InterpolateNewton", xs, ys)

	n := len(xs)
	if n == 0 {
		res.Zero()
		return
	}

	c := make([]ball.Ball, n)
	for i := range ys {
		c[i].Set(&ys[i])
	}

	var d ball.Ball
	for k := 1; k < n; k++ {
		for i := n - 1; i >= k; i-- {
			c[i].Sub(&c[i], &c[i-1], prec)
			d.Sub(&xs[i], &xs[i-k], prec)
			c[i].Div(&c[i], &d, prec)
		}
	}

	// p = c_(n-1); p <- p (x - x_k) + c_k
	t := NewPoly(n)
	t.SetLength(1)
	t.Coeffs[0].Set(&c[n-1])

	var u ball.Ball
	for k := n - 2; k >= 0; k-- {
		l := t.Length()
		t.SetLength(l + 1)
		for j := l; j >= 0; j-- {
			if j < l {
				u.Mul(&t.Coeffs[j], &xs[k], prec)
			} else {
				u.Zero()
			}
			if j > 0 {
				t.Coeffs[j].Sub(&t.Coeffs[j-1], &u, prec)
			} else {
				t.Coeffs[j].Neg(&u)
			}
		}
		t.Coeffs[0].Add(&t.Coeffs[0], &c[k], prec)
	}

	t.Normalise()
	res.Swap(t)
}

// InterpolateBarycentric interpolates with the barycentric formula
// P(x) = sum_i y_i w_i L(x) / (x - x_i), with L(x) = prod_j (x - x_j) and
// w_i = 1 / prod_(j != i) (x_i - x_j).
func (eval *Evaluator) InterpolateBarycentric(xs, ys []ball.Ball, prec uint, res *Poly) {

	checkPoints("InterpolateBarycentric", xs, ys)

	n := len(xs)
	if n == 0 {
		res.Zero()
		return
	}

	l := NewPoly(n + 1)
	eval.ProductRoots(xs, prec, l)

	t := NewPoly(n)
	t.SetLength(n)

	q := make([]ball.Ball, n)

	var w, d ball.Ball
	for i := 0; i < n; i++ {

		w.One()
		for j := 0; j < n; j++ {
			if j != i {
				d.Sub(&xs[i], &xs[j], prec)
				w.Mul(&w, &d, prec)
			}
		}
		w.Div(&ys[i], &w, prec)

		// L(x) / (x - x_i) by synthetic division
		q[n-1].Set(&l.Coeffs[n])
		for k := n - 1; k > 0; k-- {
			q[k-1].Mul(&q[k], &xs[i], prec)
			q[k-1].Add(&q[k-1], &l.Coeffs[k], prec)
		}

		for k := range q {
			t.Coeffs[k].AddMul(&q[k], &w, prec)
		}
	}

	t.Normalise()
	res.Swap(t)
}

// InterpolateFast interpolates with the subproduct tree: the weights
// y_i / L'(x_i) are obtained by fast multipoint evaluation of L', and the
// fractions are combined bottom-up along the tree.
func (eval *Evaluator) InterpolateFast(xs, ys []ball.Ball, prec uint, res *Poly) {

	checkPoints("InterpolateFast", xs, ys)

	n := len(xs)
	if n == 0 {
		res.Zero()
		return
	}

	tree := eval.NewSubproductTree(xs, prec)

	dl := NewPoly(n)
	eval.Derivative(tree.Root(), prec, dl)
	ws := eval.evaluateTree(dl, tree, prec)

	level := make([]Poly, n)
	for i := range level {
		level[i].SetLength(1)
		level[i].Coeffs[0].Div(&ys[i], &ws[i], prec)
	}

	// c = c_left M_right + c_right M_left
	for k := 0; k < tree.Depth()-1; k++ {
		nodes := tree.Levels[k]
		next := make([]Poly, (len(level)+1)/2)
		for j := range next {
			if 2*j+1 < len(level) {
				u := NewPoly(0)
				eval.Mul(&level[2*j], &nodes[2*j+1], prec, &next[j])
				eval.Mul(&level[2*j+1], &nodes[2*j], prec, u)
				eval.Add(&next[j], u, prec, &next[j])
			} else {
				next[j].Set(&level[2*j])
			}
		}
		level = next
	}

	t := level[0].CopyNew()
	t.Normalise()
	res.Swap(t)
}

package series

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// PrecisionStats is a struct storing statistics about the relative accuracy, in bits,
// of the coefficients of a series.
type PrecisionStats struct {
	MinPrecision    float64
	MaxPrecision    float64
	MeanPrecision   float64
	MedianPrecision float64
	STDPrecision    float64

	// Exact is the number of exact coefficients, Indeterminate the number of
	// coefficients with an infinite radius. Neither is included in the statistics.
	Exact, Indeterminate int
}

func (prec PrecisionStats) String() string {
	return fmt.Sprintf(`
┌─────────┬─────────┐
│    Log2 │ COEFFS  │
├─────────┼─────────┤
│MIN Prec │ %7.2f │
│MAX Prec │ %7.2f │
│AVG Prec │ %7.2f │
│MED Prec │ %7.2f │
│STD Prec │ %7.2f │
└─────────┴─────────┘
Exact         : %d
Indeterminate : %d
`,
		prec.MinPrecision,
		prec.MaxPrecision,
		prec.MeanPrecision,
		prec.MedianPrecision,
		prec.STDPrecision,
		prec.Exact,
		prec.Indeterminate)
}

// GetPrecisionStats generates a PrecisionStats struct from the relative accuracy of
// the coefficients of p. Exact and indeterminate coefficients are only counted.
func GetPrecisionStats(p *Poly) (prec PrecisionStats) {

	values := make([]float64, 0, p.Length())

	for i := range p.Coeffs {
		c := &p.Coeffs[i]
		switch {
		case !c.IsFinite():
			prec.Indeterminate++
		case c.IsExact():
			prec.Exact++
		default:
			values = append(values, float64(c.RelAccuracyBits()))
		}
	}

	if len(values) == 0 {
		return
	}

	prec.MinPrecision, _ = stats.Min(values)
	prec.MaxPrecision, _ = stats.Max(values)
	prec.MeanPrecision, _ = stats.Mean(values)
	prec.MedianPrecision, _ = stats.Median(values)
	prec.STDPrecision, _ = stats.StandardDeviation(values)

	return
}

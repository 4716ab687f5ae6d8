package series

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrecisionStats(t *testing.T) {

	p := NewPolyFromFloat64(1, 1, 1, 1, 3)
	p.Coeffs[1].AddErrorPow2(-10)
	p.Coeffs[2].AddErrorPow2(-20)
	p.Coeffs[3].AddErrorPow2(-30)
	p.Coeffs[4].Indeterminate()

	stats := GetPrecisionStats(p)
	require.Equal(t, 1, stats.Exact)
	require.Equal(t, 1, stats.Indeterminate)
	require.InDelta(t, 10, stats.MinPrecision, 1)
	require.InDelta(t, 30, stats.MaxPrecision, 1)
	require.InDelta(t, 20, stats.MeanPrecision, 1)
	require.InDelta(t, 20, stats.MedianPrecision, 1)
	require.Greater(t, stats.STDPrecision, 0.0)
	require.Contains(t, stats.String(), "MIN Prec")

	empty := GetPrecisionStats(NewPolyFromFloat64(1, 2))
	require.Equal(t, 2, empty.Exact)
	require.Zero(t, empty.MaxPrecision)
}

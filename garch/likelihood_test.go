package garch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

// gaussNLL is -log N(e; 0, v) written out independently of the engine.
func gaussNLL(e, v float64) float64 {
	return 0.5*math.Log(2*math.Pi*v) + e*e/(2*v)
}

func TestSingleObservation(t *testing.T) {
	x := 1.5
	obs := []float64{x}
	params := []float64{0, 1, 0, 0}

	_, vs, err := Initialize(ConstantGARCH11, MeanParams{}, InnovationsParams{Omega: 1}, obs)
	require.NoError(t, err)
	assert.Equal(t, x*x, vs.LastResidSq, "seed is (x - mu)^2")
	assert.Equal(t, x*x, vs.LastVar)

	resid, sd, err := Filter(ConstantGARCH11, params, obs)
	require.NoError(t, err)
	assert.Equal(t, []float64{x}, resid)
	assert.Equal(t, []float64{1}, sd, "alpha = beta = 0 leaves only omega")

	nll, err := NegLogLikelihood(ConstantGARCH11, params, obs)
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(distuv.UnitNormal.Prob(x)), nll, 1e-12)
}

func TestSingleObservationUsesSeed(t *testing.T) {
	x := 1.5
	_, sd, err := Filter(ConstantGARCH11, []float64{0, 1, 0.5, 0.25}, []float64{x})
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(1+0.75*x*x), sd[0], 1e-15)
}

func TestConstantMeanRecursion(t *testing.T) {
	obs := []float64{1, -1, 2}
	params := []float64{0.5, 0.1, 0.2, 0.7}

	m2 := 4.75 / 3
	v0 := 0.1 + 0.9*m2
	v1 := 0.1 + 0.2*0.25 + 0.7*v0
	v2 := 0.1 + 0.2*2.25 + 0.7*v1
	e := []float64{0.5, -1.5, 1.5}
	v := []float64{v0, v1, v2}

	resid, sd, err := Filter(ConstantGARCH11, params, obs)
	require.NoError(t, err)
	assert.InDeltaSlice(t, e, resid, 1e-15)
	for i := range v {
		assert.InDelta(t, math.Sqrt(v[i]), sd[i], 1e-14, "sd[%d]", i)
	}

	want := gaussNLL(e[0], v0) + gaussNLL(e[1], v1) + gaussNLL(e[2], v2)
	nll, err := NegLogLikelihood(ConstantGARCH11, params, obs)
	require.NoError(t, err)
	assert.InDelta(t, want, nll, 1e-12)
}

func TestARMAMeanRecursion(t *testing.T) {
	obs := []float64{1, 2}
	params := []float64{0.1, 0.5, 0.2, 0.1, 0.1, 0.8}

	// Seed: prior observation 1.5, prior residual mean(0.9, 1.9) = 1.4.
	m0 := 0.1 + 0.5*1.5 + 0.2*1.4
	e0 := 1 - m0
	m1 := 0.1 + 0.5*1 + 0.2*e0
	e1 := 2 - m1

	resid, sd, err := Filter(ARMA11GARCH11, params, obs)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{e0, e1}, resid, 1e-14)

	seed := (0.81 + 3.61) / 2
	v0 := 0.1 + 0.9*seed
	v1 := 0.1 + 0.1*e0*e0 + 0.8*v0
	assert.InDeltaSlice(t, []float64{math.Sqrt(v0), math.Sqrt(v1)}, sd, 1e-14)
}

func TestARMAWithZeroCoefficientsMatchesConstant(t *testing.T) {
	obs := sampleSeries(300, 7)

	cResid, cSD, err := Filter(ConstantGARCH11, []float64{0.2, 0.1, 0.1, 0.8}, obs)
	require.NoError(t, err)
	aResid, aSD, err := Filter(ARMA11GARCH11, []float64{0.2, 0, 0, 0.1, 0.1, 0.8}, obs)
	require.NoError(t, err)

	assert.Equal(t, cResid, aResid)
	assert.Equal(t, cSD, aSD)

	for i, e := range aResid {
		require.Equal(t, obs[i]-0.2, e, "mean must equal mu at step %d", i)
	}

	c, err := NegLogLikelihood(ConstantGARCH11, []float64{0.2, 0.1, 0.1, 0.8}, obs)
	require.NoError(t, err)
	a, err := NegLogLikelihood(ARMA11GARCH11, []float64{0.2, 0, 0, 0.1, 0.1, 0.8}, obs)
	require.NoError(t, err)
	assert.Equal(t, c, a)
}

func TestResidualLength(t *testing.T) {
	for _, n := range []int{1, 2, 17, 250} {
		obs := sampleSeries(n, uint64(n))
		for _, f := range Families() {
			params, err := StartingParams(f, obs)
			require.NoError(t, err)

			resid, sd, err := Filter(f, params, obs)
			require.NoError(t, err)
			assert.Len(t, resid, n, "%s n=%d", f, n)
			assert.Len(t, sd, n, "%s n=%d", f, n)
		}
	}
}

func TestFiniteForPositiveVariance(t *testing.T) {
	obs := sampleSeries(500, 3)
	tests := []struct {
		name   string
		family Family
		params []float64
	}{
		{"constant", ConstantGARCH11, []float64{0, 0.05, 0.1, 0.85}},
		{"constant high persistence", ConstantGARCH11, []float64{0.1, 0.01, 0.05, 0.94}},
		{"arma", ARMA11GARCH11, []float64{0, 0.3, -0.2, 0.05, 0.1, 0.85}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nll, err := NegLogLikelihood(tt.family, tt.params, obs)
			require.NoError(t, err)
			assert.False(t, math.IsNaN(nll))
			assert.False(t, math.IsInf(nll, 0))
		})
	}
}

func TestDeterminism(t *testing.T) {
	obs := sampleSeries(400, 11)
	params := []float64{0.01, 0.2, -0.1, 0.05, 0.08, 0.9}

	first, err := NegLogLikelihood(ARMA11GARCH11, params, obs)
	require.NoError(t, err)

	// Interleave a different vector to catch state leaking between calls.
	_, err = NegLogLikelihood(ARMA11GARCH11, []float64{1, 0.9, 0.9, 2, 0.5, 0.4}, obs)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := NegLogLikelihood(ARMA11GARCH11, params, obs)
		require.NoError(t, err)
		require.Equal(t, math.Float64bits(first), math.Float64bits(again))
	}
}

func TestOmegaMonotonicity(t *testing.T) {
	zeros := make([]float64, 50)

	_, low, err := Filter(ConstantGARCH11, []float64{0, 0.5, 0.1, 0.8}, zeros)
	require.NoError(t, err)
	_, high, err := Filter(ConstantGARCH11, []float64{0, 1.0, 0.1, 0.8}, zeros)
	require.NoError(t, err)

	for i := range zeros {
		assert.Greater(t, high[i], low[i], "sd[%d]", i)
	}
}

func TestDegenerateVarianceIsInfinite(t *testing.T) {
	zeros := make([]float64, 10)

	nll, err := NegLogLikelihood(ConstantGARCH11, []float64{0, 0, 0.1, 0.8}, zeros)
	require.NoError(t, err, "numeric degeneracy is not an error")
	assert.True(t, math.IsInf(nll, 1))

	obj, err := Objective(ConstantGARCH11, zeros)
	require.NoError(t, err)
	assert.True(t, math.IsInf(obj([]float64{0, 0, 0, 0}), 1))
}

func TestNegativeVarianceUsesMagnitude(t *testing.T) {
	obs := []float64{0.5, -0.3, 0.2}

	_, sd, err := Filter(ConstantGARCH11, []float64{0, -1, 0, 0}, obs)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, sd)

	nll, err := NegLogLikelihood(ConstantGARCH11, []float64{0, -1, 0, 0}, obs)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(nll))
	assert.False(t, math.IsInf(nll, 0))
}

func TestNonFiniteInputsNeverNaN(t *testing.T) {
	obs := []float64{1, 2, 3}

	nll, err := NegLogLikelihood(ConstantGARCH11, []float64{math.NaN(), 1, 0.1, 0.8}, obs)
	require.NoError(t, err)
	assert.True(t, math.IsInf(nll, 1))

	nll, err = NegLogLikelihood(ConstantGARCH11, []float64{0, math.Inf(1), 0.1, 0.8}, obs)
	require.NoError(t, err)
	assert.True(t, math.IsInf(nll, 1))
}

func TestLikelihoodErrors(t *testing.T) {
	_, err := NegLogLikelihood(ConstantGARCH11, []float64{0, 1, 0}, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidParameterVectorLength)

	_, err = NegLogLikelihood(ConstantGARCH11, []float64{0, 1, 0, 0}, nil)
	assert.ErrorIs(t, err, ErrNoObservations)

	_, _, err = Filter(ARMA11GARCH11, []float64{0, 1, 0, 0}, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidParameterVectorLength)

	_, err = Objective(ConstantGARCH11, nil)
	assert.ErrorIs(t, err, ErrNoObservations)
}

func TestObjective(t *testing.T) {
	obs := sampleSeries(100, 5)
	params := []float64{0, 0.1, 0.1, 0.8}

	obj, err := Objective(ConstantGARCH11, obs)
	require.NoError(t, err)
	want, err := NegLogLikelihood(ConstantGARCH11, params, obs)
	require.NoError(t, err)
	assert.Equal(t, want, obj(params))

	assert.PanicsWithError(t,
		(&LengthError{Family: ConstantGARCH11, Want: 4, Got: 3}).Error(),
		func() { obj([]float64{0, 0.1, 0.1}) })
}

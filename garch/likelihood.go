package garch

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var posInf = math.Inf(1)

// path is the output of one forward pass of the recursion.
type path struct {
	residuals []float64
	variances []float64
	mean      MeanState // state after the last observation
	variance  VarianceState
}

// run steps the recursion through obs in order. The variance at t is taken
// from the state before e[t] is folded in.
func run(spec familySpec, mp MeanParams, ip InnovationsParams, obs []float64) path {
	ms, vs := spec.initialize(mp, ip, obs)
	p := path{
		residuals: make([]float64, len(obs)),
		variances: make([]float64, len(obs)),
	}
	for t, x := range obs {
		e := x - spec.mean(mp, ms)
		v := spec.variance(ip, vs)
		p.residuals[t] = e
		p.variances[t] = v
		ms = ms.Advance(x, e)
		vs = vs.Advance(e, v)
	}
	p.mean, p.variance = ms, vs
	return p
}

// stdDev converts a conditional variance to a standard deviation. Trial
// parameters can push the recursion slightly negative, so the magnitude is used.
func stdDev(v float64) float64 {
	return math.Sqrt(math.Abs(v))
}

// logDensity is log(pdf(e/s)/s) for the standard normal pdf.
func logDensity(e, s float64) float64 {
	if s == 0 {
		return math.Inf(-1)
	}
	return distuv.UnitNormal.LogProb(e/s) - math.Log(s)
}

// negLogLik reduces a path to the negative Gaussian log-likelihood.
// Zero standard deviations and non-finite sums map to +Inf.
func negLogLik(p path) float64 {
	sum := 0.0
	for t, e := range p.residuals {
		s := stdDev(p.variances[t])
		if s == 0 {
			return posInf
		}
		sum += logDensity(e, s)
	}
	nll := -sum
	if math.IsNaN(nll) || math.IsInf(nll, 0) {
		return posInf
	}
	return nll
}

func prepare(f Family, params, obs []float64) (familySpec, MeanParams, InnovationsParams, error) {
	spec, err := lookup(f)
	if err != nil {
		return familySpec{}, MeanParams{}, InnovationsParams{}, err
	}
	if len(params) != spec.arity {
		return familySpec{}, MeanParams{}, InnovationsParams{}, &LengthError{Family: f, Want: spec.arity, Got: len(params)}
	}
	if len(obs) == 0 {
		return familySpec{}, MeanParams{}, InnovationsParams{}, ErrNoObservations
	}
	mp, ip := spec.unpack(params)
	return spec, mp, ip, nil
}

// NegLogLikelihood returns the negative Gaussian log-likelihood of obs under
// params. Each call recomputes the recursion from scratch.
//
// Errors are reserved for a wrong-length vector, an unknown family or an
// empty series. A numerically degenerate point (a zero conditional standard
// deviation, overflow) yields +Inf so an optimizer rejects it; NaN is never
// returned.
func NegLogLikelihood(f Family, params, obs []float64) (float64, error) {
	spec, mp, ip, err := prepare(f, params, obs)
	if err != nil {
		return 0, err
	}
	return negLogLik(run(spec, mp, ip, obs)), nil
}

// Filter returns the residual and conditional standard deviation sequences,
// each of length len(obs).
func Filter(f Family, params, obs []float64) (residuals, stdDevs []float64, err error) {
	spec, mp, ip, err := prepare(f, params, obs)
	if err != nil {
		return nil, nil, err
	}
	p := run(spec, mp, ip, obs)
	stdDevs = make([]float64, len(p.variances))
	for t, v := range p.variances {
		stdDevs[t] = stdDev(v)
	}
	return p.residuals, stdDevs, nil
}

// Objective returns the negative log-likelihood of obs as a plain function
// of the parameter vector, suitable for a numerical optimizer. The returned
// function panics with a *LengthError if called with a vector of the wrong
// length.
func Objective(f Family, obs []float64) (func(params []float64) float64, error) {
	spec, err := lookup(f)
	if err != nil {
		return nil, err
	}
	if len(obs) == 0 {
		return nil, ErrNoObservations
	}
	return func(params []float64) float64 {
		if len(params) != spec.arity {
			panic(&LengthError{Family: f, Want: spec.arity, Got: len(params)})
		}
		mp, ip := spec.unpack(params)
		return negLogLik(run(spec, mp, ip, obs))
	}, nil
}

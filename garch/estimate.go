package garch

import (
	"github.com/sartorproj/gogarch/stats"
)

// Estimate is a fitted model: the winning parameters together with the
// residual and conditional standard deviation sequences recomputed at them.
// It is immutable once built; accessors return copies.
type Estimate struct {
	family      Family
	mean        MeanParams
	innovations InnovationsParams
	logLik      float64

	// Optimizer bookkeeping, zero when built directly with NewEstimate.
	iterations  int
	evaluations int
	status      string

	residuals []float64
	stdDevs   []float64
	meanState MeanState // after the last observation
	varState  VarianceState
}

// NewEstimate runs one final pass of the recursion at params and captures
// its output.
func NewEstimate(f Family, params, obs []float64) (*Estimate, error) {
	spec, mp, ip, err := prepare(f, params, obs)
	if err != nil {
		return nil, err
	}
	p := run(spec, mp, ip, obs)

	sd := make([]float64, len(p.variances))
	for t, v := range p.variances {
		sd[t] = stdDev(v)
	}

	nll := negLogLik(p)
	return &Estimate{
		family:      f,
		mean:        mp,
		innovations: ip,
		logLik:      -nll,
		residuals:   p.residuals,
		stdDevs:     sd,
		meanState:   p.mean,
		varState:    p.variance,
	}, nil
}

// Family returns the model family the estimate was computed for.
func (e *Estimate) Family() Family { return e.family }

// MeanParams returns the fitted mean-equation parameters.
func (e *Estimate) MeanParams() MeanParams { return e.mean }

// InnovationsParams returns the fitted variance-equation parameters.
func (e *Estimate) InnovationsParams() InnovationsParams { return e.innovations }

// LogLik returns the Gaussian log-likelihood at the fitted parameters.
func (e *Estimate) LogLik() float64 { return e.logLik }

// Iterations returns the optimizer's major iteration count.
func (e *Estimate) Iterations() int { return e.iterations }

// Evaluations returns the number of likelihood evaluations spent by the optimizer.
func (e *Estimate) Evaluations() int { return e.evaluations }

// Status returns the optimizer's termination status, empty when the estimate
// was not produced by Fit.
func (e *Estimate) Status() string { return e.status }

// NObs returns the number of observations the estimate was computed on.
func (e *Estimate) NObs() int {
	return len(e.residuals)
}

// Params returns the fitted parameter vector in the family's layout.
func (e *Estimate) Params() []float64 {
	v, _ := Pack(e.family, e.mean, e.innovations)
	return v
}

// Residuals returns a copy of the residual sequence.
func (e *Estimate) Residuals() []float64 {
	return append([]float64(nil), e.residuals...)
}

// StdDevs returns a copy of the conditional standard deviation sequence.
func (e *Estimate) StdDevs() []float64 {
	return append([]float64(nil), e.stdDevs...)
}

// StandardizedResiduals returns e[t]/s[t]. Entries with s[t] == 0 are 0.
func (e *Estimate) StandardizedResiduals() []float64 {
	z := make([]float64, len(e.residuals))
	for t, r := range e.residuals {
		if e.stdDevs[t] != 0 {
			z[t] = r / e.stdDevs[t]
		}
	}
	return z
}

// MeanState returns the mean recursion state after the last observation.
func (e *Estimate) MeanState() MeanState { return e.meanState }

// VarianceState returns the variance recursion state after the last observation.
func (e *Estimate) VarianceState() VarianceState { return e.varState }

// Forecast is the one-step-ahead prediction for the period after the series.
type Forecast struct {
	Mean     float64
	Variance float64
	StdDev   float64
}

// NewForecast takes one more recursion step past the end of the series.
// It fails only for an estimate whose family is not registered.
func NewForecast(e *Estimate) (Forecast, error) {
	spec, err := lookup(e.family)
	if err != nil {
		return Forecast{}, err
	}
	v := spec.variance(e.innovations, e.varState)
	return Forecast{
		Mean:     spec.mean(e.mean, e.meanState),
		Variance: v,
		StdDev:   stdDev(v),
	}, nil
}

// Forecast is shorthand for NewForecast(e). Estimates built by NewEstimate
// or Fit always carry a registered family, so it never fails for them.
func (e *Estimate) Forecast() Forecast {
	fc, _ := NewForecast(e)
	return fc
}

// Summary collects coefficients and residual diagnostics for reporting.
type Summary struct {
	Family      Family
	ParamNames  []string
	Params      []float64
	LogLik      float64
	AIC         float64
	BIC         float64
	NObs        int
	Persistence float64
	// UnconditionalVariance is +Inf when alpha + beta >= 1.
	UnconditionalVariance float64
	Forecast              Forecast

	// Diagnostics are nil when the series is too short for the test.
	LjungBox        *stats.LjungBoxResult // standardized residuals
	LjungBoxSquared *stats.LjungBoxResult // squared standardized residuals
	JarqueBera      *stats.JarqueBeraResult
	// SquaredACFLags lists the lags up to the Ljung-Box horizon at which the
	// autocorrelation of squared standardized residuals exceeds the 95%
	// white-noise bound: volatility clustering the model left unexplained.
	SquaredACFLags []int
}

// Summary returns a summary of the estimate with Ljung-Box tests run to lags.
func (e *Estimate) Summary(lags int) *Summary {
	params := e.Params()
	names, _ := ParamNames(e.family)
	ic := stats.CalculateIC(e.logLik, e.NObs(), len(params))

	z := e.StandardizedResiduals()
	zsq := make([]float64, len(z))
	for i, v := range z {
		zsq[i] = v * v
	}

	fitdf := 0
	if e.family.Mean == ARMA11Mean {
		fitdf = 2
	}

	var clustered []int
	if acf := stats.ACF(zsq, lags); acf != nil {
		clustered = stats.SignificantLags(acf, stats.ConfidenceBound(len(zsq)))
	}

	return &Summary{
		Family:                e.family,
		ParamNames:            names,
		Params:                params,
		LogLik:                e.logLik,
		AIC:                   ic.AIC,
		BIC:                   ic.BIC,
		NObs:                  e.NObs(),
		Persistence:           e.innovations.Persistence(),
		UnconditionalVariance: e.innovations.UnconditionalVariance(),
		Forecast:              e.Forecast(),
		LjungBox:              stats.LjungBox(z, lags, fitdf),
		LjungBoxSquared:       stats.LjungBox(zsq, lags, 2),
		JarqueBera:            stats.JarqueBera(z),
		SquaredACFLags:        clustered,
	}
}

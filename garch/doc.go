// Package garch fits GARCH(1,1) volatility models with a constant or
// ARMA(1,1) conditional mean by Gaussian maximum likelihood.
//
// A model family pairs a mean strategy with an innovations strategy and
// fixes the layout of the parameter vector:
//
//	ConstantGARCH11  [mu, omega, alpha, beta]
//	ARMA11GARCH11    [mu, ar, ma, omega, alpha, beta]
//
// # Likelihood
//
// NegLogLikelihood runs the recursion over the whole series and returns the
// negative Gaussian log-likelihood. It is a pure function of its inputs:
//
//	nll, err := garch.NegLogLikelihood(garch.ConstantGARCH11, []float64{0, 0.1, 0.1, 0.8}, returns)
//
// The recursion is seeded from sample moments of the series: both the prior
// squared residual and the prior variance start at the mean squared residual.
// A trial vector that drives a conditional standard deviation to zero
// evaluates to +Inf rather than failing, so optimizers simply move away.
//
// # Fitting
//
//	est, err := garch.Fit(garch.ARMA11GARCH11, returns, garch.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fc := est.Forecast()
//	fmt.Printf("next: mean %.4f sd %.4f\n", fc.Mean, fc.StdDev)
//
// FitMultiStart runs independent fits from several starting vectors in
// parallel and keeps the best one.
//
// # Diagnostics
//
//	s := est.Summary(10)
//	// s.LjungBoxSquared tests for volatility clustering left in the residuals
package garch

// Package gogarch provides GARCH volatility modeling for financial return series.
//
// GoGARCH fits GARCH(1,1) models with a constant or ARMA(1,1) conditional mean
// by Gaussian maximum likelihood, and produces one-step-ahead forecasts of the
// conditional mean and volatility.
//
// # Features
//
//   - Likelihood engine with a deterministic, stateless forward recursion
//   - Constant-mean and ARMA(1,1)-mean GARCH(1,1) model families
//   - Nelder-Mead maximum likelihood fitting with optional multi-start search
//   - Residual diagnostics (Ljung-Box, Jarque-Bera) and information criteria
//   - Price series loading from CSV and returns transforms
//
// # Quick Start
//
//	prices, _ := timeseries.LoadCSVColumn("prices.csv", "close")
//	r, _ := prices.LogReturns()
//	est, err := garch.Fit(garch.ConstantGARCH11, r.Scale(100).Values, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fc := est.Forecast()
//
// # Packages
//
//   - garch: model families, likelihood, fitting, estimates and forecasts
//   - stats: residual diagnostics
//   - timeseries: time series container and CSV loading
//
// # References
//
//   - Bollerslev, T. (1986). Generalized autoregressive conditional heteroskedasticity
//   - Tsay, R. S. (2010). Analysis of Financial Time Series
package gogarch

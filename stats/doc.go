// Package stats provides residual diagnostics for fitted volatility models.
//
// The functions operate on plain float64 slices, typically the standardized
// residuals e[t]/s[t] of a fitted GARCH model or their squares.
//
// # Autocorrelation
//
// Sample autocorrelations up to a maximum lag:
//
//	acf := stats.ACF(z, 20)
//
// # Portmanteau Tests
//
// Ljung-Box tests for remaining serial correlation. Applied to squared
// standardized residuals it checks for volatility clustering the model has
// not absorbed:
//
//	lb := stats.LjungBox(z, 10, 0)
//	if lb != nil && lb.PValue < 0.05 {
//	    // residual autocorrelation
//	}
//
// # Normality
//
// Jarque-Bera compares sample skewness and excess kurtosis with the normal
// distribution:
//
//	jb := stats.JarqueBera(z)
//
// # Information Criteria
//
//	ic := stats.CalculateIC(logLik, nObs, nParams)
//	fmt.Printf("AIC: %.2f, BIC: %.2f\n", ic.AIC, ic.BIC)
package stats

// Package timeseries provides the observation container and loaders used by
// the GARCH fitters.
//
// # Creating a Series
//
//	prices := timeseries.New([]float64{100, 101.5, 100.8, 102.2})
//
// # Loading from CSV
//
//	series, err := timeseries.LoadCSVColumn("prices.csv", "close")
//
//	// Long-format files holding several instruments
//	series, err := timeseries.LoadCSVFiltered("prices.csv", "symbol", "SPX", "close")
//
// # Returns
//
// Volatility models are fitted to returns rather than price levels:
//
//	r, err := prices.LogReturns()   // log(p[t] / p[t-1])
//	r, err := prices.PctChange()    // p[t]/p[t-1] - 1
//	pct := r.Scale(100)             // returns in percent
//
// Derived series keep the timestamps of the later observation.
package timeseries

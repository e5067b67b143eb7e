package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// LjungBoxResult represents the result of a Ljung-Box test.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int // Degrees of freedom
}

// LjungBox performs the Ljung-Box test for autocorrelation up to lag h.
// A p-value below 0.05 rejects the null of no autocorrelation.
// fitdf is subtracted from lags to get the degrees of freedom (at least 1).
func LjungBox(values []float64, lags, fitdf int) *LjungBoxResult {
	n := len(values)
	if n < 10 || lags < 1 {
		return nil
	}
	if lags >= n {
		lags = n - 1
	}

	acf := ACF(values, lags)
	if acf == nil {
		return nil
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += acf[k] * acf[k] / float64(n-k)
	}
	q *= float64(n * (n + 2))

	dof := max(lags-fitdf, 1)

	return &LjungBoxResult{
		Statistic: q,
		PValue:    chiSquaredSurvival(q, dof),
		Lags:      lags,
		DOF:       dof,
	}
}

// JarqueBeraResult represents the result of a Jarque-Bera normality test.
type JarqueBeraResult struct {
	Statistic float64
	PValue    float64
	Skewness  float64
	Kurtosis  float64 // excess kurtosis
}

// JarqueBera tests whether values have the skewness and kurtosis of a
// normal distribution. The statistic is chi-squared with 2 degrees of freedom.
// Skewness and kurtosis are the moment estimators m3/m2^1.5 and m4/m2^2 - 3
// with 1/n central moments, not gonum's bias-corrected Skew and ExKurtosis.
func JarqueBera(values []float64) *JarqueBeraResult {
	n := len(values)
	if n < 3 {
		return nil
	}
	m2 := stat.Moment(2, values, nil)
	if m2 == 0 {
		return nil
	}

	skew := stat.Moment(3, values, nil) / math.Pow(m2, 1.5)
	kurt := stat.Moment(4, values, nil)/(m2*m2) - 3
	jb := float64(n) / 6 * (skew*skew + kurt*kurt/4)

	return &JarqueBeraResult{
		Statistic: jb,
		PValue:    chiSquaredSurvival(jb, 2),
		Skewness:  skew,
		Kurtosis:  kurt,
	}
}

func chiSquaredSurvival(x float64, dof int) float64 {
	return distuv.ChiSquared{K: float64(dof)}.Survival(x)
}

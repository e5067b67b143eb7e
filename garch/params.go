package garch

import "fmt"

// MeanKind identifies a conditional-mean strategy.
type MeanKind int

const (
	ConstantMean MeanKind = iota // mean = mu
	ARMA11Mean                   // mean = mu + ar*x[t-1] + ma*e[t-1]
)

func (k MeanKind) String() string {
	switch k {
	case ConstantMean:
		return "Constant"
	case ARMA11Mean:
		return "ARMA(1,1)"
	}
	return fmt.Sprintf("MeanKind(%d)", int(k))
}

// InnovationsKind identifies a conditional-variance strategy.
type InnovationsKind int

const (
	GARCH11 InnovationsKind = iota // v = omega + alpha*e[t-1]^2 + beta*v[t-1]
)

func (k InnovationsKind) String() string {
	switch k {
	case GARCH11:
		return "GARCH(1,1)"
	}
	return fmt.Sprintf("InnovationsKind(%d)", int(k))
}

// MeanParams holds the coefficients of the conditional mean.
// AR and MA are always zero for a constant-mean family.
type MeanParams struct {
	Mu float64
	AR float64
	MA float64
}

// InnovationsParams holds the GARCH(1,1) variance coefficients.
type InnovationsParams struct {
	Omega float64
	Alpha float64
	Beta  float64
}

// Persistence returns alpha + beta.
func (p InnovationsParams) Persistence() float64 {
	return p.Alpha + p.Beta
}

// UnconditionalVariance returns omega / (1 - alpha - beta), or +Inf when
// the process is not covariance stationary.
func (p InnovationsParams) UnconditionalVariance() float64 {
	d := 1 - p.Persistence()
	if d <= 0 {
		return posInf
	}
	return p.Omega / d
}

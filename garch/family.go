package garch

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Family is a (mean strategy, innovations strategy) pair.
type Family struct {
	Mean        MeanKind
	Innovations InnovationsKind
}

var (
	// ConstantGARCH11 takes [mu, omega, alpha, beta].
	ConstantGARCH11 = Family{Mean: ConstantMean, Innovations: GARCH11}
	// ARMA11GARCH11 takes [mu, ar, ma, omega, alpha, beta].
	ARMA11GARCH11 = Family{Mean: ARMA11Mean, Innovations: GARCH11}
)

func (f Family) String() string {
	return f.Mean.String() + "-" + f.Innovations.String()
}

// Arity returns the fixed parameter vector length of the family.
func (f Family) Arity() (int, error) {
	spec, err := lookup(f)
	if err != nil {
		return 0, err
	}
	return spec.arity, nil
}

// Families lists every registered family.
func Families() []Family {
	return []Family{ConstantGARCH11, ARMA11GARCH11}
}

// ParseFamily maps a short mean-model name to its GARCH(1,1) family.
func ParseFamily(name string) (Family, error) {
	switch name {
	case "constant", "const":
		return ConstantGARCH11, nil
	case "arma", "arma11":
		return ARMA11GARCH11, nil
	}
	return Family{}, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
}

// familySpec bundles everything the engine needs to run one family.
type familySpec struct {
	arity      int
	names      []string
	unpack     func(v []float64) (MeanParams, InnovationsParams)
	pack       func(mp MeanParams, ip InnovationsParams) []float64
	initialize func(mp MeanParams, ip InnovationsParams, obs []float64) (MeanState, VarianceState)
	mean       func(mp MeanParams, ms MeanState) float64
	variance   func(ip InnovationsParams, vs VarianceState) float64
}

var registry = map[Family]familySpec{
	ConstantGARCH11: {
		arity: 4,
		names: []string{"mu", "omega", "alpha", "beta"},
		unpack: func(v []float64) (MeanParams, InnovationsParams) {
			return MeanParams{Mu: v[0]}, InnovationsParams{Omega: v[1], Alpha: v[2], Beta: v[3]}
		},
		pack: func(mp MeanParams, ip InnovationsParams) []float64 {
			return []float64{mp.Mu, ip.Omega, ip.Alpha, ip.Beta}
		},
		initialize: func(mp MeanParams, ip InnovationsParams, obs []float64) (MeanState, VarianceState) {
			return MeanState{kind: ConstantMean, Mu: mp.Mu}, seedGARCH11(mp, obs)
		},
		mean:     constantMean,
		variance: garch11Variance,
	},
	ARMA11GARCH11: {
		arity: 6,
		names: []string{"mu", "ar", "ma", "omega", "alpha", "beta"},
		unpack: func(v []float64) (MeanParams, InnovationsParams) {
			return MeanParams{Mu: v[0], AR: v[1], MA: v[2]}, InnovationsParams{Omega: v[3], Alpha: v[4], Beta: v[5]}
		},
		pack: func(mp MeanParams, ip InnovationsParams) []float64 {
			return []float64{mp.Mu, mp.AR, mp.MA, ip.Omega, ip.Alpha, ip.Beta}
		},
		initialize: func(mp MeanParams, ip InnovationsParams, obs []float64) (MeanState, VarianceState) {
			return seedARMA11(mp, obs), seedGARCH11(mp, obs)
		},
		mean:     arma11Mean,
		variance: garch11Variance,
	},
}

func lookup(f Family) (familySpec, error) {
	spec, ok := registry[f]
	if !ok {
		return familySpec{}, fmt.Errorf("%w: %s", ErrUnknownFamily, f)
	}
	return spec, nil
}

func constantMean(mp MeanParams, _ MeanState) float64 {
	return mp.Mu
}

func arma11Mean(mp MeanParams, ms MeanState) float64 {
	return mp.Mu + mp.AR*ms.LastObs + mp.MA*ms.LastResid
}

func garch11Variance(ip InnovationsParams, vs VarianceState) float64 {
	return ip.Omega + ip.Alpha*vs.LastResidSq + ip.Beta*vs.LastVar
}

// seedResiduals returns x[t] - mu for the whole series.
func seedResiduals(mp MeanParams, obs []float64) []float64 {
	resid := make([]float64, len(obs))
	for i, x := range obs {
		resid[i] = x - mp.Mu
	}
	return resid
}

// seedGARCH11 starts both the prior squared residual and the prior variance
// at the sample mean of squared residuals.
func seedGARCH11(mp MeanParams, obs []float64) VarianceState {
	sq := seedResiduals(mp, obs)
	for i, e := range sq {
		sq[i] = e * e
	}
	m2 := stat.Mean(sq, nil)
	return VarianceState{kind: GARCH11, LastResidSq: m2, LastVar: m2}
}

// seedARMA11 starts the prior observation at the sample mean and the prior
// residual at the sample mean of residuals.
func seedARMA11(mp MeanParams, obs []float64) MeanState {
	return MeanState{
		kind:      ARMA11Mean,
		Mu:        mp.Mu,
		LastObs:   stat.Mean(obs, nil),
		LastResid: stat.Mean(seedResiduals(mp, obs), nil),
	}
}

// Unpack splits a parameter vector into typed mean and innovations records.
func Unpack(f Family, params []float64) (MeanParams, InnovationsParams, error) {
	spec, err := lookup(f)
	if err != nil {
		return MeanParams{}, InnovationsParams{}, err
	}
	if len(params) != spec.arity {
		return MeanParams{}, InnovationsParams{}, &LengthError{Family: f, Want: spec.arity, Got: len(params)}
	}
	mp, ip := spec.unpack(params)
	return mp, ip, nil
}

// Pack is the inverse of Unpack.
func Pack(f Family, mp MeanParams, ip InnovationsParams) ([]float64, error) {
	spec, err := lookup(f)
	if err != nil {
		return nil, err
	}
	return spec.pack(mp, ip), nil
}

// ParamNames returns the names of the vector slots in layout order.
func ParamNames(f Family) ([]string, error) {
	spec, err := lookup(f)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), spec.names...), nil
}

// Initialize builds the recursion state for t = 0 from sample moments of
// the full series, since there is no pre-sample data.
func Initialize(f Family, mp MeanParams, ip InnovationsParams, obs []float64) (MeanState, VarianceState, error) {
	spec, err := lookup(f)
	if err != nil {
		return MeanState{}, VarianceState{}, err
	}
	if len(obs) == 0 {
		return MeanState{}, VarianceState{}, ErrNoObservations
	}
	ms, vs := spec.initialize(mp, ip, obs)
	return ms, vs, nil
}

// ConditionalMean evaluates the family's mean at the given state.
func ConditionalMean(f Family, mp MeanParams, ms MeanState) (float64, error) {
	spec, err := lookup(f)
	if err != nil {
		return 0, err
	}
	return spec.mean(mp, ms), nil
}

// ConditionalVariance evaluates the family's variance at the given state.
func ConditionalVariance(f Family, ip InnovationsParams, vs VarianceState) (float64, error) {
	spec, err := lookup(f)
	if err != nil {
		return 0, err
	}
	return spec.variance(ip, vs), nil
}

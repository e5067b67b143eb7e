package garch

// MeanState is the history the conditional mean needs for the next step.
// Values are immutable; Advance returns a new state.
type MeanState struct {
	kind      MeanKind
	Mu        float64
	LastObs   float64 // unused by ConstantMean
	LastResid float64 // unused by ConstantMean
}

// Advance folds in the observation and residual just consumed.
func (s MeanState) Advance(obs, resid float64) MeanState {
	if s.kind == ConstantMean {
		return s
	}
	return MeanState{kind: s.kind, Mu: s.Mu, LastObs: obs, LastResid: resid}
}

// Kind reports the mean strategy that owns the state.
func (s MeanState) Kind() MeanKind { return s.kind }

// VarianceState is the history the conditional variance needs for the next step.
type VarianceState struct {
	kind        InnovationsKind
	LastResidSq float64
	LastVar     float64
}

// Advance stores the squared residual and the variance of the step just taken.
func (s VarianceState) Advance(resid, variance float64) VarianceState {
	return VarianceState{kind: s.kind, LastResidSq: resid * resid, LastVar: variance}
}

// Kind reports the innovations strategy that owns the state.
func (s VarianceState) Kind() InnovationsKind { return s.kind }

package garch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameterVectorLength is matched by every *LengthError.
	ErrInvalidParameterVectorLength = errors.New("invalid parameter vector length")
	ErrUnknownFamily                = errors.New("unknown model family")
	ErrNoObservations               = errors.New("observation series is empty")
	// ErrDegenerateVariance is returned by Fit when the objective is not
	// finite at the starting vector or at the optimizer's best point.
	ErrDegenerateVariance = errors.New("degenerate conditional variance")
	// ErrInfeasibleStart is returned by Fit when Config.Constrain is set and
	// the starting vector violates the stationarity or positivity constraints.
	ErrInfeasibleStart = errors.New("starting vector outside the feasible region")
)

// LengthError reports a parameter vector whose length does not match the
// arity of its model family.
type LengthError struct {
	Family Family
	Want   int
	Got    int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s: %s expects %d parameters, got %d",
		ErrInvalidParameterVectorLength, e.Family, e.Want, e.Got)
}

// Is makes errors.Is(err, ErrInvalidParameterVectorLength) succeed.
func (e *LengthError) Is(target error) bool {
	return target == ErrInvalidParameterVectorLength
}

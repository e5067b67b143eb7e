// Package timeseries provides the observation container used by the fitters.
package timeseries

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Series is an ordered sequence of observations, index 0 being the earliest.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a series from values with hourly synthetic timestamps.
func New(values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	base := time.Now()
	for i := range timestamps {
		timestamps[i] = base.Add(time.Duration(i) * time.Hour)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}
}

// NewWithTimestamps creates a series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean returns the arithmetic mean, or 0 for an empty series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance returns the unbiased sample variance, or 0 with fewer than two values.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// Std returns the sample standard deviation.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the smallest value, or NaN for an empty series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Min(s.Values)
}

// Max returns the largest value, or NaN for an empty series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	return floats.Max(s.Values)
}

// derive builds a series of values aligned with the last len(values)
// timestamps of s.
func (s *Series) derive(values []float64, suffix string) *Series {
	timestamps := make([]time.Time, len(values))
	if offset := len(s.Timestamps) - len(values); offset >= 0 {
		copy(timestamps, s.Timestamps[offset:])
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name + suffix,
	}
}

// Diff returns the first difference x[t] - x[t-1].
func (s *Series) Diff() *Series {
	if len(s.Values) < 2 {
		return &Series{Values: []float64{}}
	}
	out := make([]float64, len(s.Values)-1)
	for i := 1; i < len(s.Values); i++ {
		out[i-1] = s.Values[i] - s.Values[i-1]
	}
	return s.derive(out, "_diff")
}

// Log applies the natural logarithm; non-positive values become NaN.
func (s *Series) Log() *Series {
	out := make([]float64, len(s.Values))
	for i, v := range s.Values {
		if v > 0 {
			out[i] = math.Log(v)
		} else {
			out[i] = math.NaN()
		}
	}
	return s.derive(out, "_log")
}

// LogReturns returns log(x[t] / x[t-1]). Prices must be strictly positive.
func (s *Series) LogReturns() (*Series, error) {
	if len(s.Values) < 2 {
		return nil, errors.New("at least two prices are required for returns")
	}
	out := make([]float64, len(s.Values)-1)
	for i := 1; i < len(s.Values); i++ {
		prev, cur := s.Values[i-1], s.Values[i]
		if prev <= 0 || cur <= 0 {
			return nil, errors.New("log returns require strictly positive prices")
		}
		out[i-1] = math.Log(cur / prev)
	}
	return s.derive(out, "_logret"), nil
}

// PctChange returns the simple return x[t]/x[t-1] - 1.
func (s *Series) PctChange() (*Series, error) {
	if len(s.Values) < 2 {
		return nil, errors.New("at least two prices are required for returns")
	}
	out := make([]float64, len(s.Values)-1)
	for i := 1; i < len(s.Values); i++ {
		if s.Values[i-1] == 0 {
			return nil, errors.New("percent change undefined for a zero price")
		}
		out[i-1] = s.Values[i]/s.Values[i-1] - 1
	}
	return s.derive(out, "_pct"), nil
}

// Scale multiplies every value by k, e.g. 100 to express returns in percent.
func (s *Series) Scale(k float64) *Series {
	out := make([]float64, len(s.Values))
	copy(out, s.Values)
	floats.Scale(k, out)
	return s.derive(out, "")
}

// Demean subtracts the sample mean.
func (s *Series) Demean() *Series {
	out := make([]float64, len(s.Values))
	copy(out, s.Values)
	floats.AddConst(-s.Mean(), out)
	return s.derive(out, "_demeaned")
}

// Slice returns observations [start, end), clamped to the series bounds.
func (s *Series) Slice(start, end int) *Series {
	start = max(start, 0)
	end = min(end, len(s.Values))
	if start >= end {
		return &Series{Values: []float64{}}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	timestamps := make([]time.Time, len(values))
	if len(s.Timestamps) >= end {
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

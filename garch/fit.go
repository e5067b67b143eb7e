package garch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/gogarch/stats"
)

// Config holds configuration for maximum likelihood fitting.
type Config struct {
	MaxIterations  int       // Optimizer major iterations (default: 5000)
	MaxEvaluations int       // Objective evaluations (default: 20000)
	Tolerance      float64   // Absolute objective change treated as converged (default: 1e-9)
	Constrain      bool      // Reject non-stationary or negative variance coefficients (default: true)
	InitialParams  []float64 // Starting vector; derived from sample moments when nil
	Concurrency    int       // Parallel fits in FitMultiStart (default: 4)
	Logger         *log.Logger
}

// DefaultConfig returns the default fitting configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxIterations:  5000,
		MaxEvaluations: 20000,
		Tolerance:      1e-9,
		Constrain:      true,
		Concurrency:    4,
	}
}

func (c *Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return c.Logger
}

// feasible reports whether params satisfy omega > 0, alpha, beta >= 0,
// alpha + beta < 1 and, for ARMA means, |ar| < 1 and |ma| < 1.
func feasible(mp MeanParams, ip InnovationsParams) bool {
	if ip.Omega <= 0 || ip.Alpha < 0 || ip.Beta < 0 || ip.Alpha+ip.Beta >= 1 {
		return false
	}
	return math.Abs(mp.AR) < 1 && math.Abs(mp.MA) < 1
}

// StartingParams derives a starting vector from sample moments: the mean,
// the lag-1 autocorrelation as the AR(1) Yule-Walker estimate, and omega
// chosen so the unconditional variance matches the sample variance.
func StartingParams(f Family, obs []float64) ([]float64, error) {
	if len(obs) == 0 {
		return nil, ErrNoObservations
	}

	mp := MeanParams{Mu: stat.Mean(obs, nil)}
	if f.Mean == ARMA11Mean {
		if acf := stats.ACF(obs, 1); len(acf) > 1 {
			mp.AR = math.Max(-0.9, math.Min(0.9, acf[1]))
		}
	}

	variance := 0.0
	if len(obs) > 1 {
		variance = stat.Variance(obs, nil)
	}
	if variance <= 0 {
		variance = 1e-6
	}
	ip := InnovationsParams{Alpha: 0.05, Beta: 0.9}
	ip.Omega = variance * (1 - ip.Persistence())

	return Pack(f, mp, ip)
}

// Fit estimates the family's parameters on obs by minimizing the negative
// log-likelihood with the Nelder-Mead simplex method.
func Fit(f Family, obs []float64, config *Config) (*Estimate, error) {
	if config == nil {
		config = DefaultConfig()
	}
	logger := config.logger()

	objective, err := Objective(f, obs)
	if err != nil {
		return nil, err
	}
	spec := registry[f]

	start := config.InitialParams
	if start == nil {
		if start, err = StartingParams(f, obs); err != nil {
			return nil, err
		}
	}
	if len(start) != spec.arity {
		return nil, &LengthError{Family: f, Want: spec.arity, Got: len(start)}
	}

	fn := objective
	if config.Constrain {
		if !feasible(spec.unpack(start)) {
			return nil, fmt.Errorf("fit %s: %w: %v", f, ErrInfeasibleStart, start)
		}
		fn = func(x []float64) float64 {
			if !feasible(spec.unpack(x)) {
				return posInf
			}
			return objective(x)
		}
	}

	if v := fn(start); math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, fmt.Errorf("fit %s: %w at start %v", f, ErrDegenerateVariance, start)
	}

	problem := optimize.Problem{Func: fn}
	settings := &optimize.Settings{
		MajorIterations: config.MaxIterations,
		FuncEvaluations: config.MaxEvaluations,
		Converger: &optimize.FunctionConverge{
			Absolute:   config.Tolerance,
			Iterations: 100,
		},
	}

	logger.Printf("fitting %s on %d observations from %v", f, len(obs), start)
	result, err := optimize.Minimize(problem, append([]float64(nil), start...), settings, &optimize.NelderMead{})
	if result == nil {
		return nil, fmt.Errorf("fit %s: %w", f, err)
	}
	if err != nil {
		logger.Printf("optimizer stopped early: %v", err)
	}
	if math.IsInf(result.F, 0) || math.IsNaN(result.F) {
		return nil, fmt.Errorf("fit %s: %w", f, ErrDegenerateVariance)
	}

	est, err := NewEstimate(f, result.X, obs)
	if err != nil {
		return nil, err
	}
	est.iterations = result.Stats.MajorIterations
	est.evaluations = result.Stats.FuncEvaluations
	est.status = result.Status.String()

	logger.Printf("%s: loglik=%.4f status=%s iterations=%d evaluations=%d",
		f, est.logLik, est.status, est.iterations, est.evaluations)
	return est, nil
}

// FitMultiStart fits from each starting vector concurrently and returns the
// estimate with the highest log-likelihood. Infeasible starts and starts that
// end in a degenerate region are logged and skipped; any other failure aborts
// the search. When every start is skipped the error wraps
// ErrDegenerateVariance. A nil or empty starts list fits once from
// StartingParams.
func FitMultiStart(ctx context.Context, f Family, obs []float64, starts [][]float64, config *Config) (*Estimate, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if len(starts) == 0 {
		return Fit(f, obs, config)
	}

	estimates := make([]*Estimate, len(starts))
	g, ctx := errgroup.WithContext(ctx)
	if config.Concurrency > 0 {
		g.SetLimit(config.Concurrency)
	}

	for i, start := range starts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg := *config
			cfg.InitialParams = start
			est, err := Fit(f, obs, &cfg)
			if errors.Is(err, ErrDegenerateVariance) || errors.Is(err, ErrInfeasibleStart) {
				config.logger().Printf("skipping start %d: %v", i, err)
				return nil
			}
			if err != nil {
				return fmt.Errorf("start %d: %w", i, err)
			}
			estimates[i] = est
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var best *Estimate
	for _, est := range estimates {
		if est != nil && (best == nil || est.logLik > best.logLik) {
			best = est
		}
	}
	if best == nil {
		return nil, fmt.Errorf("fit %s: every start failed: %w", f, ErrDegenerateVariance)
	}
	return best, nil
}

// Command garchfit fits a GARCH(1,1) model to a price or return series read
// from CSV and prints the estimate, residual diagnostics and a one-step forecast.
//
//	garchfit -file prices.csv -column close -family arma -returns log -scale 100
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/sartorproj/gogarch/garch"
	"github.com/sartorproj/gogarch/stats"
	"github.com/sartorproj/gogarch/timeseries"
)

// Config holds command-line configuration.
type Config struct {
	File      string
	Column    string
	IDColumn  string
	ID        string
	Family    string
	Returns   string // "log", "pct" or "none"
	Scale     float64
	Lags      int
	Starts    int
	JSON      bool
	Verbose   bool
	MaxEvals  int
	Tolerance float64
}

// Report is the JSON form of a fit.
type Report struct {
	Series      string                  `json:"series"`
	Family      string                  `json:"family"`
	NObs        int                     `json:"n_obs"`
	ParamNames  []string                `json:"param_names"`
	Params      map[string]float64      `json:"params"`
	LogLik      float64                 `json:"loglik"`
	AIC         float64                 `json:"aic"`
	BIC         float64                 `json:"bic"`
	Persistence float64                 `json:"persistence"`
	Status      string                  `json:"status,omitempty"`
	Forecast    ForecastReport          `json:"forecast"`
	LjungBox    *stats.LjungBoxResult   `json:"ljung_box,omitempty"`
	LjungBoxSq  *stats.LjungBoxResult   `json:"ljung_box_squared,omitempty"`
	JarqueBera  *stats.JarqueBeraResult `json:"jarque_bera,omitempty"`
	SquaredACF  []int                   `json:"squared_acf_lags,omitempty"`
}

// ForecastReport is the one-step-ahead forecast.
type ForecastReport struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

func main() {
	cfg := parseFlags()

	logger := log.New(os.Stderr, "[garchfit] ", log.LstdFlags)
	if !cfg.Verbose {
		logger.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "garchfit: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() *Config {
	cfg := &Config{}
	flag.StringVar(&cfg.File, "file", "", "CSV file with the series (required)")
	flag.StringVar(&cfg.Column, "column", "y", "value column")
	flag.StringVar(&cfg.IDColumn, "id-column", "", "column identifying the series in long-format files")
	flag.StringVar(&cfg.ID, "id", "", "series to keep when -id-column is set")
	flag.StringVar(&cfg.Family, "family", "constant", "mean model: constant or arma")
	flag.StringVar(&cfg.Returns, "returns", "log", "transform prices to returns: log, pct or none")
	flag.Float64Var(&cfg.Scale, "scale", 100, "multiply returns by this factor")
	flag.IntVar(&cfg.Lags, "lags", 10, "Ljung-Box lags")
	flag.IntVar(&cfg.Starts, "starts", 1, "number of optimizer starting points")
	flag.BoolVar(&cfg.JSON, "json", false, "print the report as JSON")
	flag.BoolVar(&cfg.Verbose, "v", false, "log optimizer progress to stderr")
	flag.IntVar(&cfg.MaxEvals, "max-evals", 20000, "maximum likelihood evaluations per start")
	flag.Float64Var(&cfg.Tolerance, "tol", 1e-9, "convergence tolerance on the objective")
	flag.Parse()

	if cfg.File == "" {
		flag.Usage()
		os.Exit(2)
	}
	return cfg
}

func run(ctx context.Context, cfg *Config, logger *log.Logger, out io.Writer) error {
	family, err := garch.ParseFamily(cfg.Family)
	if err != nil {
		return err
	}

	series, err := load(cfg)
	if err != nil {
		return err
	}
	logger.Printf("loaded %d observations from %s", series.Len(), cfg.File)

	returns, err := transform(series, cfg.Returns)
	if err != nil {
		return err
	}
	if cfg.Scale != 0 && cfg.Scale != 1 {
		returns = returns.Scale(cfg.Scale)
	}

	fitCfg := garch.DefaultConfig()
	fitCfg.MaxEvaluations = cfg.MaxEvals
	fitCfg.Tolerance = cfg.Tolerance
	fitCfg.Logger = logger

	starts, err := startingPoints(family, returns.Values, cfg.Starts)
	if err != nil {
		return err
	}
	est, err := garch.FitMultiStart(ctx, family, returns.Values, starts, fitCfg)
	if err != nil {
		return err
	}

	report := newReport(cfg, est)
	if cfg.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(out, report)
	return nil
}

func load(cfg *Config) (*timeseries.Series, error) {
	if cfg.IDColumn != "" {
		return timeseries.LoadCSVFiltered(cfg.File, cfg.IDColumn, cfg.ID, cfg.Column)
	}
	return timeseries.LoadCSVColumn(cfg.File, cfg.Column)
}

func transform(s *timeseries.Series, kind string) (*timeseries.Series, error) {
	switch kind {
	case "log":
		return s.LogReturns()
	case "pct":
		return s.PctChange()
	case "none", "":
		return s, nil
	}
	return nil, fmt.Errorf("unknown returns transform %q", kind)
}

// startingPoints spreads n starts over a grid of persistence levels around
// the moment-based start. One start returns nil so FitMultiStart fits once.
func startingPoints(f garch.Family, obs []float64, n int) ([][]float64, error) {
	if n <= 1 {
		return nil, nil
	}
	base, err := garch.StartingParams(f, obs)
	if err != nil {
		return nil, err
	}
	mp, ip, err := garch.Unpack(f, base)
	if err != nil {
		return nil, err
	}
	uncond := ip.UnconditionalVariance()

	starts := make([][]float64, 0, n)
	for i := 0; i < n; i++ {
		alpha := 0.02 + 0.2*float64(i)/float64(n)
		beta := 0.97 - alpha - 0.4*float64(i)/float64(n)
		start := garch.InnovationsParams{Alpha: alpha, Beta: beta}
		start.Omega = uncond * (1 - start.Persistence())
		v, err := garch.Pack(f, mp, start)
		if err != nil {
			return nil, err
		}
		starts = append(starts, v)
	}
	return starts, nil
}

func newReport(cfg *Config, est *garch.Estimate) *Report {
	s := est.Summary(cfg.Lags)
	params := make(map[string]float64, len(s.Params))
	for i, name := range s.ParamNames {
		params[name] = s.Params[i]
	}
	name := cfg.Column
	if cfg.ID != "" {
		name = cfg.ID + "/" + cfg.Column
	}
	return &Report{
		Series:      name,
		Family:      s.Family.String(),
		NObs:        s.NObs,
		ParamNames:  s.ParamNames,
		Params:      params,
		LogLik:      s.LogLik,
		AIC:         s.AIC,
		BIC:         s.BIC,
		Persistence: s.Persistence,
		Status:      est.Status(),
		Forecast:    ForecastReport{Mean: s.Forecast.Mean, StdDev: s.Forecast.StdDev},
		LjungBox:    s.LjungBox,
		LjungBoxSq:  s.LjungBoxSquared,
		JarqueBera:  s.JarqueBera,
		SquaredACF:  s.SquaredACFLags,
	}
}

func printReport(w io.Writer, r *Report) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%s on %s (%d obs)\n", r.Family, r.Series, r.NObs)
	fmt.Fprintln(w, rule)

	for _, n := range r.ParamNames {
		fmt.Fprintf(w, "  %-8s %12.6f\n", n, r.Params[n])
	}
	fmt.Fprintf(w, "\n  LogLik: %.4f  AIC: %.4f  BIC: %.4f\n", r.LogLik, r.AIC, r.BIC)
	fmt.Fprintf(w, "  Persistence (alpha+beta): %.4f\n", r.Persistence)

	if r.LjungBox != nil {
		fmt.Fprintf(w, "  Ljung-Box(%d) z:   Q=%.3f p=%.4f\n", r.LjungBox.Lags, r.LjungBox.Statistic, r.LjungBox.PValue)
	}
	if r.LjungBoxSq != nil {
		fmt.Fprintf(w, "  Ljung-Box(%d) z^2: Q=%.3f p=%.4f\n", r.LjungBoxSq.Lags, r.LjungBoxSq.Statistic, r.LjungBoxSq.PValue)
	}
	if r.JarqueBera != nil {
		fmt.Fprintf(w, "  Jarque-Bera:       JB=%.3f p=%.4f\n", r.JarqueBera.Statistic, r.JarqueBera.PValue)
	}
	if len(r.SquaredACF) > 0 {
		fmt.Fprintf(w, "  Significant z^2 autocorrelation at lags %v\n", r.SquaredACF)
	}

	fmt.Fprintf(w, "\n  Next period: mean %.6f, sd %.6f\n", r.Forecast.Mean, r.Forecast.StdDev)
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/gogarch/garch"
)

// writePrices writes a long-format CSV with a GARCH-driven price path for
// symbol A and a flat one for symbol B.
func writePrices(t *testing.T, n int) string {
	t.Helper()
	rng := rand.New(rand.NewPCG(3, 4))

	var b strings.Builder
	b.WriteString("symbol,ds,close\n")
	price, v := 100.0, 1.0
	for i := 0; i < n; i++ {
		e := math.Sqrt(v) * rng.NormFloat64()
		v = 0.1 + 0.1*e*e + 0.8*v
		price *= math.Exp(e / 100)
		fmt.Fprintf(&b, "A,%d,%.6f\n", 2000+i, price)
		fmt.Fprintf(&b, "B,%d,50\n", 2000+i)
	}

	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func testConfig(file string) *Config {
	return &Config{
		File:      file,
		Column:    "close",
		IDColumn:  "symbol",
		ID:        "A",
		Family:    "constant",
		Returns:   "log",
		Scale:     100,
		Lags:      10,
		Starts:    1,
		MaxEvals:  20000,
		Tolerance: 1e-9,
	}
}

func TestRunJSON(t *testing.T) {
	cfg := testConfig(writePrices(t, 600))
	cfg.JSON = true

	var out bytes.Buffer
	logger := log.New(io.Discard, "", 0)
	require.NoError(t, run(context.Background(), cfg, logger, &out))

	var report Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))

	assert.Equal(t, "Constant-GARCH(1,1)", report.Family)
	assert.Equal(t, "A/close", report.Series)
	assert.Equal(t, 599, report.NObs, "one observation is lost to returns")
	assert.Equal(t, []string{"mu", "omega", "alpha", "beta"}, report.ParamNames)
	assert.Greater(t, report.Params["omega"], 0.0)
	assert.Greater(t, report.Forecast.StdDev, 0.0)
	assert.NotNil(t, report.LjungBoxSq)
}

func TestRunText(t *testing.T) {
	cfg := testConfig(writePrices(t, 300))
	cfg.Family = "arma"
	cfg.Starts = 3

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, log.New(io.Discard, "", 0), &out))

	text := out.String()
	assert.Contains(t, text, "ARMA(1,1)-GARCH(1,1) on A/close (299 obs)")
	assert.Contains(t, text, "Next period:")
	for _, name := range []string{"mu", "ar", "ma", "omega", "alpha", "beta"} {
		assert.Contains(t, text, "  "+name+" ")
	}
}

func TestRunErrors(t *testing.T) {
	file := writePrices(t, 50)
	logger := log.New(io.Discard, "", 0)

	cfg := testConfig(file)
	cfg.Family = "egarch"
	assert.ErrorIs(t, run(context.Background(), cfg, logger, io.Discard), garch.ErrUnknownFamily)

	cfg = testConfig(file)
	cfg.Returns = "diff"
	assert.Error(t, run(context.Background(), cfg, logger, io.Discard))

	cfg = testConfig(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, run(context.Background(), cfg, logger, io.Discard))
}

func TestStartingPoints(t *testing.T) {
	obs := make([]float64, 100)
	for i := range obs {
		obs[i] = math.Sin(float64(i))
	}

	none, err := startingPoints(garch.ConstantGARCH11, obs, 1)
	require.NoError(t, err)
	assert.Nil(t, none)

	starts, err := startingPoints(garch.ARMA11GARCH11, obs, 4)
	require.NoError(t, err)
	require.Len(t, starts, 4)
	for _, s := range starts {
		_, ip, err := garch.Unpack(garch.ARMA11GARCH11, s)
		require.NoError(t, err)
		assert.Greater(t, ip.Omega, 0.0)
		assert.Less(t, ip.Persistence(), 1.0)
		assert.GreaterOrEqual(t, ip.Beta, 0.0)
	}
}

func TestPrintReportSquaredACF(t *testing.T) {
	r := &Report{Family: "Constant-GARCH(1,1)", Series: "close", NObs: 500}

	var out bytes.Buffer
	printReport(&out, r)
	assert.NotContains(t, out.String(), "z^2 autocorrelation")

	r.SquaredACF = []int{1, 3}
	out.Reset()
	printReport(&out, r)
	assert.Contains(t, out.String(), "Significant z^2 autocorrelation at lags [1 3]")
}

func TestNewReportCarriesSquaredACF(t *testing.T) {
	obs := make([]float64, 400)
	rng := rand.New(rand.NewPCG(9, 10))
	v := 1.0
	for i := range obs {
		obs[i] = math.Sqrt(v) * rng.NormFloat64()
		v = 0.05 + 0.15*obs[i]*obs[i] + 0.8*v
	}
	est, err := garch.NewEstimate(garch.ConstantGARCH11, []float64{0, 1, 0, 0}, obs)
	require.NoError(t, err)

	cfg := testConfig("prices.csv")
	r := newReport(cfg, est)
	assert.Equal(t, est.Summary(cfg.Lags).SquaredACFLags, r.SquaredACF)
}

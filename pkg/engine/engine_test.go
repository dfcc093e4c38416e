package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wildfunctions/symdiff/pkg/expr"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Pool = "polynomial"
	cfg.Samples = 30
	cfg.MaxDepth = 3
	cfg.Seed = 42
	cfg.Workers = 4
	return cfg
}

func TestEngine_SmallRun(t *testing.T) {
	e, err := New(smallConfig(), nil)
	require.NoError(t, err)

	report := e.Run(context.Background())

	assert.Equal(t, 30, report.Checked)
	assert.Equal(t, report.Checked, report.Passed+report.Failed+report.Skipped)
	assert.Len(t, report.Failures, report.Failed)
	assert.Positive(t, report.Passed)
	assert.Greater(t, report.MeanDigits, 5.0)
	assert.False(t, report.Canceled)
	assert.Equal(t, e.RunID(), report.RunID)
	assert.Empty(t, report.Cases, "cases are only kept in verbose mode")

	for _, f := range report.Failures {
		t.Logf("case %d failed: %s (shrunk %s): %v", f.Index, f.Expr, f.Shrunk, f.Failures)
	}
}

func TestEngine_AllPools(t *testing.T) {
	for _, name := range []string{"polynomial", "elementary", "trig"} {
		t.Run(name, func(t *testing.T) {
			cfg := smallConfig()
			cfg.Pool = name
			cfg.Samples = 40
			cfg.Order = 2
			e, err := New(cfg, nil)
			require.NoError(t, err)

			report := e.Run(context.Background())
			assert.Equal(t, 40, report.Checked)
			assert.Equal(t, report.Checked, report.Passed+report.Failed+report.Skipped)
			t.Logf("%s: %d passed, %d failed, %d skipped, %.1f digits",
				name, report.Passed, report.Failed, report.Skipped, report.MeanDigits)
		})
	}
}

func TestEngine_Deterministic(t *testing.T) {
	cfg := smallConfig()
	cfg.Verbose = true

	run := func() []string {
		e, err := New(cfg, nil)
		require.NoError(t, err)
		report := e.Run(context.Background())
		exprs := make([]string, len(report.Cases))
		for i, c := range report.Cases {
			assert.Equal(t, i, c.Index)
			exprs[i] = c.Expr
		}
		return exprs
	}

	first := run()
	assert.Len(t, first, cfg.Samples)
	assert.Equal(t, first, run())
}

func TestEngine_Canceled(t *testing.T) {
	e, err := New(smallConfig(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report := e.Run(ctx)

	assert.True(t, report.Canceled)
	assert.Zero(t, report.Checked)
	assert.Zero(t, report.MeanDigits)
}

func TestEngine_Logs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e, err := New(smallConfig(), zap.New(core))
	require.NoError(t, err)

	e.Run(context.Background())

	started := logs.FilterMessage("starting run").All()
	require.Len(t, started, 1)
	assert.Equal(t, e.RunID(), started[0].ContextMap()["run_id"])
	assert.Equal(t, "polynomial", started[0].ContextMap()["pool"])

	finished := logs.FilterMessage("run finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, int64(30), finished[0].ContextMap()["checked"])
}

func TestEngine_SeedResolved(t *testing.T) {
	cfg := smallConfig()
	cfg.Seed = 0
	e, err := New(cfg, nil)
	require.NoError(t, err)
	assert.NotZero(t, e.Config().Seed)
}

func TestEngine_InvalidPool(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pool = "nonexistent"

	_, err := New(cfg, nil)
	if err == nil {
		t.Error("Expected error for invalid pool")
	}
}

func TestEngine_InvalidSamples(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Samples = 0

	_, err := New(cfg, nil)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	cfg = DefaultConfig()
	cfg.MaxDepth = 0
	_, err = New(cfg, nil)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("SYMDIFF_SAMPLES", "12")
	t.Setenv("SYMDIFF_POOL", "trig")
	t.Setenv("SYMDIFF_SHRINK", "false")
	t.Setenv("SYMDIFF_FD_STEP", "1e-4")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Samples)
	assert.Equal(t, "trig", cfg.Pool)
	assert.False(t, cfg.Shrink)
	assert.Equal(t, 1e-4, cfg.Step)
	assert.Equal(t, 1e-4, cfg.CheckSettings().Step)

	// unset variables keep their defaults
	assert.Equal(t, DefaultConfig().MaxDepth, cfg.MaxDepth)
	assert.Equal(t, "text", cfg.Format)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("SYMDIFF_SAMPLES", "many")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	at := 2.0
	r, err := Describe("x**3", DescribeOptions{Order: 1, At: &at})
	require.NoError(t, err)
	assert.Equal(t, "x", r.Var)
	assert.Equal(t, "x ** 3", r.Simplified)
	assert.Equal(t, "3 * x ** 2", r.Derivative)
	require.NotNil(t, r.Value)
	require.NotNil(t, r.DerivativeValue)
	assert.Equal(t, 8.0, *r.Value)
	assert.Equal(t, 12.0, *r.DerivativeValue)
	assert.Nil(t, r.Check)

	r, err = Describe("ln(y)", DescribeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "y", r.Var)
	assert.Equal(t, 1, r.Order)
	assert.Equal(t, "1 / y", r.Derivative)

	r, err = Describe("x ^ 4", DescribeOptions{Order: 2, Check: true, Settings: DefaultConfig().CheckSettings()})
	require.NoError(t, err)
	assert.Equal(t, "12 * x ** 2", r.Derivative)
	require.NotNil(t, r.Check)
	assert.Equal(t, "pass", r.Check.Outcome)
}

func TestDescribeUndefinedValue(t *testing.T) {
	at := -1.0
	r, err := Describe("ln(x)", DescribeOptions{At: &at})
	require.NoError(t, err)
	assert.Nil(t, r.Value)
	require.NotNil(t, r.DerivativeValue)
	assert.Equal(t, -1.0, *r.DerivativeValue)
}

func TestDescribeErrors(t *testing.T) {
	_, err := Describe("(x", DescribeOptions{})
	assert.True(t, errors.Is(err, expr.ErrSyntax))

	at := 1.0
	_, err = Describe("x * y", DescribeOptions{Var: "x", At: &at})
	assert.True(t, errors.Is(err, expr.ErrUnboundVariable))
}

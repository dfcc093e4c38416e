package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/wildfunctions/symdiff/pkg/check"
	"github.com/wildfunctions/symdiff/pkg/expr"
	"github.com/wildfunctions/symdiff/pkg/pool"
)

// ErrInvalidConfig is returned by New for unusable settings.
var ErrInvalidConfig = errors.New("engine: invalid config")

// Engine generates random expressions and verifies them in parallel.
type Engine struct {
	cfg      Config
	pool     pool.Pool
	settings check.Settings
	rng      *rand.Rand
	log      *zap.Logger
	runID    string
}

// New creates a new engine from the given config. A nil logger discards
// log output.
func New(cfg Config, log *zap.Logger) (*Engine, error) {
	p, err := pool.Get(cfg.Pool)
	if err != nil {
		return nil, err
	}
	if cfg.Samples <= 0 {
		return nil, fmt.Errorf("%w: samples must be positive, got %d", ErrInvalidConfig, cfg.Samples)
	}
	if cfg.MaxDepth < 1 {
		return nil, fmt.Errorf("%w: max depth must be at least 1, got %d", ErrInvalidConfig, cfg.MaxDepth)
	}
	if cfg.Order < 1 {
		cfg.Order = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Int63()
	}
	if log == nil {
		log = zap.NewNop()
	}

	runID := uuid.New().String()
	return &Engine{
		cfg:      cfg,
		pool:     p,
		settings: cfg.CheckSettings(),
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		log:      log.With(zap.String("run_id", runID)),
		runID:    runID,
	}, nil
}

// RunID identifies the run in logs and reports.
func (e *Engine) RunID() string { return e.runID }

// Config returns the effective config, with the seed resolved.
func (e *Engine) Config() Config { return e.cfg }

// Run generates the sample expressions, checks them and returns the final
// report. Cancelling ctx stops dispatching new checks; cases already
// running finish and are reported.
func (e *Engine) Run(ctx context.Context) FinalReport {
	start := time.Now()
	e.log.Info("starting run",
		zap.String("pool", e.cfg.Pool),
		zap.Int("samples", e.cfg.Samples),
		zap.Int("max_depth", e.cfg.MaxDepth),
		zap.Int("order", e.cfg.Order),
		zap.Int("workers", e.cfg.Workers),
		zap.Int64("seed", e.cfg.Seed),
	)

	cases := make([]check.Case, e.cfg.Samples)
	for i := range cases {
		cases[i] = check.Case{
			Expr:  e.pool.RandomTree(e.rng, e.cfg.MaxDepth),
			Var:   pool.Var,
			Order: e.cfg.Order,
		}
	}

	outcomes := e.checkAll(ctx, cases)

	report := FinalReport{
		RunID:   e.runID,
		Config:  e.cfg,
		Started: start.UTC().Format(time.RFC3339),
	}
	var digits []float64
	for i, o := range outcomes {
		if !o.done {
			continue
		}
		report.Checked++
		cr := newCaseReport(i, cases[i], o.result)
		if o.shrunk != nil {
			cr.Shrunk = o.shrunk.String()
		}

		switch o.result.Outcome {
		case check.Pass:
			report.Passed++
		case check.Skipped:
			report.Skipped++
		case check.Fail:
			report.Failed++
			report.Failures = append(report.Failures, cr)
			e.log.Warn("check failed",
				zap.Int("case", i),
				zap.String("expr", cr.Expr),
				zap.String("shrunk", cr.Shrunk),
				zap.Strings("failures", cr.Failures),
			)
		}
		if o.result.Compared > 0 {
			digits = append(digits, o.result.MeanDigits())
		}
		if e.cfg.Verbose {
			report.Cases = append(report.Cases, cr)
			e.log.Debug("checked",
				zap.Int("case", i),
				zap.String("expr", cr.Expr),
				zap.String("outcome", cr.Outcome),
				zap.Float64("digits", cr.MeanDigits),
			)
		}
	}

	if len(digits) > 0 {
		sort.Float64s(digits)
		report.MeanDigits = stat.Mean(digits, nil)
		report.P10Digits = stat.Quantile(0.1, stat.Empirical, digits, nil)
	}
	report.Canceled = ctx.Err() != nil
	report.ElapsedSeconds = time.Since(start).Seconds()

	e.log.Info("run finished",
		zap.Int("checked", report.Checked),
		zap.Int("passed", report.Passed),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
		zap.Float64("mean_digits", report.MeanDigits),
		zap.Bool("canceled", report.Canceled),
		zap.Duration("elapsed", time.Since(start)),
	)
	return report
}

type outcome struct {
	result check.Result
	shrunk expr.ExprNode
	done   bool
}

// checkAll checks all cases in parallel.
func (e *Engine) checkAll(ctx context.Context, cases []check.Case) []outcome {
	out := make([]outcome, len(cases))

	type job struct {
		idx int
		c   check.Case
	}

	jobs := make(chan job)
	var wg sync.WaitGroup

	for w := 0; w < e.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				r := check.Evaluate(j.c, e.settings)
				o := outcome{result: r, done: true}
				if r.Outcome == check.Fail && e.cfg.Shrink {
					o.shrunk = check.Shrink(j.c, e.settings).Expr
				}
				out[j.idx] = o
			}
		}()
	}

dispatch:
	for i, c := range cases {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- job{idx: i, c: c}:
		}
	}
	close(jobs)
	wg.Wait()

	return out
}

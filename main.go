package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wildfunctions/symdiff/pkg/engine"
	"github.com/wildfunctions/symdiff/pkg/logging"
	"github.com/wildfunctions/symdiff/pkg/pool"
)

func main() {
	cfg, err := engine.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var (
		input   string
		wrt     string
		at      string
		doCheck bool
	)
	flag.StringVar(&input, "expr", "", "expression to simplify and differentiate (batch check when empty)")
	flag.StringVar(&wrt, "wrt", "", "variable to differentiate by (default: first free variable)")
	flag.StringVar(&at, "at", "", "evaluate the expression and its derivative at this value")
	flag.BoolVar(&doCheck, "check", false, "run the numeric checks on -expr")
	flag.StringVar(&cfg.Pool, "pool", cfg.Pool, "expression pool ("+strings.Join(pool.Names(), ", ")+")")
	flag.IntVar(&cfg.Samples, "samples", cfg.Samples, "number of random expressions to check")
	flag.IntVar(&cfg.MaxDepth, "maxdepth", cfg.MaxDepth, "max tree depth")
	flag.IntVar(&cfg.Order, "order", cfg.Order, "derivative order")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel workers")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "output format (text, json, yaml, latex)")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "report every case, not only failures")
	flag.BoolVar(&cfg.Shrink, "shrink", cfg.Shrink, "shrink failing expressions before reporting")
	flag.Float64Var(&cfg.Step, "step", cfg.Step, "finite-difference step")
	flag.Float64Var(&cfg.Tolerance, "tol", cfg.Tolerance, "relative tolerance")
	flag.StringVar(&cfg.LogLevel, "loglevel", cfg.LogLevel, "log level (debug, info, warn, error)")
	flag.BoolVar(&cfg.LogDev, "logdev", cfg.LogDev, "human-readable development logs")
	flag.Parse()

	if input != "" {
		os.Exit(describe(cfg, input, wrt, at, doCheck))
	}

	logCfg := logging.DefaultConfig()
	if cfg.LogDev {
		logCfg = logging.DevelopmentConfig()
	}
	logCfg.Level = cfg.LogLevel
	log, err := logging.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	e, err := engine.New(cfg, log.Logger)
	if err != nil {
		log.Error("invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	// Ctrl+C stops dispatching and still reports what was checked
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report := e.Run(ctx)
	if err := engine.WriteFinal(os.Stdout, cfg.Format, report); err != nil {
		log.Error("writing report", zap.Error(err))
		os.Exit(1)
	}
	if report.Failed > 0 {
		log.Sync()
		os.Exit(1)
	}
}

// describe handles -expr and returns the exit status.
func describe(cfg engine.Config, input, wrt, at string, doCheck bool) int {
	opts := engine.DescribeOptions{
		Var:      wrt,
		Order:    cfg.Order,
		Check:    doCheck,
		Settings: cfg.CheckSettings(),
	}
	if at != "" {
		v, err := strconv.ParseFloat(at, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: invalid -at value %q: %v\n", at, err)
			return 1
		}
		opts.At = &v
	}

	r, err := engine.Describe(input, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if err := engine.WriteExpr(os.Stdout, cfg.Format, r); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if r.Check != nil && r.Check.Outcome == "fail" {
		return 1
	}
	return 0
}

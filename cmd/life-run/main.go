// Command life-run steps Game of Life grids without a window. It runs either
// the configured grid once or a sweep of random seeds in parallel, writing
// per-generation telemetry as CSV and printing a summary per run.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"conway/internal/app"
	"conway/internal/config"
	"conway/internal/telemetry"
)

const defaultGenerations = 1000

type runResult struct {
	seed    int64
	records []telemetry.Record
	summary telemetry.Summary
	reason  app.HaltReason
}

func main() {
	configPath := flag.String("config", "", "YAML config file (empty = embedded defaults)")
	generations := flag.Int("generations", 0, "generations per run (0 = run.max_generations, or 1000 if unlimited)")
	seeds := flag.Int("seeds", 0, "random seeds to sweep starting at -seed (0 = run the configured grid once)")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel runs")
	config.Default().Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Resolve(*configPath, flag.CommandLine)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	limit := *generations
	if limit <= 0 {
		limit = cfg.Run.MaxGenerations
	}
	if limit <= 0 {
		limit = defaultGenerations
	}

	if err := sweep(cfg, *seeds, limit, *workers, logger, os.Stdout); err != nil {
		logger.Error("sweep failed", "error", err)
		os.Exit(1)
	}
}

// sweep opens the telemetry output before any run starts, so a bad path
// fails fast.
func sweep(cfg *config.Config, seeds, limit, workers int, logger *slog.Logger, out io.Writer) error {
	rec, err := telemetry.Create(cfg.Telemetry.Output)
	if err != nil {
		return fmt.Errorf("opening telemetry output: %w", err)
	}
	defer rec.Close()

	jobs := buildJobs(cfg.Grid, seeds)
	logger.Info("starting runs", "runs", len(jobs), "workers", workers, "generations", limit, "size", cfg.Grid.Size)

	start := time.Now()
	results, err := runAll(jobs, cfg.Run, limit, workers)
	if err != nil {
		return err
	}
	for _, res := range results {
		if err := rec.Write(res.records...); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		logger.Info("run complete", "summary", res.summary, "halt", string(res.reason))
	}
	if err := rec.Close(); err != nil {
		return fmt.Errorf("closing telemetry output: %w", err)
	}

	printResults(out, results, time.Since(start))
	return nil
}

func buildJobs(grid config.GridConfig, seeds int) []config.GridConfig {
	if seeds <= 0 {
		return []config.GridConfig{grid}
	}
	if grid.Density <= 0 {
		grid.Density = 0.25
	}
	jobs := make([]config.GridConfig, seeds)
	for i := range jobs {
		job := grid
		job.Seed = grid.Seed + int64(i)
		jobs[i] = job
	}
	return jobs
}

func runAll(jobs []config.GridConfig, run config.RunConfig, limit, workers int) ([]runResult, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]runResult, len(jobs))
	var eg errgroup.Group
	eg.SetLimit(workers)
	for i, job := range jobs {
		eg.Go(func() error {
			res, err := runOne(job, run, limit)
			if err != nil {
				return fmt.Errorf("seed %d: %w", job.Seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(results, func(i, j int) bool { return results[i].seed < results[j].seed })
	return results, nil
}

func runOne(job config.GridConfig, run config.RunConfig, limit int) (runResult, error) {
	grid, err := job.Build()
	if err != nil {
		return runResult{}, err
	}
	ctrl := app.NewController(grid, app.Options{
		MaxGenerations: limit,
		HaltOnStable:   run.HaltOnStable,
		CycleWindow:    run.CycleWindow,
		Seed:           job.Seed,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	res := runResult{seed: job.Seed}
	snapshot := func() {
		d := ctrl.LastDelta()
		res.records = append(res.records, telemetry.Record{
			Seed:       job.Seed,
			Generation: ctrl.Generation(),
			Population: ctrl.Population(),
			Births:     d.Births,
			Deaths:     d.Deaths,
		})
	}

	ctrl.Start()
	snapshot()
	for ctrl.Tick() {
		snapshot()
	}
	res.summary = telemetry.Summarize(res.records)
	res.reason = ctrl.HaltReason()
	return res, nil
}

func printResults(w io.Writer, results []runResult, elapsed time.Duration) {
	fmt.Fprintf(w, "%d runs (elapsed %s)\n", len(results), elapsed.Round(time.Millisecond))
	for _, res := range results {
		s := res.summary
		reason := string(res.reason)
		if reason == "" {
			reason = "-"
		}
		fmt.Fprintf(w, "seed=%d gens=%d peak=%d final=%d mean=%.2f stddev=%.2f halt=%s\n",
			res.seed, s.Generations, s.PeakPopulation, s.FinalPopulation, s.MeanPopulation, s.StdDevPopulation, reason)
	}
}

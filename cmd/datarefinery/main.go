package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"datarefinery/internal/cleaner"
	"datarefinery/internal/config"
	"datarefinery/internal/metrics"
	"datarefinery/internal/metrics/prompush"
	"datarefinery/internal/pipeline"
	"datarefinery/internal/storage"
	"datarefinery/internal/table"

	// register all sink backends with the storage factory.
	// config selects which to use but support for all is built in.
	_ "datarefinery/internal/storage/all"
)

// main is the entry point for the cleaning binary. It loads the config,
// optionally initializes a metrics backend, and executes the run as a
// sequence of pipeline steps.
func main() {
	var (
		cfgPath           string
		inputPath         string
		outputPath        string
		workers           int
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "configs/date_formats.yaml", "cleaning config YAML path")
	flag.StringVar(&inputPath, "input", "", "input CSV file or folder (overrides paths.input_folder)")
	flag.StringVar(&outputPath, "output", "", "output file or folder (overrides paths.output_folder)")
	flag.IntVar(&workers, "workers", 0, "concurrent files (overrides runtime.workers)")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use (pushgateway, none; overrides config)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides config and env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			for _, iss := range cfgErr.Issues {
				fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
			}
			log.Printf("Configuration is invalid: %v", cfgPath)
			os.Exit(1)
		}
		fatalf("load config: %v", err)
	}

	// Load only returns on an error-free config; surface warnings here.
	for _, iss := range config.Validate(cfg) {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}

	if validate {
		log.Printf("Configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	if inputPath == "" {
		inputPath = cfg.Paths.InputFolder
	}
	if outputPath == "" {
		outputPath = cfg.Paths.OutputFolder
	}
	if inputPath == "" || outputPath == "" {
		fatalf("input and output paths are required (flags or paths.* config)")
	}
	if workers > 0 {
		cfg.Runtime.Workers = workers
	}

	// Decide metrics backend: flag, then env, then config.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	if backendName == "" {
		backendName = cfg.Metrics.Backend
	}
	switch backendName {
	case "pushgateway":
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = cfg.Metrics.PushgatewayURL
		}

		b, err := prompush.NewBackend(cfg.Metrics.Job, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			log.Printf("metrics: url=%v, backend=%v, job_name=%v", gwURL, backendName, cfg.Metrics.Job)
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "", "none":
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	ctx := context.Background()
	start := time.Now()

	batch, err := cleaner.NewBatch(cfg)
	if err != nil {
		fatalf("build cleaner: %v", err)
	}

	if *verbose {
		log.Printf("run: input=%s output=%s workers=%d sink=%s",
			inputPath, outputPath, cfg.Runtime.Workers, cfg.Sink.Kind)
	}

	var report *cleaner.Report
	steps := []pipeline.Step{
		{
			ID:       "date_clean",
			Label:    "normalize date fields across input files",
			Required: true,
			Run: func(ctx context.Context) error {
				rep, err := batch.Run(ctx, inputPath, outputPath)
				report = rep
				return err
			},
		},
	}
	if cfg.Sink.Kind != "" && cfg.Sink.Kind != "csv" {
		steps = append(steps, pipeline.Step{
			ID:       "sink_load",
			Label:    fmt.Sprintf("load cleaned tables into %s", cfg.Sink.Kind),
			Required: false,
			Run: func(ctx context.Context) error {
				return loadSink(ctx, cfg, report)
			},
		})
	}

	if err := pipeline.NewSequencer(cfg.Metrics.Job, steps).Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

	if report != nil {
		log.Printf("run %s: %d files processed, %d failed", report.RunID, len(report.Files), len(report.Failed))
	}
	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

// loadSink reads each published output back and loads it into the configured
// database sink.
func loadSink(ctx context.Context, cfg *config.Config, report *cleaner.Report) error {
	if report == nil || len(report.Files) == 0 {
		return nil
	}

	repo, err := storage.New(ctx, storage.Config{
		Kind:            cfg.Sink.Kind,
		DSN:             cfg.Sink.DB.DSN,
		Table:           cfg.Sink.DB.Table,
		AutoCreateTable: cfg.Sink.DB.AutoCreateTable,
	})
	if err != nil {
		return err
	}
	defer repo.Close()

	ensured := false
	var total int64
	for _, fr := range report.Files {
		t, skipped, err := table.ReadFile(fr.Output)
		if err != nil {
			return fmt.Errorf("read cleaned %s: %w", fr.Output, err)
		}
		if skipped > 0 {
			log.Printf("sink: %s: %d malformed rows skipped on read-back", fr.Output, skipped)
		}
		if cfg.Sink.DB.AutoCreateTable && !ensured {
			if err := storage.EnsureTable(ctx, repo, cfg.Sink.DB.Table, t.Columns); err != nil {
				return err
			}
			ensured = true
		}
		n, err := storage.LoadTable(ctx, repo, t, storage.DefaultBatchSize)
		total += n
		if err != nil {
			return fmt.Errorf("load %s: %w", fr.Output, err)
		}
	}
	log.Printf("sink: loaded %d rows into %s", total, cfg.Sink.DB.Table)
	return nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

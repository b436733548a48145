package cleaner

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"datarefinery/internal/config"
	"datarefinery/internal/metrics"
	"datarefinery/internal/table"
)

// Batch runs the per-table Executor over a collection of input files with a
// bounded worker pool. Files share no mutable state beyond the immutable
// Executor, so they are processed concurrently with no ordering guarantee
// between outputs.
type Batch struct {
	exec    *Executor
	enabled bool
	workers int
	job     string
}

// NewBatch builds a Batch from a validated configuration.
func NewBatch(cfg *config.Config) (*Batch, error) {
	exec, err := NewExecutor(cfg)
	if err != nil {
		return nil, err
	}
	workers := cfg.Runtime.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Batch{
		exec:    exec,
		enabled: cfg.DateCleaning.Enabled,
		workers: workers,
		job:     cfg.Metrics.Job,
	}, nil
}

// FileReport summarizes one processed file.
type FileReport struct {
	Input  string
	Output string

	Rows             int
	RowsSkipped      int
	RowsDropped      int
	ValuesCleaned    int
	ValuesUnparsable int

	// Checksum is the xxh3 hash of the published output bytes.
	Checksum uint64
}

// Report summarizes one batch run.
type Report struct {
	RunID  string
	Files  []FileReport
	Failed []string
}

// Run processes inputPath into outputPath. inputPath may be a single CSV
// file (outputPath is then the output file) or a folder of CSVs (outputPath
// is the output folder; outputs mirror input file names). A failure in one
// file is logged and recorded, and processing continues with the rest.
func (b *Batch) Run(ctx context.Context, inputPath, outputPath string) (*Report, error) {
	rep := &Report{RunID: uuid.NewString()}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("stat input %s: %w", inputPath, err)
	}

	if !info.IsDir() {
		fr, err := b.processFile(ctx, inputPath, outputPath)
		if err != nil {
			return nil, err
		}
		rep.Files = append(rep.Files, fr)
		return rep, nil
	}

	files, err := filepath.Glob(filepath.Join(inputPath, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", inputPath, err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		log.Printf("no csv files in %s", inputPath)
		return rep, nil
	}
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return nil, fmt.Errorf("create output folder %s: %w", outputPath, err)
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for _, in := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out := filepath.Join(outputPath, filepath.Base(in))
			fr, err := b.processFile(ctx, in, out)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("file %s failed: %v", in, err)
				metrics.RecordFile(b.job, "failed", 1)
				rep.Failed = append(rep.Failed, in)
				return nil
			}
			rep.Files = append(rep.Files, fr)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rep, err
	}
	log.Printf("batch %s: processed %d files, %d failed", rep.RunID, len(rep.Files), len(rep.Failed))
	return rep, nil
}

// processFile reads one CSV, cleans it, and atomically publishes the result:
// the output is written to a temporary file in the destination directory and
// renamed into place only on success, so a cancelled or failed run never
// leaves a partially written output.
func (b *Batch) processFile(ctx context.Context, inputPath, outputPath string) (FileReport, error) {
	fr := FileReport{Input: inputPath, Output: outputPath}

	t, skipped, err := table.ReadFile(inputPath)
	if err != nil {
		return fr, err
	}
	fr.RowsSkipped = skipped

	if b.enabled {
		res, err := b.exec.CleanTable(t)
		if err != nil {
			return fr, err
		}
		fr.RowsDropped = res.RowsDropped
		fr.ValuesCleaned = res.ValuesCleaned
		fr.ValuesUnparsable = res.ValuesUnparsable
		if b.exec.logDetails {
			log.Printf("file %s: cleaned columns %s, dropped %d rows -> %s",
				filepath.Base(inputPath), strings.Join(res.CleanedColumns, ", "), res.RowsDropped, outputPath)
		}
		metrics.RecordValues(b.job, "cleaned", int64(res.ValuesCleaned))
		metrics.RecordValues(b.job, "unparsable", int64(res.ValuesUnparsable))
		metrics.RecordValues(b.job, "rows_dropped", int64(res.RowsDropped))
	}
	fr.Rows = len(t.Rows)

	if err := ctx.Err(); err != nil {
		return fr, err
	}
	sum, err := writeFileAtomic(outputPath, t)
	if err != nil {
		return fr, err
	}
	fr.Checksum = sum
	metrics.RecordFile(b.job, "processed", 1)
	return fr, nil
}

// writeFileAtomic serializes t next to path and renames it into place,
// returning the xxh3 checksum of the written bytes.
func writeFileAtomic(path string, t *table.Table) (uint64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("create temp output: %w", err)
	}
	defer os.Remove(tmp.Name())

	h := xxh3.New()
	if err := table.Write(io.MultiWriter(tmp, h), t); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close temp output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("publish %s: %w", path, err)
	}
	return h.Sum64(), nil
}

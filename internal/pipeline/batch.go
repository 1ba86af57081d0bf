package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dgallion1/docoutline/internal/parser"
)

// BatchFailure names a document the batch could not outline.
type BatchFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// BatchReport summarizes a RunBatch call.
type BatchReport struct {
	Processed int            `json:"processed"`
	Failed    int            `json:"failed"`
	Skipped   int            `json:"skipped"`
	Failures  []BatchFailure `json:"failures"`
}

// BatchRunner outlines every supported file in a directory.
type BatchRunner struct {
	proc    *Processor
	log     *slog.Logger
	workers int
}

func NewBatchRunner(proc *Processor, log *slog.Logger, workers int) *BatchRunner {
	if workers <= 0 {
		workers = 4
	}
	return &BatchRunner{proc: proc, log: log, workers: workers}
}

// Run scans inputDir (not recursively) and writes <name>.json to outputDir for
// each supported document. A failing document is logged and counted; it
// never stops the batch. Only directory level I/O errors are returned.
func (b *BatchRunner) Run(ctx context.Context, inputDir, outputDir string) (BatchReport, error) {
	var report BatchReport

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return report, fmt.Errorf("read input dir: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return report, fmt.Errorf("create output dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !parser.IsSupportedExtension(e.Name()) {
			report.Skipped++
			continue
		}
		files = append(files, e.Name())
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, b.workers)

	for _, name := range files {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(name string) {
			defer func() { <-sem; wg.Done() }()
			err := b.processFile(inputDir, outputDir, name)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				b.log.Error("document failed", "file", name, "error", err)
				report.Failed++
				report.Failures = append(report.Failures, BatchFailure{File: name, Error: err.Error()})
				return
			}
			report.Processed++
		}(name)
	}
	wg.Wait()

	sort.Slice(report.Failures, func(i, j int) bool { return report.Failures[i].File < report.Failures[j].File })
	b.log.Info("batch complete",
		"processed", report.Processed,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)
	return report, ctx.Err()
}

func (b *BatchRunner) processFile(inputDir, outputDir, name string) error {
	data, err := os.ReadFile(filepath.Join(inputDir, name))
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	res, err := b.proc.Outline(name, data, nil)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := res.WriteJSON(&buf); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, OutputName(name)), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// OutputName replaces the extension of an input filename with .json.
func OutputName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".json"
}

package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/docoutline/internal/cache"
	"github.com/dgallion1/docoutline/internal/layout"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/stats"
)

// Processor turns raw document bytes into an outline. Job workers, the batch
// runner and the synchronous API share one instance. The cache and tracker
// are optional.
type Processor struct {
	opts  parser.Options
	cfg   outline.Config
	cache *cache.ResultCache
	stats *stats.Tracker
}

func NewProcessor(opts parser.Options, rc *cache.ResultCache, st *stats.Tracker) *Processor {
	return &Processor{
		opts:  opts,
		cfg:   outline.DefaultConfig(),
		cache: rc,
		stats: st,
	}
}

// Layout parses a document without running inference. A parser panic is
// returned as an error so one document never takes down a worker.
func (p *Processor) Layout(filename string, data []byte) (doc *layout.Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, fmt.Errorf("parse: %v", rec)
		}
	}()

	ps, err := parser.ForFile(filename, p.opts)
	if err != nil {
		return nil, err
	}
	doc, err = ps.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return doc, nil
}

// Outline parses and outlines a document. phase, when non-nil, is told when
// inference starts after a successful parse. Results are cached per content
// and extension since the same bytes may be read by different parsers.
func (p *Processor) Outline(filename string, data []byte, phase func(JobStatus)) (outline.Result, error) {
	format := formatOf(filename)
	key := ContentHashHex(data) + "." + format
	if p.cache != nil {
		if res, ok := p.cache.Get(key); ok {
			return res, nil
		}
	}

	start := time.Now()
	doc, err := p.Layout(filename, data)
	if err != nil {
		if p.stats != nil {
			p.stats.RecordFailure(format)
		}
		return outline.Result{}, err
	}
	parsed := time.Now()

	if phase != nil {
		phase(StatusInferring)
	}
	res := outline.InferWithConfig(doc, p.cfg)

	if p.stats != nil {
		p.stats.RecordDocument(format, parsed.Sub(start), time.Since(parsed), len(res.Outline))
	}
	if p.cache != nil {
		p.cache.Set(key, res)
	}
	return res, nil
}

// CacheLen reports the number of cached results.
func (p *Processor) CacheLen() int {
	if p.cache == nil {
		return 0
	}
	return p.cache.Len()
}

// Stats returns the current tracker snapshot.
func (p *Processor) Stats() stats.Snapshot {
	if p.stats == nil {
		return stats.Snapshot{}
	}
	return p.stats.Snapshot()
}

func formatOf(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// Worker processes a single document job.
type Worker struct {
	proc *Processor
	log  *slog.Logger
}

func NewWorker(proc *Processor, log *slog.Logger) *Worker {
	return &Worker{proc: proc, log: log}
}

// Process runs parsing and inference for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "file", job.Filename)

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "cancelled")
		return
	}

	job.SetStatus(StatusParsing, "parsing")
	res, err := w.proc.Outline(job.Filename, job.FileData(), func(s JobStatus) {
		job.SetStatus(s, "inferring")
	})
	if err != nil {
		log.Error("outline failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	job.Complete(res)
	log.Info("outline complete", "title", res.Title, "headings", len(res.Outline))
}

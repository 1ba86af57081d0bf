package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgallion1/docoutline/internal/cache"
	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportLayout = `{"pages": [
  {"width": 600, "height": 800, "blocks": [
    {"type": 0, "bbox": [150, 60, 450, 100], "lines": [{"spans": [{"text": "Annual Report", "size": 28, "flags": 0}]}]},
    {"type": 0, "bbox": [60, 500, 540, 540], "lines": [{"spans": [{"text": "Prepared for the board.", "size": 12, "flags": 0}]}]}
  ]},
  {"width": 600, "height": 800, "blocks": [
    {"type": 0, "bbox": [60, 80, 540, 100], "lines": [{"spans": [{"text": "1. Overview", "size": 14, "flags": 16}]}]},
    {"type": 0, "bbox": [60, 120, 540, 200], "lines": [{"spans": [{"text": "Revenue grew.", "size": 12, "flags": 0}]}]},
    {"type": 0, "bbox": [250, 760, 350, 780], "lines": [{"spans": [{"text": "Page 2 / 3", "size": 12, "flags": 0}]}]}
  ]},
  {"width": 600, "height": 800, "blocks": [
    {"type": 0, "bbox": [60, 120, 540, 200], "lines": [{"spans": [{"text": "Costs were flat.", "size": 12, "flags": 0}]}]}
  ]}
]}`

const notesMarkdown = "# Field Notes\n\nIntro.\n\n## 2.1 Owls\n\nOwls hunt at night.\n"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestProcessor() (*Processor, *cache.ResultCache, *stats.Tracker) {
	rc := cache.New(time.Minute)
	st := stats.NewTracker(time.Hour)
	return NewProcessor(parser.Options{}, rc, st), rc, st
}

func TestProcessor_OutlineCachesByContent(t *testing.T) {
	proc, rc, st := newTestProcessor()

	res, err := proc.Outline("report.json", []byte(reportLayout), nil)
	require.NoError(t, err)
	assert.Equal(t, "Annual Report", res.Title)
	assert.Equal(t, []outline.Entry{{Level: outline.H1, Text: "1. Overview", Page: 1}}, res.Outline)

	again, err := proc.Outline("copy.json", []byte(reportLayout), nil)
	require.NoError(t, err)
	assert.Equal(t, res, again)
	assert.Equal(t, 1, rc.Len())
	assert.Equal(t, 1, st.Snapshot().Documents)
}

func TestProcessor_OutlineErrors(t *testing.T) {
	proc, _, st := newTestProcessor()

	_, err := proc.Outline("broken.json", []byte("{"), nil)
	require.Error(t, err)

	_, err = proc.Outline("data.csv", []byte("a,b"), nil)
	require.ErrorIs(t, err, parser.ErrUnsupportedFormat)

	snap := st.Snapshot()
	assert.Equal(t, 2, snap.Failed)
	assert.Equal(t, 0, snap.Documents)
}

func TestProcessor_PhaseCallback(t *testing.T) {
	proc, _, _ := newTestProcessor()
	var phases []JobStatus
	_, err := proc.Outline("notes.md", []byte(notesMarkdown), func(s JobStatus) { phases = append(phases, s) })
	require.NoError(t, err)
	assert.Equal(t, []JobStatus{StatusInferring}, phases)
}

func TestWorker_Process(t *testing.T) {
	proc, _, _ := newTestProcessor()
	w := NewWorker(proc, discardLogger())

	ok := NewJob("notes.md", []byte(notesMarkdown))
	w.Process(context.Background(), ok)
	snap := ok.Snapshot()
	require.Equal(t, StatusCompleted, snap.Status)
	require.NotNil(t, snap.Result)
	assert.Equal(t, "Field Notes", snap.Result.Title)
	assert.Equal(t, []outline.Entry{{Level: outline.H2, Text: "2.1 Owls", Page: 1}}, snap.Result.Outline)

	bad := NewJob("broken.pdf", []byte("not a pdf"))
	w.Process(context.Background(), bad)
	snap = bad.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.NotEmpty(t, snap.Errors)
	assert.Nil(t, snap.Result)
}

func TestWorker_ProcessCancelled(t *testing.T) {
	proc, _, _ := newTestProcessor()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := NewJob("notes.md", []byte(notesMarkdown))
	NewWorker(proc, discardLogger()).Process(ctx, job)
	assert.Equal(t, StatusFailed, job.Snapshot().Status)
}

func TestOrchestrator_SubmitAndComplete(t *testing.T) {
	proc, _, _ := newTestProcessor()
	cfg := config.Config{WorkerCount: 2, MaxQueueSize: 4, JobTTL: time.Hour}
	orch := NewOrchestrator(cfg, proc, discardLogger())
	orch.Start(context.Background())
	defer orch.Stop()

	job := NewJob("report.json", []byte(reportLayout))
	require.NoError(t, orch.Submit(job))
	require.Same(t, job, orch.GetJob(job.ID))

	require.Eventually(t, func() bool {
		return job.Snapshot().Status == StatusCompleted
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "Annual Report", job.Snapshot().Result.Title)
}

func TestOrchestrator_QueueFull(t *testing.T) {
	proc, _, _ := newTestProcessor()
	// Not started, so nothing drains the queue.
	orch := NewOrchestrator(config.Config{WorkerCount: 1, MaxQueueSize: 1, JobTTL: time.Hour}, proc, discardLogger())

	require.NoError(t, orch.Submit(NewJob("a.md", []byte("# a"))))
	second := NewJob("b.md", []byte("# b"))
	require.Error(t, orch.Submit(second))
	assert.Equal(t, StatusFailed, second.Snapshot().Status)
	assert.Equal(t, 1, orch.QueueDepth())
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestBatchRunner_Run(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeFile(t, in, "report.json", reportLayout)
	writeFile(t, in, "notes.md", notesMarkdown)
	writeFile(t, in, "broken.json", "{")
	writeFile(t, in, "readme.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(in, "nested"), 0o755))

	proc := NewProcessor(parser.Options{}, nil, nil)
	runner := NewBatchRunner(proc, discardLogger(), 2)

	report, err := runner.Run(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "broken.json", report.Failures[0].File)

	got, err := os.ReadFile(filepath.Join(out, "report.json"))
	require.NoError(t, err)
	want := `{
  "title": "Annual Report",
  "outline": [
    {
      "level": "H1",
      "text": "1. Overview",
      "page": 1
    }
  ]
}
`
	assert.Equal(t, want, string(got))

	_, err = os.Stat(filepath.Join(out, "notes.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "readme.json"))
	assert.True(t, os.IsNotExist(err))

	// A second run over the same input is byte-identical.
	_, err = runner.Run(context.Background(), in, out)
	require.NoError(t, err)
	again, err := os.ReadFile(filepath.Join(out, "report.json"))
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestBatchRunner_DamagedPDFDoesNotStopBatch(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeFile(t, in, "bad.pdf", "%PDF-1.4\n1 0 obj\n<< >>\nendobj\nstartxref\n9999\n%%EOF\n")
	writeFile(t, in, "ok.json", reportLayout)
	writeFile(t, in, "notes.md", notesMarkdown)

	runner := NewBatchRunner(NewProcessor(parser.Options{}, nil, nil), discardLogger(), 2)
	report, err := runner.Run(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "bad.pdf", report.Failures[0].File)

	_, err = os.Stat(filepath.Join(out, "ok.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "bad.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestWorker_DamagedPDFFailsJob(t *testing.T) {
	proc, _, st := newTestProcessor()
	job := NewJob("bad.pdf", []byte("%PDF-1.4\nstartxref\n9999\n%%EOF\n"))
	NewWorker(proc, discardLogger()).Process(context.Background(), job)

	snap := job.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.NotEmpty(t, snap.Errors)
	assert.Equal(t, 1, st.Snapshot().Failed)
}

func TestBatchRunner_MissingInput(t *testing.T) {
	runner := NewBatchRunner(NewProcessor(parser.Options{}, nil, nil), discardLogger(), 0)
	_, err := runner.Run(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir())
	require.Error(t, err)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "report.json", OutputName("report.pdf"))
	assert.Equal(t, "notes.v2.json", OutputName("notes.v2.md"))
	assert.Equal(t, "layout.json", OutputName("layout.json"))
}

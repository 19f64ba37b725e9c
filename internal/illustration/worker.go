package illustration

import (
	"context"
	"errors"
	"log/slog"
)

// ErrQueueFull is returned by Enqueue when the job buffer is saturated.
var ErrQueueFull = errors.New("illustration queue full")

// Kind says which chart item a job draws.
type Kind string

const (
	KindTask  Kind = "task"
	KindChore Kind = "chore"
)

// Job is one queued illustration request for a chart item.
type Job struct {
	ChildKey string
	Kind     Kind
	ItemID   string
	Request  Request
}

// Result reports the outcome of a Job. Err is nil on success.
type Result struct {
	Job Job
	Ref string
	Err error
}

// Reporter receives job lifecycle events from a Worker.
type Reporter interface {
	IllustrationStarted(ctx context.Context, job Job)
	IllustrationFinished(ctx context.Context, res Result)
}

// Worker drains queued jobs through a Generator one at a time.
type Worker struct {
	gen    Generator
	jobs   chan Job
	report Reporter
	logger *slog.Logger
}

func NewWorker(gen Generator, queueSize int, report Reporter, logger *slog.Logger) *Worker {
	if queueSize <= 0 {
		queueSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		gen:    gen,
		jobs:   make(chan Job, queueSize),
		report: report,
		logger: logger,
	}
}

// Enqueue adds a job without blocking.
func (w *Worker) Enqueue(job Job) error {
	select {
	case w.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run processes jobs until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job := <-w.jobs:
			w.process(ctx, job)
		}
	}
}

func (w *Worker) process(ctx context.Context, job Job) {
	if w.report != nil {
		w.report.IllustrationStarted(ctx, job)
	}
	ref, err := w.gen.Generate(ctx, job.Request)
	if err != nil {
		w.logger.Warn("illustration failed", "child", job.ChildKey, "kind", job.Kind, "id", job.ItemID, "error", err)
	} else {
		w.logger.Debug("illustration ready", "child", job.ChildKey, "kind", job.Kind, "id", job.ItemID)
	}
	if w.report != nil {
		w.report.IllustrationFinished(ctx, Result{Job: job, Ref: ref, Err: err})
	}
}

package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"radbytes.org/pulse/common/llm"
	"radbytes.org/pulse/common/logger"
	"radbytes.org/pulse/common/metrics"
	"radbytes.org/pulse/internal/feedback"
	"radbytes.org/pulse/internal/model"
	"radbytes.org/pulse/internal/queue"
	"radbytes.org/pulse/internal/store"
)

type Config struct {
	MaxAttempts int
	Concurrency int           // Messages processed in parallel per batch
	RunTimeout  time.Duration // Bound on a single feedback run; zero means none
}

type Worker struct {
	consumer Consumer
	runs     RunTracker
	runner   FeedbackRunner
	cfg      Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, runs RunTracker, runner FeedbackRunner, cfg Config) *Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &Worker{
		consumer:  consumer,
		runs:      runs,
		runner:    runner,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "pulse.worker"})
	slog.InfoContext(ctx, "worker started",
		"concurrency", w.cfg.Concurrency,
		"max_attempts", w.cfg.MaxAttempts)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				// Brief backoff on error
				select {
				case <-ctx.Done():
				case <-time.After(time.Second):
				}
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	// Runs for different users share nothing but the LLM limiter and the pool.
	var g errgroup.Group
	g.SetLimit(w.cfg.Concurrency)
	for _, msg := range messages {
		g.Go(func() error {
			w.Handle(ctx, msg)
			return nil
		})
	}
	return g.Wait()
}

// Handle processes a message and settles it: ack, requeue or DLQ.
// The reclaimer uses it for stale pending messages.
func (w *Worker) Handle(ctx context.Context, msg queue.Message) {
	if err := w.processMessageSafe(ctx, msg); err != nil {
		w.handleFailedMessage(ctx, msg, err)
	}
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing",
				"panic", r,
				"message_id", msg.ID,
				"run_id", msg.RunID)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// ProcessMessage runs one feedback task to completion. It acks on success and on
// tasks that no longer need work; a returned error leaves retry to the caller.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	msgID := msg.ID
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		RunID:     logger.Ptr(msg.RunID),
		UserID:    logger.Ptr(msg.UserID),
		MessageID: &msgID,
	})

	sc := logger.StartSpanFromTraceID(ctx, msg.TraceID, "feedback.task",
		trace.WithSpanKind(trace.SpanKindConsumer))
	defer sc.End()
	ctx = sc.Context()

	slog.InfoContext(ctx, "processing feedback task", "attempt", msg.Attempt)

	run, err := w.runs.Start(ctx, msg.RunID)
	if errors.Is(err, store.ErrNotFound) {
		// Run or its user deleted before the task was picked up.
		slog.WarnContext(ctx, "feedback run no longer exists, skipping")
		w.ack(ctx, msg, "acked")
		return nil
	}
	if err != nil {
		return fmt.Errorf("starting run: %w", err)
	}

	runCtx, cancel := w.runContext(ctx)
	defer cancel()

	start := time.Now()
	_, runErr := w.runner.Run(runCtx, feedback.RunInput{
		UserID:   msg.UserID,
		UserName: msg.UserName,
	})
	if errors.Is(runErr, store.ErrNotFound) {
		// User deleted while the run was in flight; the plan writer refused the records.
		slog.WarnContext(ctx, "feedback run user no longer exists, skipping", "error", runErr)
		w.finish(ctx, run.ID, model.PipelineRunStatusFailed, runErr.Error())
		metrics.RecordRun(string(model.PipelineRunStatusFailed))
		w.ack(ctx, msg, "skipped")
		return nil
	}
	if runErr != nil {
		sc.RecordError(runErr)
		return runErr
	}

	if err := w.runs.Finish(ctx, run.ID, model.PipelineRunStatusSucceeded, nil); err != nil {
		// Plans are already written; a stale status is better than a duplicate run.
		slog.ErrorContext(ctx, "failed to mark run succeeded", "error", err)
	}
	metrics.RecordRun(string(model.PipelineRunStatusSucceeded))

	w.ack(ctx, msg, "acked")
	slog.InfoContext(ctx, "feedback task completed",
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (w *Worker) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if w.cfg.RunTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, w.cfg.RunTimeout)
}

func (w *Worker) ack(ctx context.Context, msg queue.Message, outcome string) {
	if err := w.consumer.Ack(ctx, msg); err != nil {
		// Log but don't fail - message will be reclaimed but that's safe
		slog.WarnContext(ctx, "failed to ACK message",
			"error", err,
			"message_id", msg.ID)
		return
	}
	metrics.RecordJob(outcome)
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		RunID:  logger.Ptr(msg.RunID),
		UserID: logger.Ptr(msg.UserID),
	})
	errMsg := err.Error()

	if ctx.Err() != nil {
		// Shutting down; leave the message pending for the reclaimer.
		slog.WarnContext(ctx, "feedback task interrupted by shutdown", "error", err)
		return
	}

	if !Retryable(ctx, err) || msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "feedback task failed permanently, sending to DLQ",
			"error", err,
			"message_id", msg.ID,
			"attempts", msg.Attempt)
		w.finish(ctx, msg.RunID, model.PipelineRunStatusFailed, errMsg)
		metrics.RecordRun(string(model.PipelineRunStatusFailed))
		if dlqErr := w.consumer.SendDLQ(ctx, msg, errMsg); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
			return
		}
		metrics.RecordJob("dead_lettered")
		return
	}

	slog.WarnContext(ctx, "requeuing failed feedback task",
		"error", err,
		"message_id", msg.ID,
		"attempt", msg.Attempt)
	w.finish(ctx, msg.RunID, model.PipelineRunStatusQueued, errMsg)
	if requeueErr := w.consumer.Requeue(ctx, msg, errMsg); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
		return
	}
	metrics.RecordJob("requeued")
}

func (w *Worker) finish(ctx context.Context, runID int64, status model.PipelineRunStatus, errMsg string) {
	if err := w.runs.Finish(ctx, runID, status, &errMsg); err != nil {
		slog.ErrorContext(ctx, "failed to record run status", "error", err, "status", status)
	}
}

// Retryable reports whether a failed feedback task may succeed on another attempt.
// Setup and persistence failures are final: a partially written run must not be
// replayed. Completion failures defer to llm.IsRetryable.
func Retryable(ctx context.Context, err error) bool {
	var runErr *feedback.RunError
	if errors.As(err, &runErr) {
		switch runErr.Stage {
		case feedback.StageSetup, feedback.StagePersist:
			return false
		case feedback.StageCoach:
			return llm.IsRetryable(ctx, runErr.Err)
		}
	}
	return true
}

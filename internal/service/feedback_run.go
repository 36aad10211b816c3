package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"radbytes.org/pulse/common/id"
	"radbytes.org/pulse/common/logger"
	"radbytes.org/pulse/internal/model"
	"radbytes.org/pulse/internal/queue"
	"radbytes.org/pulse/internal/store"
)

// FeedbackRunService hands feedback runs to the worker and reports their status.
type FeedbackRunService interface {
	Trigger(ctx context.Context, userID int64) (*model.PipelineRun, error)
	Get(ctx context.Context, runID int64) (*model.PipelineRun, error)
	ListByUser(ctx context.Context, userID int64, limit int32) ([]model.PipelineRun, error)
}

type feedbackRunService struct {
	userStore store.UserStore
	runStore  store.PipelineRunStore
	producer  queue.Producer
}

func NewFeedbackRunService(userStore store.UserStore, runStore store.PipelineRunStore, producer queue.Producer) FeedbackRunService {
	return &feedbackRunService{
		userStore: userStore,
		runStore:  runStore,
		producer:  producer,
	}
}

func (s *feedbackRunService) Trigger(ctx context.Context, userID int64) (*model.PipelineRun, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	run := &model.PipelineRun{
		ID:     id.New(),
		UserID: userID,
		Status: model.PipelineRunStatusQueued,
	}
	if err := s.runStore.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("creating pipeline run: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID: logger.Ptr(userID),
		RunID:  logger.Ptr(run.ID),
	})

	task := queue.Task{
		TaskType: queue.TaskTypeFeedbackRun,
		RunID:    run.ID,
		UserID:   userID,
		UserName: user.Name,
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		task.TraceID = logger.Ptr(sc.TraceID().String())
	}

	if err := s.producer.Enqueue(ctx, task); err != nil {
		errMsg := err.Error()
		if finishErr := s.runStore.Finish(ctx, run.ID, model.PipelineRunStatusFailed, &errMsg); finishErr != nil {
			slog.ErrorContext(ctx, "failed to mark unqueued run failed", "error", finishErr)
		}
		return nil, fmt.Errorf("enqueueing feedback run: %w", err)
	}

	slog.InfoContext(ctx, "feedback run queued")
	return run, nil
}

func (s *feedbackRunService) Get(ctx context.Context, runID int64) (*model.PipelineRun, error) {
	run, err := s.runStore.GetByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("getting pipeline run: %w", err)
	}
	return run, nil
}

func (s *feedbackRunService) ListByUser(ctx context.Context, userID int64, limit int32) ([]model.PipelineRun, error) {
	runs, err := s.runStore.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing pipeline runs: %w", err)
	}
	return runs, nil
}

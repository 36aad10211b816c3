package worker

import (
	"context"

	"radbytes.org/pulse/internal/feedback"
	"radbytes.org/pulse/internal/model"
	"radbytes.org/pulse/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// FeedbackRunner abstracts the feedback pipeline for testability.
type FeedbackRunner interface {
	Run(ctx context.Context, in feedback.RunInput) (*feedback.TransformedResult, error)
}

// RunTracker mirrors the job status half of store.PipelineRunStore.
type RunTracker interface {
	Start(ctx context.Context, id int64) (*model.PipelineRun, error)
	Finish(ctx context.Context, id int64, status model.PipelineRunStatus, errMsg *string) error
}

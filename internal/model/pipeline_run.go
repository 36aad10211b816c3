package model

import "time"

type PipelineRunStatus string

const (
	PipelineRunStatusQueued    PipelineRunStatus = "queued"
	PipelineRunStatusRunning   PipelineRunStatus = "running"
	PipelineRunStatusSucceeded PipelineRunStatus = "succeeded"
	PipelineRunStatusFailed    PipelineRunStatus = "failed"
)

// PipelineRun is the job status record for one asynchronous feedback run.
type PipelineRun struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	Status     PipelineRunStatus `json:"status"`
	Attempt    int32             `json:"attempt"`
	Error      *string           `json:"error,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	StartedAt  *time.Time        `json:"started_at,omitempty"`
	FinishedAt *time.Time        `json:"finished_at,omitempty"`
}

func (r PipelineRun) Done() bool {
	return r.Status == PipelineRunStatusSucceeded || r.Status == PipelineRunStatusFailed
}

package dto

import (
	"time"

	"radbytes.org/pulse/internal/model"
)

type TriggerFeedbackRunResponse struct {
	RunID  int64                   `json:"run_id,string"`
	Status model.PipelineRunStatus `json:"status"`
}

type FeedbackRunResponse struct {
	ID         int64                   `json:"id,string"`
	UserID     int64                   `json:"user_id,string"`
	Status     model.PipelineRunStatus `json:"status"`
	Attempt    int32                   `json:"attempt"`
	Error      *string                 `json:"error,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
	StartedAt  *time.Time              `json:"started_at,omitempty"`
	FinishedAt *time.Time              `json:"finished_at,omitempty"`
}

type FeedbackRunListResponse struct {
	Runs []FeedbackRunResponse `json:"runs"`
}

func ToFeedbackRunResponse(r *model.PipelineRun) FeedbackRunResponse {
	return FeedbackRunResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		Status:     r.Status,
		Attempt:    r.Attempt,
		Error:      r.Error,
		CreatedAt:  r.CreatedAt,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}

package store

import (
	"context"
	"errors"

	"radbytes.org/pulse/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByName(ctx context.Context, name string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
}

// ChatStore defines the contract for conversation data access
type ChatStore interface {
	Create(ctx context.Context, msg *model.ChatMessage) error
	ListByUser(ctx context.Context, userID int64) ([]model.ChatMessage, error)
	DeleteByUser(ctx context.Context, userID int64) error
}

// PlanStore defines the contract for plan-of-action data access.
// Records are insert-only; every feedback run writes new rows.
type PlanStore interface {
	Create(ctx context.Context, plan *model.PlanOfAction) error
	GetLatest(ctx context.Context, actingUserID, targetUserID int64) (*model.PlanOfAction, error)
	ListByTarget(ctx context.Context, targetUserID int64) ([]model.PlanOfAction, error)
	DeleteByActingUser(ctx context.Context, actingUserID int64) error
}

// PipelineRunStore defines the contract for feedback run job status
type PipelineRunStore interface {
	Create(ctx context.Context, run *model.PipelineRun) error
	GetByID(ctx context.Context, id int64) (*model.PipelineRun, error)
	Start(ctx context.Context, id int64) (*model.PipelineRun, error)
	Finish(ctx context.Context, id int64, status model.PipelineRunStatus, errMsg *string) error
	ListByUser(ctx context.Context, userID int64, limit int32) ([]model.PipelineRun, error)
	DeleteByUser(ctx context.Context, userID int64) error
}

package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"radbytes.org/pulse/core/db/sqlc"
	"radbytes.org/pulse/internal/model"
)

type pipelineRunStore struct {
	queries *sqlc.Queries
}

func newPipelineRunStore(queries *sqlc.Queries) PipelineRunStore {
	return &pipelineRunStore{queries: queries}
}

func (s *pipelineRunStore) Create(ctx context.Context, run *model.PipelineRun) error {
	row, err := s.queries.CreatePipelineRun(ctx, sqlc.CreatePipelineRunParams{
		ID:     run.ID,
		UserID: run.UserID,
		Status: string(run.Status),
	})
	if err != nil {
		return err
	}
	*run = *toPipelineRunModel(row)
	return nil
}

func (s *pipelineRunStore) GetByID(ctx context.Context, id int64) (*model.PipelineRun, error) {
	row, err := s.queries.GetPipelineRun(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toPipelineRunModel(row), nil
}

// Start marks the run running. It reports ErrNotFound when the run or its user is gone.
func (s *pipelineRunStore) Start(ctx context.Context, id int64) (*model.PipelineRun, error) {
	row, err := s.queries.StartPipelineRun(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toPipelineRunModel(row), nil
}

func (s *pipelineRunStore) Finish(ctx context.Context, id int64, status model.PipelineRunStatus, errMsg *string) error {
	return s.queries.FinishPipelineRun(ctx, sqlc.FinishPipelineRunParams{
		ID:     id,
		Status: string(status),
		Error:  errMsg,
	})
}

func (s *pipelineRunStore) ListByUser(ctx context.Context, userID int64, limit int32) ([]model.PipelineRun, error) {
	rows, err := s.queries.ListPipelineRunsByUser(ctx, sqlc.ListPipelineRunsByUserParams{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []model.PipelineRun{}, nil
		}
		return nil, err
	}
	runs := make([]model.PipelineRun, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, *toPipelineRunModel(row))
	}
	return runs, nil
}

// DeleteByUser drops every run recorded for the user, queued ones included.
func (s *pipelineRunStore) DeleteByUser(ctx context.Context, userID int64) error {
	return s.queries.DeletePipelineRunsByUser(ctx, userID)
}

func toPipelineRunModel(row sqlc.PipelineRun) *model.PipelineRun {
	var startedAt, finishedAt *time.Time
	if row.StartedAt.Valid {
		t := row.StartedAt.Time
		startedAt = &t
	}
	if row.FinishedAt.Valid {
		t := row.FinishedAt.Time
		finishedAt = &t
	}
	return &model.PipelineRun{
		ID:         row.ID,
		UserID:     row.UserID,
		Status:     model.PipelineRunStatus(row.Status),
		Attempt:    row.Attempt,
		Error:      row.Error,
		CreatedAt:  row.CreatedAt.Time,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
}

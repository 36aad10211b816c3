package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"radbytes.org/pulse/core/db/sqlc"
	"radbytes.org/pulse/internal/model"
)

type planStore struct {
	queries *sqlc.Queries
}

func newPlanStore(queries *sqlc.Queries) PlanStore {
	return &planStore{queries: queries}
}

func (s *planStore) Create(ctx context.Context, plan *model.PlanOfAction) error {
	items, err := marshalActionItems(plan.CategorizedActionItems)
	if err != nil {
		return err
	}

	row, err := s.queries.CreatePlanOfAction(ctx, sqlc.CreatePlanOfActionParams{
		ID:                     plan.ID,
		ActingUserID:           plan.ActingUserID,
		ActingUserName:         plan.ActingUserName,
		TargetUserID:           plan.TargetUserID,
		CategorizedActionItems: items,
	})
	if err != nil {
		return err
	}

	created, err := toPlanModel(row)
	if err != nil {
		return err
	}
	*plan = *created
	return nil
}

func (s *planStore) GetLatest(ctx context.Context, actingUserID, targetUserID int64) (*model.PlanOfAction, error) {
	row, err := s.queries.GetLatestPlanForActingAndTarget(ctx, sqlc.GetLatestPlanForActingAndTargetParams{
		ActingUserID: actingUserID,
		TargetUserID: targetUserID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toPlanModel(row)
}

func (s *planStore) ListByTarget(ctx context.Context, targetUserID int64) ([]model.PlanOfAction, error) {
	rows, err := s.queries.ListPlansByTarget(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	plans := make([]model.PlanOfAction, 0, len(rows))
	for _, row := range rows {
		plan, err := toPlanModel(row)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *plan)
	}
	return plans, nil
}

func (s *planStore) DeleteByActingUser(ctx context.Context, actingUserID int64) error {
	return s.queries.DeletePlansByActingUser(ctx, actingUserID)
}

func marshalActionItems(items []model.CategoryActionItems) ([]byte, error) {
	if items == nil {
		items = []model.CategoryActionItems{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshaling action items: %w", err)
	}
	return data, nil
}

func toPlanModel(row sqlc.PlansOfAction) (*model.PlanOfAction, error) {
	var items []model.CategoryActionItems
	if len(row.CategorizedActionItems) > 0 {
		if err := json.Unmarshal(row.CategorizedActionItems, &items); err != nil {
			return nil, fmt.Errorf("unmarshaling action items (plan_id=%d): %w", row.ID, err)
		}
	}
	if items == nil {
		items = []model.CategoryActionItems{}
	}
	return &model.PlanOfAction{
		ID:                     row.ID,
		ActingUserID:           row.ActingUserID,
		ActingUserName:         row.ActingUserName,
		TargetUserID:           row.TargetUserID,
		CategorizedActionItems: items,
		CreatedAt:              row.CreatedAt.Time,
	}, nil
}

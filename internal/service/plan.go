package service

import (
	"context"
	"fmt"

	"radbytes.org/pulse/internal/model"
	"radbytes.org/pulse/internal/store"
)

type PlanService interface {
	// SelfView returns the most recent plan a user produced for themselves.
	SelfView(ctx context.Context, userID int64) (*model.PlanOfAction, error)
	// ManagerView returns every plan addressed to the manager, newest first.
	ManagerView(ctx context.Context) ([]model.PlanOfAction, error)
}

type planService struct {
	userStore     store.UserStore
	planStore     store.PlanStore
	managerUserID int64
}

func NewPlanService(userStore store.UserStore, planStore store.PlanStore, managerUserID int64) PlanService {
	return &planService{
		userStore:     userStore,
		planStore:     planStore,
		managerUserID: managerUserID,
	}
}

func (s *planService) SelfView(ctx context.Context, userID int64) (*model.PlanOfAction, error) {
	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	plan, err := s.planStore.GetLatest(ctx, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("getting self view: %w", err)
	}
	return plan, nil
}

func (s *planService) ManagerView(ctx context.Context) ([]model.PlanOfAction, error) {
	plans, err := s.planStore.ListByTarget(ctx, s.managerUserID)
	if err != nil {
		return nil, fmt.Errorf("listing manager plans: %w", err)
	}
	return plans, nil
}

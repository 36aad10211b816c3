package dto

import (
	"time"

	"radbytes.org/pulse/internal/model"
)

type PlanResponse struct {
	ID                     int64                       `json:"id,string"`
	ActingUserID           int64                       `json:"acting_user_id,string"`
	ActingUserName         string                      `json:"acting_user_name"`
	TargetUserID           int64                       `json:"target_user_id,string"`
	CategorizedActionItems []model.CategoryActionItems `json:"categorized_action_items"`
	CreatedAt              time.Time                   `json:"created_at"`
}

type PlanListResponse struct {
	Plans []PlanResponse `json:"plans"`
}

func ToPlanResponse(p model.PlanOfAction) PlanResponse {
	items := p.CategorizedActionItems
	if items == nil {
		items = []model.CategoryActionItems{}
	}
	return PlanResponse{
		ID:                     p.ID,
		ActingUserID:           p.ActingUserID,
		ActingUserName:         p.ActingUserName,
		TargetUserID:           p.TargetUserID,
		CategorizedActionItems: items,
		CreatedAt:              p.CreatedAt,
	}
}

func ToPlanListResponse(plans []model.PlanOfAction) PlanListResponse {
	resp := PlanListResponse{Plans: make([]PlanResponse, len(plans))}
	for i, p := range plans {
		resp.Plans[i] = ToPlanResponse(p)
	}
	return resp
}

package feedback

import (
	"slices"

	"radbytes.org/pulse/internal/model"
)

// Transform reshapes coach output into the two persisted views. It has no side
// effects, keeps category order and does not deduplicate.
func Transform(result CoachResult, actingUserID int64, actingUserName string) TransformedResult {
	return TransformedResult{
		Employee: toView(result.Employee, actingUserID, actingUserName),
		Manager:  toView(result.Manager, actingUserID, actingUserName),
	}
}

func toView(plans []CategoryPlans, actingUserID int64, actingUserName string) PersistedView {
	items := make([]model.CategoryActionItems, 0, len(plans))
	for _, cat := range plans {
		actionItems := make([]model.ActionItem, 0, len(cat.Plans))
		for _, p := range cat.Plans {
			steps := slices.Clone(p.Actions)
			if steps == nil {
				steps = []string{}
			}
			actionItems = append(actionItems, model.ActionItem{
				ActionTitle:   p.ActionTitle,
				ActionStatus:  model.ActionStatusPendingReview,
				ActionPlan:    steps,
				ProgressNotes: []string{},
			})
		}
		items = append(items, model.CategoryActionItems{
			Category:    cat.Category,
			ActionItems: actionItems,
		})
	}

	return PersistedView{
		ActingUserID:           actingUserID,
		ActingUserName:         actingUserName,
		CategorizedActionItems: items,
	}
}

// Plan assigns the view to a target user.
func (v PersistedView) Plan(targetUserID int64) model.PlanOfAction {
	return model.PlanOfAction{
		ActingUserID:           v.ActingUserID,
		ActingUserName:         v.ActingUserName,
		TargetUserID:           targetUserID,
		CategorizedActionItems: v.CategorizedActionItems,
	}
}

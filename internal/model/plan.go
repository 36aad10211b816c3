package model

import "time"

// ActionStatusPendingReview is the status every action item is created with.
const ActionStatusPendingReview = "pending review"

// PlanOfAction is the persisted, role-scoped output of one feedback run.
// TargetUserID is the manager id for the manager view and the acting user's own id
// for the self view.
type PlanOfAction struct {
	ID                     int64                 `json:"id"`
	ActingUserID           int64                 `json:"acting_user_id"`
	ActingUserName         string                `json:"acting_user_name"`
	TargetUserID           int64                 `json:"target_user_id"`
	CategorizedActionItems []CategoryActionItems `json:"categorized_action_items"`
	CreatedAt              time.Time             `json:"created_at"`
}

type CategoryActionItems struct {
	Category    string       `json:"category"`
	ActionItems []ActionItem `json:"action_items"`
}

type ActionItem struct {
	ActionTitle   string   `json:"action_title"`
	ActionStatus  string   `json:"action_status"`
	ActionPlan    []string `json:"action_plan"`
	ProgressNotes []string `json:"progress_notes"`
}

package feedback

import (
	"fmt"

	"radbytes.org/pulse/internal/model"
)

// Role selects which taxonomy and prompt register a pass uses.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
)

// FallbackFinding is the single finding returned when extraction yields nothing.
const FallbackFinding = "Unable to extract feedback"

type Finding string

type RoutingSummary struct {
	ManagerOnly  int `json:"manager_only"`
	EmployeeOnly int `json:"employee_only"`
	Shared       int `json:"shared"`
}

type RoutedFeedback struct {
	UserID              int64          `json:"user_id"`
	ApplicableToManager []string       `json:"applicable_to_manager"`
	ApplicableToUser    []string       `json:"applicable_to_user"`
	Summary             RoutingSummary `json:"routing_summary"`
}

type CategoryFindings struct {
	Category string   `json:"category"`
	Findings []string `json:"findings"`
}

// Categorized is one role's category → findings mapping in taxonomy order.
// Err is set when the categorizer task failed and the result was substituted.
type Categorized struct {
	Role       Role               `json:"role"`
	Categories []CategoryFindings `json:"categories"`
	Err        error              `json:"-"`
}

// Degraded reports whether this result stands in for a failed categorizer task.
func (c Categorized) Degraded() bool {
	return c.Err != nil
}

func (c Categorized) Count() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Findings)
	}
	return n
}

type ActionPlan struct {
	ActionTitle string   `json:"action_title"`
	Actions     []string `json:"actions"`
}

type CategoryPlans struct {
	Category string       `json:"category"`
	Plans    []ActionPlan `json:"action_plans"`
}

type CoachResult struct {
	Employee []CategoryPlans `json:"employee"`
	Manager  []CategoryPlans `json:"manager"`
}

// PersistedView is the plan-of-action shape for one audience, before a target is assigned.
type PersistedView struct {
	ActingUserID           int64                       `json:"acting_user_id"`
	ActingUserName         string                      `json:"acting_user_name"`
	CategorizedActionItems []model.CategoryActionItems `json:"categorized_action_items"`
}

type TransformedResult struct {
	Employee PersistedView `json:"employee"`
	Manager  PersistedView `json:"manager"`
}

type RunInput struct {
	UserID   int64
	UserName string
	// Credential overrides the configured completion API key for this run when set.
	Credential string
}

// Pipeline stages, used for errors, logs and metrics.
const (
	StageFetch              = "fetch"
	StageExtract            = "extract"
	StageRoute              = "route"
	StageCategorizeEmployee = "categorize_employee"
	StageCategorizeManager  = "categorize_manager"
	StageCoach              = "coach"
	StagePersist            = "persist"
)

// RunError marks the stage at which a run aborted.
type RunError struct {
	Stage string
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("feedback %s: %v", e.Stage, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

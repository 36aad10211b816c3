package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"radbytes.org/pulse/common/metrics"
)

// Router decides whether each finding concerns the manager, the employee, or both.
// Conduct and HR items are dropped by the model and produce no line.
type Router struct {
	llm Completer
}

func NewRouter(client Completer) *Router {
	return &Router{llm: client}
}

// Route never fails: on a completion error or when no line routes, every finding goes
// to the employee and the manager list stays empty.
func (r *Router) Route(ctx context.Context, userID int64, findings []string) RoutedFeedback {
	text, err := r.llm.Complete(ctx, buildRoutingPrompt(findings))
	if err != nil {
		slog.WarnContext(ctx, "routing failed, sending all findings to employee", "error", err)
		metrics.RecordFallback(StageRoute)
		return fallbackRouting(userID, findings)
	}

	manager, employee, routed := parseRouting(text)
	if routed == 0 {
		slog.WarnContext(ctx, "no routing lines parsed, sending all findings to employee",
			"finding_count", len(findings))
		metrics.RecordFallback(StageRoute)
		return fallbackRouting(userID, findings)
	}

	result := RoutedFeedback{
		UserID:              userID,
		ApplicableToManager: manager,
		ApplicableToUser:    employee,
		Summary:             summarize(manager, employee),
	}

	slog.InfoContext(ctx, "findings routed",
		"finding_count", len(findings),
		"manager_only", result.Summary.ManagerOnly,
		"employee_only", result.Summary.EmployeeOnly,
		"shared", result.Summary.Shared)
	return result
}

func fallbackRouting(userID int64, findings []string) RoutedFeedback {
	return RoutedFeedback{
		UserID:              userID,
		ApplicableToManager: []string{},
		ApplicableToUser:    slices.Clone(findings),
		Summary:             RoutingSummary{EmployeeOnly: len(findings)},
	}
}

// summarize counts by exact string membership, so identical text routed twice is
// counted per occurrence.
func summarize(manager, employee []string) RoutingSummary {
	var s RoutingSummary
	for _, f := range manager {
		if slices.Contains(employee, f) {
			s.Shared++
		} else {
			s.ManagerOnly++
		}
	}
	for _, f := range employee {
		if !slices.Contains(manager, f) {
			s.EmployeeOnly++
		}
	}
	return s
}

func buildRoutingPrompt(findings []string) string {
	var sb strings.Builder
	for _, f := range findings {
		sb.WriteString("- ")
		sb.WriteString(f)
		sb.WriteString("\n")
	}
	return fmt.Sprintf(routingPrompt, strings.TrimRight(sb.String(), "\n"))
}

const routingPrompt = `As a feedback routing specialist, categorize each feedback item based on its relevance to managers and/or employees.
Remove anything that might be a conduct violation or HR case. For example, ignore things that
indicate harassment or inappropriate comments.

Guidelines for categorization:

Manager-only relevant feedback includes:
- Issues with task delegation or assignment
- Team organization concerns
- Resource allocation problems
- Workplace environment issues that need manager intervention
- Management style feedback

Employee-only relevant feedback includes:
- Personal skill development interests without leadership component
- Individual performance goals
- Personal work preferences
- Self-improvement areas not related to leadership

Feedback relevant to both includes:
- Leadership development aspirations
- Career growth plans involving team management
- Communication improvement needs
- Team dynamics issues where both parties need awareness
- Professional development needs that require manager support

Feedback items to categorize:
%s

For each item, respond in the format:
ROUTING: [MANAGER_ONLY or EMPLOYEE_ONLY or BOTH]: [Original feedback text]`

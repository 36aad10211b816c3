package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"radbytes.org/pulse/internal/model"
)

// StepBounds is the step-count range requested from the model. It is a request,
// not a constraint on what is parsed back.
type StepBounds struct {
	Min int
	Max int
}

// StepRoller draws StepBounds with Min in [2,3] and Max in [4,5]. It is safe for
// concurrent runs sharing one source.
type StepRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStepRoller wraps rng, or a time-seeded source when rng is nil.
func NewStepRoller(rng *rand.Rand) *StepRoller {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &StepRoller{rng: rng}
}

func (r *StepRoller) Roll() StepBounds {
	r.mu.Lock()
	defer r.mu.Unlock()
	return StepBounds{
		Min: 2 + r.rng.IntN(2),
		Max: 4 + r.rng.IntN(2),
	}
}

// Coach writes a title and action steps for every categorized finding. Unlike the
// earlier stages it has no fallback: the first completion error aborts the pass.
type Coach struct {
	llm    Completer
	roller *StepRoller
}

func NewCoach(client Completer, roller *StepRoller) *Coach {
	if roller == nil {
		roller = NewStepRoller(nil)
	}
	return &Coach{llm: client, roller: roller}
}

// Plan runs the employee pass then the manager pass. employeeName is the acting
// user's full name; manager prompts address the employee by first name.
func (c *Coach) Plan(ctx context.Context, employee, manager Categorized, employeeName string) (CoachResult, error) {
	employeePlans, err := c.planRole(ctx, RoleEmployee, employee, employeeName)
	if err != nil {
		return CoachResult{}, err
	}

	managerPlans, err := c.planRole(ctx, RoleManager, manager, employeeName)
	if err != nil {
		return CoachResult{}, err
	}

	return CoachResult{Employee: employeePlans, Manager: managerPlans}, nil
}

func (c *Coach) planRole(ctx context.Context, role Role, insights Categorized, employeeName string) ([]CategoryPlans, error) {
	bounds := c.roller.Roll()
	firstName := model.FirstName(employeeName)
	if firstName == "" {
		firstName = "the employee"
	}

	plans := make([]CategoryPlans, 0, len(insights.Categories))
	for _, cat := range insights.Categories {
		if len(cat.Findings) == 0 {
			continue
		}

		entry := CategoryPlans{Category: cat.Category, Plans: make([]ActionPlan, 0, len(cat.Findings))}
		for _, finding := range cat.Findings {
			plan, err := c.planFinding(ctx, role, cat.Category, finding, firstName, bounds)
			if err != nil {
				return nil, fmt.Errorf("coach %s %q: %w", role, cat.Category, err)
			}
			entry.Plans = append(entry.Plans, plan)
		}
		plans = append(plans, entry)
	}

	slog.InfoContext(ctx, "action plans generated",
		"role", role,
		"category_count", len(plans),
		"min_actions", bounds.Min,
		"max_actions", bounds.Max)
	return plans, nil
}

func (c *Coach) planFinding(ctx context.Context, role Role, category, finding, firstName string, bounds StepBounds) (ActionPlan, error) {
	titleText, err := c.llm.Complete(ctx, buildTitlePrompt(role, category, finding, firstName))
	if err != nil {
		return ActionPlan{}, fmt.Errorf("complete title: %w", err)
	}
	title := parseTitle(titleText)
	if title == "" {
		title = finding
	}

	stepsText, err := c.llm.Complete(ctx, buildStepsPrompt(role, category, finding, firstName, bounds))
	if err != nil {
		return ActionPlan{}, fmt.Errorf("complete steps: %w", err)
	}

	actions := parseActions(stepsText)
	if actions == nil {
		actions = []string{}
	}
	return ActionPlan{ActionTitle: title, Actions: actions}, nil
}

func buildTitlePrompt(role Role, category, finding, firstName string) string {
	if role == RoleManager {
		return fmt.Sprintf(managerTitlePrompt, category, firstName, finding, firstName)
	}
	return fmt.Sprintf(employeeTitlePrompt, category, finding)
}

func buildStepsPrompt(role Role, category, finding, firstName string, b StepBounds) string {
	if role == RoleManager {
		return fmt.Sprintf(managerStepsPrompt, category, b.Min, b.Max, firstName, finding, firstName)
	}
	return fmt.Sprintf(employeeStepsPrompt, category, b.Min, b.Max, finding)
}

const employeeTitlePrompt = `Based on this %s feedback, generate a concise, specific action plan title (3-7 words) written for the employee.
Address the employee directly: use "your", never "my".

Feedback: %s

Respond with only the title on a single line. Example:
'Enhance Your Cloud Computing Skills' or 'Build Your Presentation Confidence'`

const employeeStepsPrompt = `Convert this %s feedback into specific action steps the employee can take. Provide %d-%d clear, actionable steps for improvement.
Write each step in the first person as an instruction to the employee, using "your" rather than "my".

Feedback: %s

Respond with only action steps, one per line, starting with 'ACTION:'. Be specific and concrete. Example:
ACTION: Enroll in a cloud certification course that fits your schedule
ACTION: Block two hours each week for your certification study`

const managerTitlePrompt = `Based on this %s feedback from %s, generate a concise, specific action plan title (3-7 words) for their manager.

Feedback: %s

Phrase it as a management action and refer to the employee as %s. Respond with only the title on a single line. Example:
'Support Jane's Cloud Certification' or 'Implement Weekly Check-ins With Jane'`

const managerStepsPrompt = `Convert this %s feedback into specific action steps for the manager. Provide %d-%d clear, actionable steps.
The employee is %s.

Feedback: %s

Each step is something the manager does; name the employee as %s where it helps. Respond with only action steps, one per line, starting with 'ACTION:'. Be specific and concrete. Example:
ACTION: Schedule a monthly 1-on-1 with Jane to review certification progress
ACTION: Allocate training budget for Jane's certification exam`

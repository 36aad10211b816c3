package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"radbytes.org/pulse/common/logger"
	"radbytes.org/pulse/common/metrics"
)

const StageSetup = "setup"

// DefaultManagerUserID is the target of the manager-view record unless configured.
const DefaultManagerUserID int64 = 1

type PipelineConfig struct {
	ManagerUserID      int64
	StructuredFindings bool
}

// Pipeline turns one employee's conversation into two plan-of-action records:
// conversation → findings → routing → {employee, manager} categories → coach →
// transform → persist.
type Pipeline struct {
	conversations ConversationSource
	plans         PlanWriter
	clients       ClientFactory
	employee      *Taxonomy
	manager       *Taxonomy
	roller        *StepRoller
	cfg           PipelineConfig
}

type PipelineOption func(*Pipeline)

// WithStepRoller fixes the random source for coach step bounds.
func WithStepRoller(r *StepRoller) PipelineOption {
	return func(p *Pipeline) { p.roller = r }
}

// WithTaxonomies replaces the built-in taxonomies.
func WithTaxonomies(employee, manager *Taxonomy) PipelineOption {
	return func(p *Pipeline) {
		p.employee = employee
		p.manager = manager
	}
}

func NewPipeline(conversations ConversationSource, plans PlanWriter, clients ClientFactory, cfg PipelineConfig, opts ...PipelineOption) *Pipeline {
	if cfg.ManagerUserID == 0 {
		cfg.ManagerUserID = DefaultManagerUserID
	}

	p := &Pipeline{
		conversations: conversations,
		plans:         plans,
		clients:       clients,
		cfg:           cfg,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.employee == nil {
		p.employee = EmployeeTaxonomy()
	}
	if p.manager == nil {
		p.manager = ManagerTaxonomy()
	}
	if p.roller == nil {
		p.roller = NewStepRoller(nil)
	}
	return p
}

// Run executes one feedback run synchronously. Extraction, routing and
// categorization degrade to fallbacks; fetch, coach and persistence failures are
// returned as *RunError. Both persistence writes are attempted even if one fails.
func (p *Pipeline) Run(ctx context.Context, in RunInput) (*TransformedResult, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:    logger.Ptr(in.UserID),
		Component: "pulse.feedback.pipeline",
	})

	sc := logger.StartSpan(ctx, "feedback.run")
	defer sc.End()
	ctx = sc.Context()

	start := time.Now()
	result, err := p.run(ctx, in)
	if err != nil {
		sc.RecordError(err)
		slog.ErrorContext(ctx, "feedback run failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return nil, err
	}

	slog.InfoContext(ctx, "feedback run completed",
		"employee_categories", len(result.Employee.CategorizedActionItems),
		"manager_categories", len(result.Manager.CategorizedActionItems),
		"duration_ms", time.Since(start).Milliseconds())
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, in RunInput) (*TransformedResult, error) {
	clients, err := p.clients(in.Credential)
	if err != nil {
		return nil, &RunError{Stage: StageSetup, Err: err}
	}

	stageStart := time.Now()
	conversation, err := p.conversations.Conversation(stageContext(ctx, StageFetch), in.UserID)
	metrics.ObserveStage(StageFetch, time.Since(stageStart), err)
	if err != nil {
		return nil, &RunError{Stage: StageFetch, Err: err}
	}

	stageStart = time.Now()
	extractor := NewFindingExtractor(clients.Analysis, p.cfg.StructuredFindings)
	findings := extractor.Extract(stageContext(ctx, StageExtract), EmployeeMessages(conversation))
	metrics.ObserveStage(StageExtract, time.Since(stageStart), nil)

	stageStart = time.Now()
	routed := NewRouter(clients.Analysis).Route(stageContext(ctx, StageRoute), in.UserID, Findings(findings))
	metrics.ObserveStage(StageRoute, time.Since(stageStart), nil)

	employee, manager := p.categorize(ctx, clients.Categorizer, routed)

	stageStart = time.Now()
	coached, err := NewCoach(clients.Analysis, p.roller).Plan(stageContext(ctx, StageCoach), employee, manager, in.UserName)
	metrics.ObserveStage(StageCoach, time.Since(stageStart), err)
	if err != nil {
		return nil, &RunError{Stage: StageCoach, Err: err}
	}

	result := Transform(coached, in.UserID, in.UserName)

	stageStart = time.Now()
	err = p.persist(stageContext(ctx, StagePersist), result, in.UserID)
	metrics.ObserveStage(StagePersist, time.Since(stageStart), err)
	if err != nil {
		return nil, &RunError{Stage: StagePersist, Err: err}
	}

	return &result, nil
}

// categorize runs both categorizers concurrently and waits for both. A panicking
// side is replaced by an empty result carrying the error.
func (p *Pipeline) categorize(ctx context.Context, client Completer, routed RoutedFeedback) (employee, manager Categorized) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		employee = categorizeSafely(ctx, NewCategorizer(client, p.employee), routed.ApplicableToUser, StageCategorizeEmployee)
	}()
	go func() {
		defer wg.Done()
		manager = categorizeSafely(ctx, NewCategorizer(client, p.manager), routed.ApplicableToManager, StageCategorizeManager)
	}()
	wg.Wait()

	return employee, manager
}

func categorizeSafely(ctx context.Context, c *Categorizer, findings []string, stage string) (result Categorized) {
	ctx = logger.WithLogFields(stageContext(ctx, stage), logger.LogFields{Role: logger.Ptr(string(c.Role()))})
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("categorizer panic: %v", r)
			slog.ErrorContext(ctx, "categorizer crashed, continuing with empty result", "error", err)
			metrics.RecordFallback(stage)
			result = Categorized{Role: c.Role(), Err: err}
		}
		metrics.ObserveStage(stage, time.Since(start), result.Err)
	}()

	return c.Categorize(ctx, findings)
}

// persist writes the manager view then the self view, each in its own transaction.
func (p *Pipeline) persist(ctx context.Context, result TransformedResult, userID int64) error {
	var errs []error

	if err := p.plans.CreatePlan(ctx, result.Manager.Plan(p.cfg.ManagerUserID)); err != nil {
		slog.ErrorContext(ctx, "failed to persist manager plan", "error", err, "target_user_id", p.cfg.ManagerUserID)
		errs = append(errs, fmt.Errorf("persist manager plan: %w", err))
	} else {
		metrics.RecordPlanWritten(string(RoleManager))
	}

	if err := p.plans.CreatePlan(ctx, result.Employee.Plan(userID)); err != nil {
		slog.ErrorContext(ctx, "failed to persist self plan", "error", err, "target_user_id", userID)
		errs = append(errs, fmt.Errorf("persist self plan: %w", err))
	} else {
		metrics.RecordPlanWritten(string(RoleEmployee))
	}

	return errors.Join(errs...)
}

func stageContext(ctx context.Context, stage string) context.Context {
	return logger.WithLogFields(ctx, logger.LogFields{Stage: logger.Ptr(stage)})
}

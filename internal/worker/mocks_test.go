package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"radbytes.org/pulse/internal/feedback"
	"radbytes.org/pulse/internal/model"
	"radbytes.org/pulse/internal/queue"
	"radbytes.org/pulse/internal/store"
)

type mockConsumer struct {
	mu       sync.Mutex
	readFn   func(ctx context.Context) ([]queue.Message, error)
	acked    []string
	requeued []string
	dlq      []string
	reasons  []string
}

func (m *mockConsumer) Read(ctx context.Context) ([]queue.Message, error) {
	if m.readFn != nil {
		return m.readFn(ctx)
	}
	return nil, nil
}

func (m *mockConsumer) Ack(_ context.Context, msg queue.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acked = append(m.acked, msg.ID)
	return nil
}

func (m *mockConsumer) Requeue(_ context.Context, msg queue.Message, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requeued = append(m.requeued, msg.ID)
	m.reasons = append(m.reasons, errMsg)
	return nil
}

func (m *mockConsumer) SendDLQ(_ context.Context, msg queue.Message, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dlq = append(m.dlq, msg.ID)
	m.reasons = append(m.reasons, errMsg)
	return nil
}

type statusUpdate struct {
	id     int64
	status model.PipelineRunStatus
	errMsg *string
}

type mockRunTracker struct {
	mu       sync.Mutex
	startFn  func(ctx context.Context, id int64) (*model.PipelineRun, error)
	started  []int64
	statuses []statusUpdate
}

func (m *mockRunTracker) Start(ctx context.Context, id int64) (*model.PipelineRun, error) {
	m.mu.Lock()
	m.started = append(m.started, id)
	m.mu.Unlock()
	if m.startFn != nil {
		return m.startFn(ctx, id)
	}
	return &model.PipelineRun{ID: id, Status: model.PipelineRunStatusRunning}, nil
}

func (m *mockRunTracker) Finish(_ context.Context, id int64, status model.PipelineRunStatus, errMsg *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, statusUpdate{id: id, status: status, errMsg: errMsg})
	return nil
}

type mockRunner struct {
	mu    sync.Mutex
	runFn func(ctx context.Context, in feedback.RunInput) (*feedback.TransformedResult, error)
	calls []feedback.RunInput
}

func (m *mockRunner) Run(ctx context.Context, in feedback.RunInput) (*feedback.TransformedResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, in)
	m.mu.Unlock()
	if m.runFn != nil {
		return m.runFn(ctx, in)
	}
	return &feedback.TransformedResult{}, nil
}

type emptyConversations struct{}

func (emptyConversations) Conversation(context.Context, int64) ([]model.ChatMessage, error) {
	return nil, nil
}

// recordingPlanWriter refuses plans whose acting user is not in users, the way the
// transactional writer does once a user row is gone.
type recordingPlanWriter struct {
	mu      sync.Mutex
	users   map[int64]bool
	written []model.PlanOfAction
}

func (m *recordingPlanWriter) CreatePlan(_ context.Context, plan model.PlanOfAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.users[plan.ActingUserID] {
		return fmt.Errorf("acting user %d: %w", plan.ActingUserID, store.ErrNotFound)
	}
	m.written = append(m.written, plan)
	return nil
}

type unavailableCompleter struct{}

func (unavailableCompleter) Complete(context.Context, string) (string, error) {
	return "", errors.New("completion service unavailable")
}

func unavailableClients(string) (feedback.Clients, error) {
	return feedback.Clients{Analysis: unavailableCompleter{}, Categorizer: unavailableCompleter{}}, nil
}

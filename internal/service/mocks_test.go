package service_test

import (
	"context"
	"sync"

	"radbytes.org/pulse/common/llm"
	"radbytes.org/pulse/internal/model"
	"radbytes.org/pulse/internal/queue"
	"radbytes.org/pulse/internal/service"
	"radbytes.org/pulse/internal/store"
)

type mockUserStore struct {
	createFn    func(ctx context.Context, user *model.User) error
	getByIDFn   func(ctx context.Context, id int64) (*model.User, error)
	getByNameFn func(ctx context.Context, name string) (*model.User, error)
	deleteFn    func(ctx context.Context, id int64) error
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.User{ID: id, Name: "Jane Doe"}, nil
}

func (m *mockUserStore) GetByName(ctx context.Context, name string) (*model.User, error) {
	if m.getByNameFn != nil {
		return m.getByNameFn(ctx, name)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockChatStore struct {
	mu             sync.Mutex
	messages       []model.ChatMessage
	createFn       func(ctx context.Context, msg *model.ChatMessage) error
	listErr        error
	deleteByUserFn func(ctx context.Context, userID int64) error
}

func (m *mockChatStore) Create(ctx context.Context, msg *model.ChatMessage) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, msg); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *mockChatStore) ListByUser(_ context.Context, userID int64) ([]model.ChatMessage, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ChatMessage
	for _, msg := range m.messages {
		if msg.UserID == userID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *mockChatStore) DeleteByUser(ctx context.Context, userID int64) error {
	if m.deleteByUserFn != nil {
		return m.deleteByUserFn(ctx, userID)
	}
	return nil
}

type mockPlanStore struct {
	mu                   sync.Mutex
	created              []model.PlanOfAction
	createFn             func(ctx context.Context, plan *model.PlanOfAction) error
	getLatestFn          func(ctx context.Context, actingUserID, targetUserID int64) (*model.PlanOfAction, error)
	listByTargetFn       func(ctx context.Context, targetUserID int64) ([]model.PlanOfAction, error)
	deleteByActingUserFn func(ctx context.Context, actingUserID int64) error
}

func (m *mockPlanStore) Create(ctx context.Context, plan *model.PlanOfAction) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, plan); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, *plan)
	return nil
}

func (m *mockPlanStore) GetLatest(ctx context.Context, actingUserID, targetUserID int64) (*model.PlanOfAction, error) {
	if m.getLatestFn != nil {
		return m.getLatestFn(ctx, actingUserID, targetUserID)
	}
	return nil, store.ErrNotFound
}

func (m *mockPlanStore) ListByTarget(ctx context.Context, targetUserID int64) ([]model.PlanOfAction, error) {
	if m.listByTargetFn != nil {
		return m.listByTargetFn(ctx, targetUserID)
	}
	return []model.PlanOfAction{}, nil
}

func (m *mockPlanStore) DeleteByActingUser(ctx context.Context, actingUserID int64) error {
	if m.deleteByActingUserFn != nil {
		return m.deleteByActingUserFn(ctx, actingUserID)
	}
	return nil
}

type mockPipelineRunStore struct {
	mu             sync.Mutex
	created        []model.PipelineRun
	finished       []model.PipelineRunStatus
	createFn       func(ctx context.Context, run *model.PipelineRun) error
	getFn          func(ctx context.Context, id int64) (*model.PipelineRun, error)
	deleteByUserFn func(ctx context.Context, userID int64) error
}

func (m *mockPipelineRunStore) Create(ctx context.Context, run *model.PipelineRun) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, run); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, *run)
	return nil
}

func (m *mockPipelineRunStore) GetByID(ctx context.Context, id int64) (*model.PipelineRun, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockPipelineRunStore) Start(_ context.Context, id int64) (*model.PipelineRun, error) {
	return &model.PipelineRun{ID: id, Status: model.PipelineRunStatusRunning}, nil
}

func (m *mockPipelineRunStore) Finish(_ context.Context, _ int64, status model.PipelineRunStatus, _ *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished = append(m.finished, status)
	return nil
}

func (m *mockPipelineRunStore) ListByUser(_ context.Context, userID int64, _ int32) ([]model.PipelineRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.PipelineRun
	for _, run := range m.created {
		if run.UserID == userID {
			out = append(out, run)
		}
	}
	return out, nil
}

func (m *mockPipelineRunStore) DeleteByUser(ctx context.Context, userID int64) error {
	if m.deleteByUserFn != nil {
		return m.deleteByUserFn(ctx, userID)
	}
	return nil
}

// mockStoreProvider hands out the same mocks inside and outside a transaction.
type mockStoreProvider struct {
	users *mockUserStore
	chats *mockChatStore
	plans *mockPlanStore
	runs  *mockPipelineRunStore
}

func (m *mockStoreProvider) Users() store.UserStore               { return m.users }
func (m *mockStoreProvider) Chats() store.ChatStore               { return m.chats }
func (m *mockStoreProvider) Plans() store.PlanStore               { return m.plans }
func (m *mockStoreProvider) PipelineRuns() store.PipelineRunStore { return m.runs }

type mockTxRunner struct {
	stores   *mockStoreProvider
	calls    int
	withTxFn func(ctx context.Context, fn func(stores service.StoreProvider) error) error
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	m.calls++
	if m.withTxFn != nil {
		return m.withTxFn(ctx, fn)
	}
	return fn(m.stores)
}

type mockChatModel struct {
	converseFn func(ctx context.Context, messages []llm.Message, temperature *float64) (string, error)
	calls      [][]llm.Message
	temps      []*float64
}

func (m *mockChatModel) Converse(ctx context.Context, messages []llm.Message, temperature *float64) (string, error) {
	m.calls = append(m.calls, messages)
	m.temps = append(m.temps, temperature)
	if m.converseFn != nil {
		return m.converseFn(ctx, messages, temperature)
	}
	return "Tell me more.", nil
}

type mockProducer struct {
	tasks     []queue.Task
	enqueueFn func(ctx context.Context, task queue.Task) error
}

func (m *mockProducer) Enqueue(ctx context.Context, task queue.Task) error {
	if m.enqueueFn != nil {
		if err := m.enqueueFn(ctx, task); err != nil {
			return err
		}
	}
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}

package feedback_test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"radbytes.org/pulse/common/llm"
	"radbytes.org/pulse/internal/model"
)

// mockCompleter is safe for the concurrent categorizer calls.
type mockCompleter struct {
	mu         sync.Mutex
	completeFn func(ctx context.Context, prompt string) (string, error)
	prompts    []string
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	fn := m.completeFn
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}
	return "", errors.New("mock not configured")
}

func (m *mockCompleter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *mockCompleter) promptsContaining(s string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, p := range m.prompts {
		if strings.Contains(p, s) {
			out = append(out, p)
		}
	}
	return out
}

// mockStructuredCompleter adds schema-constrained output to mockCompleter.
type mockStructuredCompleter struct {
	mockCompleter
	chatFn    func(ctx context.Context, req llm.Request, result any) (*llm.Response, error)
	chatCount int
}

func (m *mockStructuredCompleter) Chat(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
	m.chatCount++
	if m.chatFn != nil {
		return m.chatFn(ctx, req, result)
	}
	return nil, errors.New("mock not configured")
}

type mockConversationSource struct {
	conversationFn func(ctx context.Context, userID int64) ([]model.ChatMessage, error)
}

func (m *mockConversationSource) Conversation(ctx context.Context, userID int64) ([]model.ChatMessage, error) {
	if m.conversationFn != nil {
		return m.conversationFn(ctx, userID)
	}
	return nil, errors.New("mock not configured")
}

type mockPlanWriter struct {
	mu           sync.Mutex
	createPlanFn func(ctx context.Context, plan model.PlanOfAction) error
	plans        []model.PlanOfAction
}

func (m *mockPlanWriter) CreatePlan(ctx context.Context, plan model.PlanOfAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createPlanFn != nil {
		if err := m.createPlanFn(ctx, plan); err != nil {
			return err
		}
	}
	m.plans = append(m.plans, plan)
	return nil
}

// scriptedReply answers each stage's prompt by recognising its opening words.
type scriptedReply struct {
	findings         string
	routing          string
	employeeCategory string
	managerCategory  string
	title            string
	steps            string
	failTitle        bool
}

func (s scriptedReply) complete(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.HasPrefix(prompt, "As a feedback analyst"):
		return s.findings, nil
	case strings.HasPrefix(prompt, "As a feedback routing specialist"):
		return s.routing, nil
	case strings.HasPrefix(prompt, "As a career development analyst"):
		return s.employeeCategory, nil
	case strings.HasPrefix(prompt, "As a management feedback analyst"):
		return s.managerCategory, nil
	case strings.Contains(prompt, "action plan title"):
		if s.failTitle {
			return "", errors.New("title service unavailable")
		}
		return s.title, nil
	case strings.Contains(prompt, "action steps"):
		return s.steps, nil
	}
	return "", errors.New("unexpected prompt")
}

func alwaysFail(context.Context, string) (string, error) {
	return "", errors.New("completion service unavailable")
}

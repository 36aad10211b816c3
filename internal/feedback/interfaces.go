package feedback

import (
	"context"

	"radbytes.org/pulse/common/llm"
	"radbytes.org/pulse/internal/model"
)

// Completer turns a prompt into free text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// StructuredCompleter returns schema-constrained JSON decoded into result.
type StructuredCompleter interface {
	Chat(ctx context.Context, req llm.Request, result any) (*llm.Response, error)
}

// ConversationSource returns a user's messages ordered oldest first.
type ConversationSource interface {
	Conversation(ctx context.Context, userID int64) ([]model.ChatMessage, error)
}

// PlanWriter durably stores one plan record. Each call is its own transaction.
type PlanWriter interface {
	CreatePlan(ctx context.Context, plan model.PlanOfAction) error
}

// Clients are the completers a single run uses.
type Clients struct {
	Analysis    Completer // extract, route, coach
	Categorizer Completer
}

// ClientFactory builds the completers for a run. An empty credential means the
// configured default key.
type ClientFactory func(credential string) (Clients, error)

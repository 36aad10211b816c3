package service

import (
	"context"
	"fmt"

	"radbytes.org/pulse/common/id"
	"radbytes.org/pulse/internal/feedback"
	"radbytes.org/pulse/internal/model"
	"radbytes.org/pulse/internal/store"
)

type conversationSource struct {
	chatStore store.ChatStore
}

// NewConversationSource exposes the chat store to the feedback pipeline.
func NewConversationSource(chatStore store.ChatStore) feedback.ConversationSource {
	return &conversationSource{chatStore: chatStore}
}

func (s *conversationSource) Conversation(ctx context.Context, userID int64) ([]model.ChatMessage, error) {
	msgs, err := s.chatStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing chats for user %d: %w", userID, err)
	}
	return msgs, nil
}

type planWriter struct {
	txRunner TxRunner
}

// NewPlanWriter returns a feedback.PlanWriter that inserts each record in its own
// transaction. A record whose acting user has been deleted is refused with
// store.ErrNotFound.
func NewPlanWriter(txRunner TxRunner) feedback.PlanWriter {
	return &planWriter{txRunner: txRunner}
}

func (w *planWriter) CreatePlan(ctx context.Context, plan model.PlanOfAction) error {
	if plan.ID == 0 {
		plan.ID = id.New()
	}
	err := w.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := stores.Users().GetByID(ctx, plan.ActingUserID); err != nil {
			return fmt.Errorf("acting user %d: %w", plan.ActingUserID, err)
		}
		return stores.Plans().Create(ctx, &plan)
	})
	if err != nil {
		return fmt.Errorf("inserting plan for target %d: %w", plan.TargetUserID, err)
	}
	return nil
}

package store

import (
	"context"

	"radbytes.org/pulse/core/db/sqlc"
	"radbytes.org/pulse/internal/model"
)

type chatStore struct {
	queries *sqlc.Queries
}

func newChatStore(queries *sqlc.Queries) ChatStore {
	return &chatStore{queries: queries}
}

func (s *chatStore) Create(ctx context.Context, msg *model.ChatMessage) error {
	row, err := s.queries.CreateChat(ctx, sqlc.CreateChatParams{
		ID:      msg.ID,
		UserID:  msg.UserID,
		Message: msg.Message,
		IsAi:    msg.IsAI,
	})
	if err != nil {
		return err
	}
	*msg = toChatModel(row)
	return nil
}

// ListByUser returns the user's conversation in insertion order.
func (s *chatStore) ListByUser(ctx context.Context, userID int64) ([]model.ChatMessage, error) {
	rows, err := s.queries.ListChatsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	msgs := make([]model.ChatMessage, 0, len(rows))
	for _, row := range rows {
		msgs = append(msgs, toChatModel(row))
	}
	return msgs, nil
}

func (s *chatStore) DeleteByUser(ctx context.Context, userID int64) error {
	return s.queries.DeleteChatsByUser(ctx, userID)
}

func toChatModel(row sqlc.Chat) model.ChatMessage {
	return model.ChatMessage{
		ID:        row.ID,
		UserID:    row.UserID,
		Message:   row.Message,
		IsAI:      row.IsAi,
		CreatedAt: row.CreatedAt.Time,
	}
}

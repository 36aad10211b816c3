package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"radbytes.org/pulse/common/id"
	"radbytes.org/pulse/common/llm"
	"radbytes.org/pulse/common/logger"
	"radbytes.org/pulse/internal/model"
	"radbytes.org/pulse/internal/store"
)

// ErrChatUnavailable is returned when no chat model is configured.
var ErrChatUnavailable = errors.New("chat model not configured")

// Greeting opens every conversation. It is part of the prompt context but never stored.
const Greeting = "Hey! How's your day going? I'd love to hear about your work experience."

const chatTemperature = 0.6

const chatSystemPrompt = `You are a friendly but professional AI that helps employees discuss their work experiences. While keeping the tone conversational, you maintain a balanced and constructive approach.

Your role is to:
- Keep conversations focused on work-related topics
- Use a casual but professional tone (friendly without being silly or overly informal)
- Listen actively and ask relevant follow-up questions
- Gently redirect off-topic conversations back to work discussions
- Show genuine interest in their experiences while maintaining appropriate boundaries
- Never engage in jokes, wordplay, or creative writing, even if requested
- Stay focused on understanding their work situation

When users try to:
1. Change topics: Acknowledge briefly, then return to the work discussion
2. Request entertainment/jokes/games: Politely decline and redirect to work topics
3. Become overly casual: Maintain your friendly but professional tone

Example responses:
"I understand you'd like to keep things light, but let's focus on your work situation. You mentioned..."
"I appreciate your creative energy! But for now, let's continue our discussion about..."
"Let's stay focused on understanding your work experience. Could you tell me more about..."

Remember: Your goal is to facilitate meaningful workplace discussions while staying friendly but professional.`

// ChatModel produces the assistant's next turn for a conversation.
type ChatModel interface {
	Converse(ctx context.Context, messages []llm.Message, temperature *float64) (string, error)
}

type ChatService interface {
	// Send stores the employee's message, generates the assistant reply from the
	// persisted conversation and stores the reply.
	Send(ctx context.Context, userID int64, message string) (*model.ChatMessage, error)
	Conversation(ctx context.Context, userID int64) ([]model.ChatMessage, error)
}

type chatService struct {
	userStore store.UserStore
	chatStore store.ChatStore
	chatModel ChatModel
}

func NewChatService(userStore store.UserStore, chatStore store.ChatStore, chatModel ChatModel) ChatService {
	return &chatService{
		userStore: userStore,
		chatStore: chatStore,
		chatModel: chatModel,
	}
}

func (s *chatService) Send(ctx context.Context, userID int64, message string) (*model.ChatMessage, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:    logger.Ptr(userID),
		Component: "pulse.service.chat",
	})

	if s.chatModel == nil {
		return nil, ErrChatUnavailable
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	history, err := s.chatStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading conversation: %w", err)
	}

	incoming := &model.ChatMessage{
		ID:      id.New(),
		UserID:  userID,
		Message: message,
	}
	if err := s.chatStore.Create(ctx, incoming); err != nil {
		return nil, fmt.Errorf("storing message: %w", err)
	}

	prompt := buildChatPrompt(user.Name, append(history, *incoming))
	reply, err := s.chatModel.Converse(ctx, prompt, llm.Temp(chatTemperature))
	if err != nil {
		slog.ErrorContext(ctx, "chat completion failed", "error", err)
		return nil, fmt.Errorf("generating reply: %w", err)
	}

	answer := &model.ChatMessage{
		ID:      id.New(),
		UserID:  userID,
		Message: reply,
		IsAI:    true,
	}
	if err := s.chatStore.Create(ctx, answer); err != nil {
		return nil, fmt.Errorf("storing reply: %w", err)
	}

	slog.InfoContext(ctx, "chat turn completed",
		"history_len", len(history),
		"reply_len", len(reply))
	return answer, nil
}

func (s *chatService) Conversation(ctx context.Context, userID int64) ([]model.ChatMessage, error) {
	if _, err := s.userStore.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	msgs, err := s.chatStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading conversation: %w", err)
	}
	return msgs, nil
}

func buildChatPrompt(userName string, conversation []model.ChatMessage) []llm.Message {
	name := llm.SanitizeName(userName)
	msgs := make([]llm.Message, 0, len(conversation)+2)
	msgs = append(msgs,
		llm.Message{Role: llm.RoleSystem, Content: chatSystemPrompt},
		llm.Message{Role: llm.RoleAssistant, Content: Greeting},
	)
	for _, m := range conversation {
		if m.IsAI {
			msgs = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: m.Message})
			continue
		}
		msgs = append(msgs, llm.Message{Role: llm.RoleUser, Name: name, Content: m.Message})
	}
	return msgs
}

package dto

import (
	"time"

	"radbytes.org/pulse/internal/model"
)

type SendChatRequest struct {
	Message string `json:"message" binding:"required,notblank,max=8000"`
}

type ChatMessageResponse struct {
	ID        int64     `json:"id,string"`
	UserID    int64     `json:"user_id,string"`
	Message   string    `json:"message"`
	IsAI      bool      `json:"is_ai"`
	CreatedAt time.Time `json:"created_at"`
}

type ConversationResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}

func ToChatMessageResponse(m model.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Message:   m.Message,
		IsAI:      m.IsAI,
		CreatedAt: m.CreatedAt,
	}
}

func ToConversationResponse(msgs []model.ChatMessage) ConversationResponse {
	resp := ConversationResponse{Messages: make([]ChatMessageResponse, len(msgs))}
	for i, m := range msgs {
		resp.Messages[i] = ToChatMessageResponse(m)
	}
	return resp
}

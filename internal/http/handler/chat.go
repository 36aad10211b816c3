package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"radbytes.org/pulse/internal/http/dto"
	"radbytes.org/pulse/internal/service"
)

type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Send stores the employee's message and responds with the assistant's reply.
func (h *ChatHandler) Send(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req dto.SendChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.chatService.Send(ctx, userID, req.Message)
	if err != nil {
		switch {
		case isNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrChatUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat is not configured"})
		default:
			slog.ErrorContext(ctx, "failed to send chat message", "error", err, "user_id", userID)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to generate reply"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToChatMessageResponse(*reply))
}

func (h *ChatHandler) Conversation(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	msgs, err := h.chatService.Conversation(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to load conversation", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load conversation"})
		return
	}

	c.JSON(http.StatusOK, dto.ToConversationResponse(msgs))
}

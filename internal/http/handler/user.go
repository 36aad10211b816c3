package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"radbytes.org/pulse/internal/http/dto"
	"radbytes.org/pulse/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(ctx, req.Name, req.IsManager)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.Is(err, service.ErrUserExists) || (errors.As(err, &pgErr) && pgErr.Code == "23505") {
			slog.InfoContext(ctx, "duplicate user creation attempted", "name", req.Name)
			c.JSON(http.StatusConflict, gin.H{"error": "user with this name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *UserHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to get user", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user"})
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// Delete removes the user along with their conversation and authored plans.
func (h *UserHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(ctx, userID); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to delete user", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}

	c.Status(http.StatusNoContent)
}

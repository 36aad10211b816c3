package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"radbytes.org/pulse/internal/http/dto"
	"radbytes.org/pulse/internal/service"
)

const defaultRunListLimit = 20

type FeedbackRunHandler struct {
	runService service.FeedbackRunService
}

func NewFeedbackRunHandler(runService service.FeedbackRunService) *FeedbackRunHandler {
	return &FeedbackRunHandler{runService: runService}
}

// Trigger queues a feedback run for the user. The run executes in the worker; poll
// Get for its outcome.
func (h *FeedbackRunHandler) Trigger(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	run, err := h.runService.Trigger(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to trigger feedback run", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue feedback run"})
		return
	}

	c.JSON(http.StatusAccepted, dto.TriggerFeedbackRunResponse{
		RunID:  run.ID,
		Status: run.Status,
	})
}

func (h *FeedbackRunHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	runID, ok := idParam(c, "id")
	if !ok {
		return
	}

	run, err := h.runService.Get(ctx, runID)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "feedback run not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to get feedback run", "error", err, "run_id", runID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get feedback run"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFeedbackRunResponse(run))
}

func (h *FeedbackRunHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	limit := defaultRunListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	runs, err := h.runService.ListByUser(ctx, userID, int32(limit))
	if err != nil {
		slog.ErrorContext(ctx, "failed to list feedback runs", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list feedback runs"})
		return
	}

	resp := dto.FeedbackRunListResponse{Runs: make([]dto.FeedbackRunResponse, len(runs))}
	for i := range runs {
		resp.Runs[i] = dto.ToFeedbackRunResponse(&runs[i])
	}
	c.JSON(http.StatusOK, resp)
}

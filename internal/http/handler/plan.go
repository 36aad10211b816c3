package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"radbytes.org/pulse/internal/http/dto"
	"radbytes.org/pulse/internal/service"
)

type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

func (h *PlanHandler) SelfView(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	plan, err := h.planService.SelfView(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no plan for user"})
			return
		}
		slog.ErrorContext(ctx, "failed to get plan", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get plan"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPlanResponse(*plan))
}

func (h *PlanHandler) ManagerView(c *gin.Context) {
	ctx := c.Request.Context()

	plans, err := h.planService.ManagerView(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list manager plans", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list plans"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPlanListResponse(plans))
}

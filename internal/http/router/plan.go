package router

import (
	"github.com/gin-gonic/gin"

	"radbytes.org/pulse/internal/http/handler"
)

func PlanRouter(rg *gin.RouterGroup, h *handler.PlanHandler) {
	rg.GET("/manager", h.ManagerView)
}

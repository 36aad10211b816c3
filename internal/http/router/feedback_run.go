package router

import (
	"github.com/gin-gonic/gin"

	"radbytes.org/pulse/internal/http/handler"
)

func FeedbackRunRouter(rg *gin.RouterGroup, h *handler.FeedbackRunHandler) {
	rg.GET("/:id", h.Get)
}

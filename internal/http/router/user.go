package router

import (
	"github.com/gin-gonic/gin"

	"radbytes.org/pulse/internal/http/handler"
)

// UserRouter mounts the per-user resources: the user record, their conversation,
// their feedback runs and their own plan.
func UserRouter(rg *gin.RouterGroup, users *handler.UserHandler, chats *handler.ChatHandler, plans *handler.PlanHandler, runs *handler.FeedbackRunHandler) {
	rg.POST("", users.Create)
	rg.GET("/:id", users.Get)
	rg.DELETE("/:id", users.Delete)

	rg.POST("/:id/chats", chats.Send)
	rg.GET("/:id/conversation", chats.Conversation)

	rg.POST("/:id/feedback-runs", runs.Trigger)
	rg.GET("/:id/feedback-runs", runs.List)

	rg.GET("/:id/plan", plans.SelfView)
}

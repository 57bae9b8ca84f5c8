package api

import (
	"github.com/rxnlog/experiment-line-bot/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires all routes onto a new gin engine. The webhook route is
// the only one outside the bearer-auth group; it carries its own signature
// check.
func SetupRouter(h *APIHandler, apiSecretKey string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Cors())

	router.POST("/webhook", h.WebhookHandler)

	authorized := router.Group("/", middleware.Auth(apiSecretKey))
	{
		authorized.GET("/conversations", h.ListConversationsHandler)
		authorized.GET("/conversations/:userId", h.GetConversationHandler)
		authorized.POST("/conversations/:userId/reply", h.ReplyHandler)
		authorized.PATCH("/conversations/:userId/toggle", h.ToggleHandler)
		authorized.GET("/settings/bot", h.GetBotSettingsHandler)
		authorized.POST("/settings/bot", h.UpdateBotSettingsHandler)
	}

	return router
}

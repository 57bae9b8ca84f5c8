package api

import (
	"errors"
	"net/http"

	"github.com/rxnlog/experiment-line-bot/models"
	"github.com/rxnlog/experiment-line-bot/repository"
	"github.com/rxnlog/experiment-line-bot/services"
	"github.com/rxnlog/experiment-line-bot/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// APIHandler holds all dependencies for API handlers.
type APIHandler struct {
	userRepo       repository.UserRepository
	messageRepo    repository.MessageRepository
	settingsRepo   repository.SettingsRepository
	lineClient     services.LineClient
	webhookService services.WebhookService
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(
	userRepo repository.UserRepository,
	messageRepo repository.MessageRepository,
	settingsRepo repository.SettingsRepository,
	lineClient services.LineClient,
	webhookService services.WebhookService,
) *APIHandler {
	return &APIHandler{
		userRepo:       userRepo,
		messageRepo:    messageRepo,
		settingsRepo:   settingsRepo,
		lineClient:     lineClient,
		webhookService: webhookService,
	}
}

// ListConversationsHandler returns every user with their last-message
// summary, newest-updated first.
func (h *APIHandler) ListConversationsHandler(c *gin.Context) {
	summaries, err := h.userRepo.ListConversations()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch conversations.", err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetConversationHandler returns a user record plus their full chronological
// message history. 404 if the user is unknown.
func (h *APIHandler) GetConversationHandler(c *gin.Context) {
	userID := c.Param("userId")

	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendJSONError(c, http.StatusNotFound, "User not found.", nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch conversation details.", err)
		return
	}

	messages, err := h.messageRepo.GetByUserID(userID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch conversation details.", err)
		return
	}

	c.JSON(http.StatusOK, models.ConversationDetail{
		User:     user,
		Messages: messages,
	})
}

// ReplyRequest is the body of a manual dashboard reply.
type ReplyRequest struct {
	Message string `json:"message" binding:"required"`
}

// ReplyHandler pushes an operator-typed message to the user and stores it as
// an outbound/human message. The push happens first; a failed push stores
// nothing.
func (h *APIHandler) ReplyHandler(c *gin.Context) {
	userID := c.Param("userId")

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Message content is required.", err)
		return
	}

	if err := h.lineClient.PushText(userID, req.Message); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to send reply.", err)
		return
	}

	outbound := &models.Message{
		UserID:     userID,
		Content:    req.Message,
		Direction:  models.DirectionOutbound,
		SenderType: models.SenderHuman,
	}
	if err := h.messageRepo.SaveMessage(outbound); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to send reply.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ToggleRequest is the body of a bot-activation toggle. The pointer keeps
// binding strict: a missing or non-boolean value is a 400.
type ToggleRequest struct {
	IsBotActive *bool `json:"isBotActive" binding:"required"`
}

// ToggleHandler flips the per-user bot-activation flag. Last write wins.
func (h *APIHandler) ToggleHandler(c *gin.Context) {
	userID := c.Param("userId")

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid status.", err)
		return
	}

	if err := h.userRepo.SetBotActive(userID, *req.IsBotActive); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to update bot status.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "isBotActive": *req.IsBotActive})
}

// GetBotSettingsHandler returns the singleton bot settings, or built-in
// defaults when none have been saved.
func (h *APIHandler) GetBotSettingsHandler(c *gin.Context) {
	settings, err := h.settingsRepo.Get()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to fetch settings.", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// BotSettingsRequest is the body of a settings upsert. No field-level
// validation is applied; the screen replaces the record wholesale.
type BotSettingsRequest struct {
	BotName              string `json:"bot_name"`
	BotAvatarURL         string `json:"bot_avatar_url"`
	SystemPromptTemplate string `json:"system_prompt_template"`
}

// UpdateBotSettingsHandler upserts the singleton bot settings row.
func (h *APIHandler) UpdateBotSettingsHandler(c *gin.Context) {
	var req BotSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	settings := &models.BotSettings{
		BotName:              req.BotName,
		BotAvatarURL:         req.BotAvatarURL,
		SystemPromptTemplate: req.SystemPromptTemplate,
	}
	if err := h.settingsRepo.Upsert(settings); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to update settings.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

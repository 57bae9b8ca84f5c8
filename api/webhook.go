package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/rxnlog/experiment-line-bot/config"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// WebhookHandler receives LINE webhook deliveries. Authentication is the
// x-line-signature header (HMAC-SHA256 over the raw body, base64), verified
// against the channel secret. Once signature validation and parsing succeed
// the response is always 200, no matter how many per-event operations fail
// afterwards: most platforms redeliver on non-2xx, and one attempt per event
// is the delivery policy here.
func (h *APIHandler) WebhookHandler(c *gin.Context) {
	channelSecret := config.AppConfig.Line.ChannelSecret
	if channelSecret == "" {
		log.Println("ERROR: [Webhook] LINE channel secret is not configured.")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server config error"})
		return
	}

	events, err := linebot.ParseRequest(channelSecret, c.Request)
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
			return
		}
		log.Printf("ERROR: [Webhook] Failed to parse webhook request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	h.webhookService.ProcessEvents(events)

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
